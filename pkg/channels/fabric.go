// Package channels defines the typed request/response queues that connect
// the UI mediator to every background worker. Every queue is a
// single-consumer buffered channel of capacity defaultQueueCapacity (64);
// a producer blocks once its channel's buffer is full, and a closed channel (a worker that has exited) is something the
// mediator discovers on its next receive, not something it polls for.
package channels

import (
	"github.com/pacsea/pacsea/pkg/model"
)

// ExecutorAction describes what the executor worker should do with a
// decided plan.
type ExecutorAction struct {
	Plan             model.Plan
	RestartUnits     []string // systemd units the user chose to restart
	ExtraOptDepends  []string // opt-depends the user chose to also install
	Cascade          bool     // pass --cascade to a Remove operation
}

// ExecutorOutput is the executor worker's single response: either the
// emulator and command that were launched, or a user-facing error.
type ExecutorOutput struct {
	Emulator string
	Command  []string
	Err      string
}

// PostSummaryRequest asks the post-summary worker to build a report for a
// plan that has already been handed to the executor.
type PostSummaryRequest struct {
	Plan model.Plan
}

// PostSummaryReport is the post-summary worker's response: a human
// readable account of what changed, produced on a blocking pool because
// it may need to stat a large number of files.
type PostSummaryReport struct {
	PackageCount int
	Lines        []string
}

// StatusUpdate is the periodic status poller's response: a coarse health
// snapshot of the system. The poller fills FreeDiskBytes only;
// PendingUpdates is left at zero.
type StatusUpdate struct {
	PendingUpdates int
	FreeDiskBytes  uint64
}

// NewsBatch is the periodic news poller's response.
type NewsBatch struct {
	Items []model.NewsItem
}

// NetworkError is a transient failure surfaced on a dedicated channel so
// the mediator can turn it into an alert modal without threading error
// values through every typed response.
type NetworkError struct {
	Source  string // which worker/request produced the error
	Message string
}

// Fabric is the single aggregate holding every sender and receiver the UI
// mediator needs. Workers receive their inbound receiver by taking the
// channel value directly (Go channels are reference types, so there is no
// "move" distinct from a plain field read) and their outbound sender the
// same way. Send errors from a closed channel are not possible in Go the
// way they are in some other languages; instead, a worker that wants to
// stop permanently simply stops reading its inbound channel, and the
// mediator's sends to it would block forever — which is why every worker
// here runs for the lifetime of the process and is only torn down by the
// caller cancelling its context.
type Fabric struct {
	// Terminal events (C2).
	TermEvents chan TermEvent

	// Search (C3).
	SearchRequests chan model.QueryInput
	SearchResults  chan model.SearchResults

	// Details (C4).
	DetailsRequests chan model.PackageItem
	DetailsResults  chan model.PackageDetails

	// PKGBUILD (C5).
	PKGBUILDRequests chan PKGBUILDRequest
	PKGBUILDResults  chan PKGBUILDResult

	// Comments (C6).
	CommentsRequests chan model.PackageItem
	CommentsResults  chan CommentsResult

	// Preflight resolvers (C7).
	DepsRequests     chan PlanRequest
	DepsResults      chan []model.DependencyInfo
	FilesRequests    chan PlanRequest
	FilesResults     chan []model.PackageFileInfo
	ServicesRequests chan PlanRequest
	ServicesResults  chan []model.ServiceImpact
	SandboxRequests  chan []model.PackageItem
	SandboxResults   chan []model.SandboxInfo
	SummaryRequests  chan PlanRequest
	SummaryResults   chan model.PreflightSummaryOutcome

	// Executor (C8).
	ExecutorRequests chan ExecutorAction
	ExecutorResults  chan ExecutorOutput

	// Post-summary (C9).
	PostSummaryRequests chan PostSummaryRequest
	PostSummaryResults  chan PostSummaryReport

	// Pollers (C10).
	StatusUpdates chan StatusUpdate
	NewsUpdates   chan NewsBatch
	Ticks         chan Tick

	// Cross-cutting.
	NetworkErrors chan NetworkError

	// IndexReady fires once the on-disk official package index has been
	// loaded into the process-wide snapshot.
	IndexReady chan struct{}
}

// PlanRequest is the common input shape for the four plan-scoped
// preflight resolvers (deps/files/services) plus summary: the item set
// and the action under review.
type PlanRequest struct {
	Items  []model.PackageItem
	Action model.ActionKind
}

// PKGBUILDRequest names the package whose PKGBUILD/.SRCINFO text is
// wanted.
type PKGBUILDRequest struct {
	Item model.PackageItem
}

// PKGBUILDResult carries the raw text plus the name it was fetched for,
// so the handler can check it still matches the current selection before
// applying it.
type PKGBUILDResult struct {
	Name string
	Text string
}

// CommentsResult carries AUR comments for one package.
type CommentsResult struct {
	Name     string
	Comments []Comment
}

// Comment is one AUR comment.
type Comment struct {
	Author string
	Date   string
	Body   string
}

// Tick is sent on the tick channel to drive the mediator's periodic
// self-service (cache flush, stage re-send, timer expiry).
type Tick struct{}

// TermEvent is a terminal input event forwarded by the dedicated event
// source thread (C2). It is deliberately opaque here: in the bubbletea
// integration used by cmd/pacsea, terminal events are delivered as
// tea.Msg values through bubbletea's own program loop rather than through
// this channel, so TermEvent exists for headless/non-bubbletea callers
// (tests, alternate front ends) that still want to drive the mediator
// from this fabric.
type TermEvent struct {
	Raw string
}

// defaultQueueCapacity is the buffer size of every channel in the fabric
// except IndexReady, which has capacity 1; see NewFabric.
const defaultQueueCapacity = 64

// NewFabric allocates every channel in the fabric. All channels are
// buffered generously rather than left synchronous: producers here are
// already rate-limited upstream (debounced queries, one preflight
// request per stage per plan change, external HTTP/subprocess latency),
// so a bounded buffer only guards against the mediator being briefly busy
// rendering, never against unbounded producer growth.
func NewFabric() *Fabric {
	return &Fabric{
		TermEvents: make(chan TermEvent, defaultQueueCapacity),

		SearchRequests: make(chan model.QueryInput, defaultQueueCapacity),
		SearchResults:  make(chan model.SearchResults, defaultQueueCapacity),

		DetailsRequests: make(chan model.PackageItem, defaultQueueCapacity),
		DetailsResults:  make(chan model.PackageDetails, defaultQueueCapacity),

		PKGBUILDRequests: make(chan PKGBUILDRequest, defaultQueueCapacity),
		PKGBUILDResults:  make(chan PKGBUILDResult, defaultQueueCapacity),

		CommentsRequests: make(chan model.PackageItem, defaultQueueCapacity),
		CommentsResults:  make(chan CommentsResult, defaultQueueCapacity),

		DepsRequests:     make(chan PlanRequest, defaultQueueCapacity),
		DepsResults:      make(chan []model.DependencyInfo, defaultQueueCapacity),
		FilesRequests:    make(chan PlanRequest, defaultQueueCapacity),
		FilesResults:     make(chan []model.PackageFileInfo, defaultQueueCapacity),
		ServicesRequests: make(chan PlanRequest, defaultQueueCapacity),
		ServicesResults:  make(chan []model.ServiceImpact, defaultQueueCapacity),
		SandboxRequests:  make(chan []model.PackageItem, defaultQueueCapacity),
		SandboxResults:   make(chan []model.SandboxInfo, defaultQueueCapacity),
		SummaryRequests:  make(chan PlanRequest, defaultQueueCapacity),
		SummaryResults:   make(chan model.PreflightSummaryOutcome, defaultQueueCapacity),

		ExecutorRequests: make(chan ExecutorAction, defaultQueueCapacity),
		ExecutorResults:  make(chan ExecutorOutput, defaultQueueCapacity),

		PostSummaryRequests: make(chan PostSummaryRequest, defaultQueueCapacity),
		PostSummaryResults:  make(chan PostSummaryReport, defaultQueueCapacity),

		StatusUpdates: make(chan StatusUpdate, defaultQueueCapacity),
		NewsUpdates:   make(chan NewsBatch, defaultQueueCapacity),
		Ticks:         make(chan Tick, defaultQueueCapacity),

		NetworkErrors: make(chan NetworkError, defaultQueueCapacity),
		IndexReady:    make(chan struct{}, 1),
	}
}
