package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/model"
)

// Each waitFor* below blocks on one fabric channel and wraps whatever it
// receives in a tea.Msg. The mediator re-issues the same Cmd every time
// it handles the corresponding message, so exactly one goroutine is ever
// blocked on a given channel at a time — the same bridging idiom as the
// original dashboard's TickCmd/DataFetchCmd pair, generalized to every
// channel in the fabric.

type searchResultsMsg model.SearchResults
type detailsResultMsg model.PackageDetails
type pkgbuildResultMsg channels.PKGBUILDResult
type commentsResultMsg channels.CommentsResult
type depsResultMsg []model.DependencyInfo
type filesResultMsg []model.PackageFileInfo
type servicesResultMsg []model.ServiceImpact
type sandboxResultMsg []model.SandboxInfo
type summaryResultMsg model.PreflightSummaryOutcome
type executorResultMsg channels.ExecutorOutput
type postSummaryResultMsg channels.PostSummaryReport
type statusUpdateMsg channels.StatusUpdate
type newsBatchMsg channels.NewsBatch
type tickMsg struct{}
type networkErrorMsg channels.NetworkError
type indexReadyMsg struct{}

func waitForSearchResults(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return searchResultsMsg(<-fab.SearchResults) }
}

func waitForDetailsResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return detailsResultMsg(<-fab.DetailsResults) }
}

func waitForPKGBUILDResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return pkgbuildResultMsg(<-fab.PKGBUILDResults) }
}

func waitForCommentsResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return commentsResultMsg(<-fab.CommentsResults) }
}

func waitForDepsResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return depsResultMsg(<-fab.DepsResults) }
}

func waitForFilesResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return filesResultMsg(<-fab.FilesResults) }
}

func waitForServicesResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return servicesResultMsg(<-fab.ServicesResults) }
}

func waitForSandboxResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return sandboxResultMsg(<-fab.SandboxResults) }
}

func waitForSummaryResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return summaryResultMsg(<-fab.SummaryResults) }
}

func waitForExecutorResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return executorResultMsg(<-fab.ExecutorResults) }
}

func waitForPostSummaryResult(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return postSummaryResultMsg(<-fab.PostSummaryResults) }
}

func waitForStatusUpdate(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return statusUpdateMsg(<-fab.StatusUpdates) }
}

func waitForNewsBatch(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return newsBatchMsg(<-fab.NewsUpdates) }
}

func waitForTick(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { <-fab.Ticks; return tickMsg{} }
}

func waitForNetworkError(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { return networkErrorMsg(<-fab.NetworkErrors) }
}

func waitForIndexReady(fab *channels.Fabric) tea.Cmd {
	return func() tea.Msg { <-fab.IndexReady; return indexReadyMsg{} }
}

// listenCmds returns one wait-Cmd per fabric channel, batched so Init and
// every subsequent re-arm keep all sixteen listeners alive at once.
func listenCmds(fab *channels.Fabric) tea.Cmd {
	return tea.Batch(
		waitForSearchResults(fab),
		waitForDetailsResult(fab),
		waitForPKGBUILDResult(fab),
		waitForCommentsResult(fab),
		waitForDepsResult(fab),
		waitForFilesResult(fab),
		waitForServicesResult(fab),
		waitForSandboxResult(fab),
		waitForSummaryResult(fab),
		waitForExecutorResult(fab),
		waitForPostSummaryResult(fab),
		waitForStatusUpdate(fab),
		waitForNewsBatch(fab),
		waitForTick(fab),
		waitForNetworkError(fab),
		waitForIndexReady(fab),
	)
}
