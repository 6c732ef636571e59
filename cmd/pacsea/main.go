// Command pacsea is an interactive terminal package manager for Arch
// Linux and its derivatives: search official and AUR packages, inspect
// dependencies/files/service impact/build sandbox before committing, and
// hand the decided plan off to a terminal emulator for the actual
// pacman/AUR-helper invocation.
//
// Usage:
//
//	pacsea [flags]
//
// Flags:
//
//	-dry-run   Build the executor command but never spawn a terminal
//	-verbose   Enable debug-level logging
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/pacsea/pacsea/pkg/app"
	"github.com/pacsea/pacsea/pkg/aurclient"
	"github.com/pacsea/pacsea/pkg/channels"
	"github.com/pacsea/pacsea/pkg/config"
	"github.com/pacsea/pacsea/pkg/index"
	"github.com/pacsea/pacsea/pkg/model"
	"github.com/pacsea/pacsea/pkg/newsfeed"
	"github.com/pacsea/pacsea/pkg/pacman"
	"github.com/pacsea/pacsea/pkg/persist"
	"github.com/pacsea/pacsea/pkg/terminal"
	"github.com/pacsea/pacsea/pkg/workers"
	"github.com/pacsea/pacsea/pkg/workers/preflight"
)

// headless disables terminal setup and most I/O side effects so the
// event loop can be exercised end-to-end in tests without a real tty.
func headless() bool {
	return os.Getenv("PACSEA_TEST_HEADLESS") == "1"
}

func main() {
	dryRun := flag.Bool("dry-run", false, "build the executor command but never spawn a terminal")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	cfg, err := config.LoadSettings()
	if err != nil {
		logger.Warn("falling back to default settings", "error", err)
		cfg = config.DefaultSettings()
	}
	if *dryRun {
		cfg.General.DryRun = true
	}

	layout, err := persist.NewLayout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pacsea: resolving config directory: %v\n", err)
		os.Exit(1)
	}
	if err := layout.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "pacsea: preparing config directory: %v\n", err)
		os.Exit(1)
	}

	if !headless() && !isatty.IsTerminal(os.Stdin.Fd()) {
		fmt.Fprintln(os.Stderr, "pacsea: stdin is not a terminal")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	fab := channels.NewFabric()
	pacmanClient := pacman.NewClient()
	aurClient := aurclient.NewClient()
	newsClient := newsfeed.NewClient()

	idx := index.New()
	if !headless() {
		go seedIndex(ctx, logger, pacmanClient, idx, fab)
	} else {
		close(fab.IndexReady)
	}

	startWorkers(ctx, fab, cfg, idx, pacmanClient, aurClient, newsClient)

	appModel := app.NewAppModel(cfg, fab, idx, layout)
	if !headless() {
		if names, err := pacmanClient.ListExplicitlyInstalled(ctx); err != nil {
			logger.Warn("failed to list explicitly installed packages", "error", err)
		} else {
			appModel.SetInstalled(names)
		}
	}

	if headless() {
		return
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	caps := terminal.DetectCapabilities()
	logger.Debug("detected terminal capabilities",
		"term", caps.Term, "true_color", caps.TrueColor, "ssh", caps.SSH, "mux", caps.Mux)
	if caps.Term.SupportsMouseSGR() {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(appModel, opts...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	if _, err := p.Run(); err != nil {
		logger.Error("terminal program exited with error", "error", err)
		os.Exit(1)
	}
}

// seedIndex populates the process-wide package index once at startup by
// enumerating every sync-repo package, then closes fab.IndexReady so
// anything waiting on first-index-available can proceed. Run on its own
// goroutine since `pacman -Sl` against a full mirror set can take a
// couple of seconds and must never block the event loop's first frame.
func seedIndex(ctx context.Context, logger *slog.Logger, pacmanClient *pacman.Client, idx *index.Index, fab *channels.Fabric) {
	defer close(fab.IndexReady)

	arch := runtime.GOARCH
	if arch == "amd64" {
		arch = "x86_64"
	}

	pkgs, err := pacmanClient.ListSyncPackages(ctx)
	if err != nil {
		logger.Warn("failed to enumerate sync packages", "error", err)
		fab.NetworkErrors <- channels.NetworkError{Source: "index", Message: err.Error()}
		return
	}

	items := make([]model.PackageItem, 0, len(pkgs))
	for _, pkg := range pkgs {
		items = append(items, model.PackageItem{
			Name:    pkg.Name,
			Version: pkg.Version,
			Source:  model.Official(pkg.Repo, arch),
		})
	}
	idx.Store(items)
	logger.Info("package index ready", "count", idx.Len())
}

// startWorkers constructs every long-lived background worker and
// resolver and starts its self-loop goroutine. None of these types has a
// constructor function; each is a plain exported-field struct assembled
// here and handed the fabric it drains.
func startWorkers(ctx context.Context, fab *channels.Fabric, cfg *config.Settings, idx *index.Index, pacmanClient *pacman.Client, aurClient *aurclient.Client, newsClient *newsfeed.Client) {
	search := &workers.SearchWorker{Index: idx, AUR: aurClient}
	go search.Run(ctx, fab)

	details := &workers.DetailsWorker{Pacman: pacmanClient, AUR: aurClient}
	go details.Run(ctx, fab)

	pkgbuild := &workers.PKGBUILDWorker{AUR: aurClient}
	go pkgbuild.Run(ctx, fab)

	comments := &workers.CommentsWorker{AUR: aurClient}
	go comments.Run(ctx, fab)

	deps := &preflight.DepsResolver{Pacman: pacmanClient}
	go deps.Run(ctx, fab)

	files := &preflight.FilesResolver{Pacman: pacmanClient}
	go files.Run(ctx, fab)

	services := &preflight.ServicesResolver{Pacman: pacmanClient}
	go services.Run(ctx, fab)

	sandbox := &preflight.SandboxResolver{AUR: aurClient, Pacman: pacmanClient}
	go sandbox.Run(ctx, fab)

	summary := &preflight.SummaryResolver{Pacman: pacmanClient, Deps: deps, Files: files, Services: services}
	go summary.Run(ctx, fab)

	executor := &workers.Executor{DryRun: cfg.General.DryRun}
	go executor.Run(ctx, fab)

	postSummary := &workers.PostSummary{}
	go postSummary.Run(ctx, fab)

	statusPoller := &workers.StatusPoller{Pacman: pacmanClient, Interval: cfg.Workers.StatusPollInterval.Duration}
	go statusPoller.Run(ctx, fab)

	newsPoller := &workers.NewsPoller{News: newsClient, Interval: cfg.Workers.NewsPollInterval.Duration}
	go newsPoller.Run(ctx, fab)

	tickPoller := &workers.TickPoller{Interval: 250 * time.Millisecond}
	go tickPoller.Run(ctx, fab)
}
