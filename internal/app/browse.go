package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/canopy/internal/adapters/telemetry"
	"go.trai.ch/canopy/internal/adapters/tui"
	"go.trai.ch/canopy/internal/adapters/watcher"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/zerr"
)

// BrowseOptions configuration for the Browse method.
type BrowseOptions struct {
	ConfigPath string
	Fuzzy      bool
	// Watch reloads the tree when its data changes on disk.
	Watch bool
}

// Browse runs the interactive tree browser until the user quits.
func (a *App) Browse(ctx context.Context, opts BrowseOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scroller := tui.NewScroller()
	// Children are fetched by commands and materialized on the UI goroutine.
	var fetcher *tui.Prefetcher
	s, err := a.open(ctx, opts.ConfigPath, openOptions{
		scroller: scroller,
		wrap: func(cfg *domain.Config, loader ports.ChildLoader) ports.ChildLoader {
			fetcher = tui.NewPrefetcher(loader, a.tracer, cfg.LoadConcurrency)
			return fetcher
		},
	})
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx, s.Tree, scroller, fetcher, Matcher(opts.Fuzzy))
	teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	program := tea.NewProgram(model, teaOpts...)

	// Load spans drive the loading indicators.
	shutdown := telemetry.Setup(telemetry.NewTUIBridge(program))
	defer func() { _ = shutdown(context.Background()) }()

	if opts.Watch {
		w, err := watcher.New(a.logger, watcher.DefaultDebounceWindow, func([]string) {
			nodes, err := s.Source.Nodes(ctx)
			program.Send(tui.MsgReload{Nodes: nodes, Err: err})
		})
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		if err := w.Add(s.Config.DataPath); err != nil {
			return err
		}
		if s.Config.ChildrenDir != "" {
			if err := w.Add(s.Config.ChildrenDir); err != nil {
				return err
			}
		}
		go w.Run(ctx)
	}

	if _, err := program.Run(); err != nil {
		return zerr.Wrap(err, "browser failed")
	}
	return nil
}
