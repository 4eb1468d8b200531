// Package app implements the application layer for canopy.
package app

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/canopy/internal/adapters/events"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/core/ports"
	"go.trai.ch/canopy/internal/engine/tree"
	"go.trai.ch/zerr"
)

// Opener selects the data source and child loader for a configuration.
type Opener interface {
	Open(cfg *domain.Config) (ports.DataSource, ports.ChildLoader, error)
}

// logConfigurer is implemented by loggers that follow the configuration.
type logConfigurer interface {
	SetLevel(level domain.LogLevel)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       Opener
	logger       ports.Logger
	tracer       ports.Tracer
	events       ports.EventSink
	out          io.Writer
	teaOptions   []tea.ProgramOption
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	opener Opener,
	log ports.Logger,
	tracer ports.Tracer,
	events ports.EventSink,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		logger:       log,
		tracer:       tracer,
		events:       events,
		out:          os.Stdout,
	}
}

// WithOutput redirects listings written by the app.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Session is a tree built from a configuration and its data source.
type Session struct {
	Config *domain.Config
	Source ports.DataSource
	Tree   *tree.Tree
}

// Open loads the configuration at configPath, reads the top-level data and
// builds the tree. The scroller may be nil.
func (a *App) Open(ctx context.Context, configPath string, scroller ports.Scroller) (*Session, error) {
	return a.open(ctx, configPath, openOptions{scroller: scroller})
}

// openOptions adjusts how open builds the tree.
type openOptions struct {
	scroller ports.Scroller
	// wrap replaces the child loader the tree uses. It is not called when the
	// configuration has no loader.
	wrap func(cfg *domain.Config, loader ports.ChildLoader) ports.ChildLoader
	// sinks receive the tree events next to the app's own sink.
	sinks []ports.EventSink
}

// open builds the session.
func (a *App) open(ctx context.Context, configPath string, o openOptions) (*Session, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if l, ok := a.logger.(logConfigurer); ok {
		l.SetJSON(cfg.LogJSON)
		l.SetLevel(cfg.LogLevel)
	}

	source, loader, err := a.opener.Open(cfg)
	if err != nil {
		return nil, err
	}

	if loader != nil && o.wrap != nil {
		loader = o.wrap(cfg, loader)
	}

	opts, err := a.Options(cfg, loader, o.scroller)
	if err != nil {
		return nil, err
	}
	if len(o.sinks) > 0 {
		opts.Events = append(events.Fanout{a.events}, o.sinks...)
	}

	nodes, err := source.Nodes(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read tree data")
	}

	a.logger.Debug("tree opened", "path", cfg.DataPath, "roots", len(nodes))
	return &Session{
		Config: cfg,
		Source: source,
		Tree:   tree.New(nodes, opts),
	}, nil
}

// Options translates a configuration into tree options.
func (a *App) Options(cfg *domain.Config, loader ports.ChildLoader, scroller ports.Scroller) (tree.Options, error) {
	ids, err := tree.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return tree.Options{}, err
	}

	mapping, err := tree.MappingFromNames(cfg.Actions)
	if err != nil {
		return tree.Options{}, zerr.Wrap(err, "invalid action mapping")
	}

	return tree.Options{
		Accessor:        tree.NewMapAccessor(cfg.Fields),
		IDs:             ids,
		NodeHeight:      nodeHeight(cfg),
		NodeClass:       nodeClass(cfg),
		LevelPadding:    cfg.LevelPadding,
		AllowDrag:       cfg.AllowDrag,
		AllowDrop:       dropPolicy(cfg),
		ActionMapping:   mapping,
		ChildLoader:     loader,
		Scroller:        scroller,
		Events:          a.events,
		Logger:          a.logger,
		Tracer:          a.tracer,
		LoadConcurrency: cfg.LoadConcurrency,
	}, nil
}
