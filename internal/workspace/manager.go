package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"nichefold/internal/prompt"
	"nichefold/pkg/niche"
	"nichefold/pkg/template"
)

type State int

const (
	StateVerifyBase State = iota
	StateSelectNiche
	StateCollectName
	StateCheckConflict
	StateBuild
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateVerifyBase:
		return "verify-base"
	case StateSelectNiche:
		return "select-niche"
	case StateCollectName:
		return "collect-name"
	case StateCheckConflict:
		return "check-conflict"
	case StateBuild:
		return "build"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Request is fixed once the operator has answered both prompts.
type Request struct {
	BasePath   string
	ClientName string
	Niche      niche.Definition
}

// Root is the client's project folder.
func (r Request) Root(fs billy.Filesystem) string {
	return fs.Join(r.BasePath, r.ClientName)
}

// Outcome is the terminal state of a run. FailedIn is only meaningful when
// State is StateAborted.
type Outcome struct {
	State    State
	FailedIn State
	Request  *Request
	Result   *Result
	Err      error
}

// Revealer opens a folder in the desktop file browser.
type Revealer interface {
	Reveal(path string) error
}

// Recorder keeps a trace of successful builds.
type Recorder interface {
	Record(ctx context.Context, req Request, res *Result) error
}

type Config struct {
	BasePath  string
	FS        billy.Filesystem
	In        io.Reader
	Out       io.Writer
	Catalog   *niche.Catalog
	Templates template.TemplateEngine
	Revealer  Revealer
	Recorder  Recorder
	Width     int
}

// Manager drives one interactive scaffolding run.
type Manager struct {
	basePath  string
	fs        billy.Filesystem
	out       io.Writer
	catalog   *niche.Catalog
	collector *prompt.Collector
	builder   *Builder
	revealer  Revealer
	recorder  Recorder
}

func NewManager(cfg Config) *Manager {
	if cfg.Catalog == nil {
		cfg.Catalog = niche.NewCatalog()
	}
	if cfg.Templates == nil {
		cfg.Templates = template.NewEngine()
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}

	return &Manager{
		basePath:  cfg.BasePath,
		fs:        cfg.FS,
		out:       cfg.Out,
		catalog:   cfg.Catalog,
		collector: prompt.NewCollector(cfg.In, cfg.Out),
		builder:   NewBuilder(cfg.FS, cfg.Out, cfg.Templates).WithWidth(cfg.Width),
		revealer:  cfg.Revealer,
		recorder:  cfg.Recorder,
	}
}

// Run walks VerifyBase → SelectNiche → CollectName → CheckConflict → Build
// → Done. Any failure or cancellation ends in StateAborted; the returned
// error wraps prompt.ErrCancelled when the operator backed out.
func (m *Manager) Run(ctx context.Context) (*Outcome, error) {
	o := &Outcome{State: StateVerifyBase}
	var chosen niche.Definition

	for {
		var err error
		next := o.State

		switch o.State {
		case StateVerifyBase:
			err = m.verifyBase()
			next = StateSelectNiche

		case StateSelectNiche:
			chosen, err = m.collector.SelectNiche(ctx, m.catalog.List())
			next = StateCollectName

		case StateCollectName:
			var name string
			name, err = m.collector.ClientName(ctx, chosen.Name)
			if err == nil {
				o.Request = &Request{BasePath: m.basePath, ClientName: name, Niche: chosen}
			}
			next = StateCheckConflict

		case StateCheckConflict:
			err = m.checkConflict(ctx, *o.Request)
			next = StateBuild

		case StateBuild:
			req := *o.Request
			o.Result, err = m.builder.Build(req.Root(m.fs), req.ClientName, req.Niche.Name, req.Niche.Directories)
			next = StateDone

		case StateDone:
			m.finish(ctx, o)
			return o, nil
		}

		if err != nil {
			return m.abort(o, err)
		}
		slog.Debug("state transition", slog.String("from", o.State.String()), slog.String("to", next.String()))
		o.State = next
	}
}

func (m *Manager) abort(o *Outcome, err error) (*Outcome, error) {
	o.FailedIn = o.State
	o.State = StateAborted
	o.Err = err
	slog.Debug("run aborted", slog.String("state", o.FailedIn.String()), slog.String("error", err.Error()))

	red := color.New(color.FgRed)
	switch {
	case errors.Is(err, prompt.ErrCancelled):
		fmt.Fprintln(m.out, "\nOperation cancelled.")
	case o.FailedIn == StateVerifyBase:
		red.Fprintf(m.out, "❌ Failed to create base path: %v\n", err)
	default:
		red.Fprintf(m.out, "\n❌ An unexpected error occurred during creation: %v\n", err)
	}
	return o, err
}

func (m *Manager) verifyBase() error {
	info, err := m.fs.Stat(m.basePath)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("base path %s is not a directory", m.basePath)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check base path: %w", err)
	}

	color.New(color.FgYellow).Fprintf(m.out, "⚠️ Base path does not exist: %s\n", m.basePath)
	if err := m.fs.MkdirAll(m.basePath, 0o755); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✅ Created base path: %s\n", m.basePath)
	return nil
}

// checkConflict asks before building into a folder that already exists.
func (m *Manager) checkConflict(ctx context.Context, req Request) error {
	info, err := m.fs.Stat(req.Root(m.fs))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check project folder: %w", err)
	}
	if !info.IsDir() {
		return nil
	}

	ok, err := m.collector.Confirm(ctx, fmt.Sprintf("⚠️ Folder '%s' already exists. Overwrite/Continue?", req.ClientName))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: folder %q exists", prompt.ErrCancelled, req.ClientName)
	}
	return nil
}

// finish runs the optional post-build steps. Nothing here can change the
// outcome: the project already exists.
func (m *Manager) finish(ctx context.Context, o *Outcome) {
	req := *o.Request

	if m.recorder != nil {
		if err := m.recorder.Record(ctx, req, o.Result); err != nil {
			slog.Warn("failed to record build", slog.String("error", err.Error()))
		}
	}

	if m.revealer == nil {
		return
	}
	fmt.Fprintln(m.out)
	open, err := m.collector.Confirm(ctx, "Open folder in file browser?")
	if err != nil || !open {
		return
	}
	if err := m.revealer.Reveal(req.Root(m.fs)); err != nil {
		slog.Debug("reveal failed", slog.String("path", req.Root(m.fs)), slog.String("error", err.Error()))
	}
}
