package app

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/kobzarvs/vedit/internal/buffer"
	"github.com/kobzarvs/vedit/internal/config"
	"github.com/kobzarvs/vedit/internal/editor"
	"github.com/kobzarvs/vedit/internal/logger"
	"github.com/kobzarvs/vedit/internal/session"
	"github.com/kobzarvs/vedit/internal/term"
	"github.com/kobzarvs/vedit/internal/watcher"
)

// Options are the command line settings.
type Options struct {
	Path            string
	Debug           bool
	AbsoluteNumbers bool
}

// host is the terminal as the run loop needs it: a Surface that can be
// woken from another goroutine.
type host interface {
	editor.Surface
	Wake()
}

// App is the top-level runtime for vedit.
type App struct {
	opts        Options
	sessions    *session.Manager
	diskChanged atomic.Bool
}

func New(opts Options) *App {
	return &App{opts: opts}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return fmt.Errorf("load languages: %w", err)
	}
	if a.opts.AbsoluteNumbers {
		cfg.Editor.LineNumbers = "absolute"
	}

	if err := logger.Init(a.opts.Debug); err != nil {
		return fmt.Errorf("init log: %w", err)
	}
	defer logger.Close()
	logger.Info("starting", "path", a.opts.Path, "debug", a.opts.Debug)

	if sm, err := session.NewManager(); err != nil {
		logger.Warn("session unavailable", "error", err)
	} else {
		a.sessions = sm
	}

	sc, err := term.Open(cfg.Theme)
	if err != nil {
		return err
	}
	defer sc.Close()

	ed := editor.New(cfg, langs, sc)
	if err := a.open(ed); err != nil {
		return err
	}
	stop := a.watch(ed, sc)
	defer stop()

	err = a.loop(ed, sc)
	a.remember(ed)
	logger.Info("exiting", "error", err)
	return err
}

func (a *App) open(ed *editor.Editor) error {
	if a.opts.Path == "" {
		ed.Load(nil)
		return nil
	}
	if err := ed.Open(a.opts.Path); err != nil {
		return err
	}
	if a.sessions == nil {
		return nil
	}
	if st, ok := a.sessions.GetFileState(ed.AbsPath()); ok {
		ed.Restore(buffer.Position{Row: st.CursorRow, Col: st.CursorCol}, st.ViewStart)
	}
	return nil
}

// watch starts the disk watcher for the open file. The returned func stops
// it.
func (a *App) watch(ed *editor.Editor, h host) func() {
	path := ed.AbsPath()
	if path == "" {
		return func() {}
	}
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		logger.Warn("file watcher unavailable", "error", err)
		return func() {}
	}
	changes, err := w.Start()
	if err != nil {
		logger.Warn("file watcher unavailable", "error", err)
		_ = w.Stop()
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-changes:
				a.diskChanged.Store(true)
				h.Wake()
			}
		}
	}()
	return func() {
		close(done)
		_ = w.Stop()
	}
}

func (a *App) loop(ed *editor.Editor, h host) error {
	for {
		h.Draw(ed.Frame())
		code, err := h.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if a.diskChanged.Swap(false) {
			checkDisk(ed)
		}
		if ed.HandleKey(code) == editor.OutcomeExit {
			return nil
		}
	}
}

// checkDisk posts a notice when the file on disk no longer matches the
// buffer. Our own saves leave them equal.
func checkDisk(ed *editor.Editor) {
	name := ed.Filename()
	if name == "" {
		return
	}
	data, err := os.ReadFile(name)
	if err != nil {
		logger.Debug("disk check skipped", "path", name, "error", err)
		return
	}
	if bytes.Equal(data, ed.Serialize()) {
		return
	}
	logger.Info("file changed on disk", "path", name)
	ed.Notify(fmt.Sprintf("%s changed on disk", name))
}

func (a *App) remember(ed *editor.Editor) {
	path := ed.AbsPath()
	if a.sessions == nil || path == "" {
		return
	}
	cur := ed.Cursor()
	a.sessions.SetFileState(path, session.FileState{
		CursorRow: cur.Row,
		CursorCol: cur.Col,
		ViewStart: ed.ViewStart(),
	})
	if err := a.sessions.Save(); err != nil {
		logger.Warn("session save failed", "error", err)
	}
}
