package editor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultAutosaveInterval is how often the workspace is persisted.
const DefaultAutosaveInterval = 30 * time.Second

// Workspace holds the live form between autosaves.
type Workspace struct {
	mu      sync.Mutex
	form    Form
	dirty   bool
	version uint64
}

// NewWorkspace starts from the default form.
func NewWorkspace() *Workspace {
	return &Workspace{form: DefaultForm()}
}

// Update replaces the live form.
func (w *Workspace) Update(f Form) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = f
	w.dirty = true
	w.version++
}

// Current returns the live form.
func (w *Workspace) Current() Form {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// Reset returns the workspace to the default form.
func (w *Workspace) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = DefaultForm()
	w.dirty = false
	w.version++
}

func (w *Workspace) snapshot() (Form, uint64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form, w.version, w.dirty
}

// markSaved clears the dirty flag unless the form changed after version.
func (w *Workspace) markSaved(version uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.version == version {
		w.dirty = false
	}
}

// Autosaver periodically writes the workspace to the draft slot when it has
// changed and has a title or content.
type Autosaver struct {
	Workspace *Workspace
	Drafts    *Drafts
	Interval  time.Duration

	mu     sync.Mutex
	cron   *cron.Cron
	logger *log.Logger
}

// NewAutosaver returns an autosaver; a non-positive interval uses the default.
func NewAutosaver(ws *Workspace, drafts *Drafts, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		Workspace: ws,
		Drafts:    drafts,
		Interval:  interval,
		logger:    log.New(log.Writer(), "[AUTOSAVE] ", log.LstdFlags),
	}
}

// Tick runs one autosave cycle and reports whether a draft was written.
func (a *Autosaver) Tick(ctx context.Context) (bool, error) {
	f, version, dirty := a.Workspace.snapshot()
	if !dirty || !f.HasContent() {
		return false, nil
	}
	if _, err := a.Drafts.Save(ctx, f, TriggerAutosave); err != nil {
		return false, err
	}
	a.Workspace.markSaved(version)
	return true, nil
}

// Start schedules Tick every Interval until Stop.
func (a *Autosaver) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cron != nil {
		return nil
	}
	c := cron.New()
	spec := fmt.Sprintf("@every %s", a.Interval)
	if _, err := c.AddFunc(spec, func() {
		if _, err := a.Tick(context.Background()); err != nil {
			a.logger.Printf("autosave failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule autosave: %w", err)
	}
	c.Start()
	a.cron = c
	return nil
}

// Stop cancels the schedule and waits for a running tick.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	c := a.cron
	a.cron = nil
	a.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}
