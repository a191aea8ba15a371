package editor

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/telemetry"
)

// Save triggers recorded with each draft write.
const (
	TriggerManual   = "manual"
	TriggerAutosave = "autosave"
)

// Draft is a saved form plus the time it was written.
type Draft struct {
	Form
	SavedAt time.Time `json:"savedAt"`
}

// Drafts persists the single editor draft under kv.KeyArticleDraft.
type Drafts struct {
	Store kv.Store
	Now   func() time.Time
}

// NewDrafts returns a draft slot in s.
func NewDrafts(s kv.Store) *Drafts {
	return &Drafts{Store: s, Now: time.Now}
}

func (d *Drafts) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Save overwrites the draft with f.
func (d *Drafts) Save(ctx context.Context, f Form, trigger string) (Draft, error) {
	draft := Draft{Form: f.Trimmed(), SavedAt: d.now().UTC()}
	if err := kv.SetJSON(ctx, d.Store, kv.KeyArticleDraft, draft); err != nil {
		return Draft{}, err
	}
	telemetry.RecordDraftSaved(ctx, trigger)
	return draft, nil
}

// Load returns the saved draft. A malformed draft is discarded and reported
// as absent.
func (d *Drafts) Load(ctx context.Context) (Draft, bool, error) {
	var draft Draft
	found, err := kv.GetJSON(ctx, d.Store, kv.KeyArticleDraft, &draft)
	if err != nil || !found {
		return Draft{}, false, err
	}
	return draft, true, nil
}

// Discard removes the draft.
func (d *Drafts) Discard(ctx context.Context) error {
	return d.Store.Delete(ctx, kv.KeyArticleDraft)
}

// Offer is what an editor shows on open: the form to start from and, when a
// draft exists, the draft it may restore.
type Offer struct {
	Form  Form   `json:"form"`
	Draft *Draft `json:"draft,omitempty"`
}

// Open prepares a fresh editor session. The form is always the default; a
// saved draft is only offered, never applied.
func (d *Drafts) Open(ctx context.Context) (Offer, error) {
	offer := Offer{Form: DefaultForm()}
	draft, found, err := d.Load(ctx)
	if err != nil {
		return Offer{}, err
	}
	if found {
		offer.Draft = &draft
	}
	return offer, nil
}

// Restore applies an accepted draft offer.
func (o Offer) Restore() Form {
	if o.Draft == nil {
		return o.Form
	}
	return o.Draft.Form
}

// Decline keeps the default form.
func (o Offer) Decline() Form {
	return o.Form
}
