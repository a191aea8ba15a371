// Package engagement keeps per-visitor likes, bookmarks, follows and
// comments in the local key/value store.
package engagement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/technote/internal/kv"
	"github.com/mohammad-safakhou/technote/internal/telemetry"
)

// Kind is one of the boolean engagement widgets.
type Kind string

const (
	KindLike     Kind = "like"
	KindBookmark Kind = "bookmark"
	KindFollow   Kind = "follow"
)

// ErrUnknownKind is returned for a kind without a storage key.
var ErrUnknownKind = errors.New("unknown engagement kind")

var kindKeys = map[Kind]string{
	KindLike:     kv.KeyLikedArticles,
	KindBookmark: kv.KeyBookmarkedArticles,
	KindFollow:   kv.KeyFollowedAuthors,
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := kindKeys[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Toggles flips boolean flags stored as one id→bool map per kind.
// Concurrent writers race with last-write-wins semantics.
type Toggles struct {
	Store kv.Store
}

// NewToggles returns Toggles over s.
func NewToggles(s kv.Store) *Toggles {
	return &Toggles{Store: s}
}

// State returns the whole map for kind. A missing or malformed value is an
// empty map.
func (t *Toggles) State(ctx context.Context, kind Kind) (map[string]bool, error) {
	key, ok := kindKeys[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	state := map[string]bool{}
	if _, err := kv.GetJSON(ctx, t.Store, key, &state); err != nil {
		return nil, err
	}
	if state == nil {
		state = map[string]bool{}
	}
	return state, nil
}

// IsSet reports the flag for id.
func (t *Toggles) IsSet(ctx context.Context, kind Kind, id string) (bool, error) {
	state, err := t.State(ctx, kind)
	if err != nil {
		return false, err
	}
	return state[id], nil
}

// Toggle flips the flag for id and returns the new value.
func (t *Toggles) Toggle(ctx context.Context, kind Kind, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, errors.New("engagement: empty id")
	}
	state, err := t.State(ctx, kind)
	if err != nil {
		return false, err
	}
	next := !state[id]
	state[id] = next
	if err := kv.SetJSON(ctx, t.Store, kindKeys[kind], state); err != nil {
		return false, err
	}
	telemetry.RecordToggle(ctx, string(kind), next)
	return next, nil
}
