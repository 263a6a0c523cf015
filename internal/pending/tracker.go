package pending

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Mode says what the collected images are for.
type Mode string

const (
	// ModeProduct collects several images; the first one is pinned as the
	// product's primary image.
	ModeProduct Mode = "product"
	// ModeCategory collects exactly one image.
	ModeCategory Mode = "category"
)

// Snapshot is a read-only copy of one user's pending media. References
// are ordered: under product mode, References[0] is the pinned image.
type Snapshot struct {
	References []int64
	Mode       Mode
}

// Pinned returns the primary media reference, or 0 when nothing is
// pending.
func (s Snapshot) Pinned() int64 {
	if len(s.References) == 0 {
		return 0
	}
	return s.References[0]
}

// Empty reports whether no media is pending.
func (s Snapshot) Empty() bool { return len(s.References) == 0 }

// Annotate appends the natural-language pending-media note the
// interpreter prompt relies on. The caller applies it to the user text
// before resolving, keeping the interpreter transport-free.
func (s Snapshot) Annotate(userText string) string {
	if s.Empty() {
		return userText
	}
	switch s.Mode {
	case ModeCategory:
		return fmt.Sprintf("%s\n\nNote: one image was uploaded for the category (media_id: %d).",
			userText, s.References[0])
	default:
		return fmt.Sprintf("%s\n\nImportant: %d uploaded image(s) with IDs %v. The pinned (primary) image is %d. Please create the product with media_pinned_id=%d.",
			userText, len(s.References), s.References, s.Pinned(), s.Pinned())
	}
}

// AppendResult reports the outcome of one Append call.
type AppendResult struct {
	Count  int
	Pinned bool
}

type entry struct {
	references []int64
	mode       Mode
	updatedAt  time.Time
}

// Tracker is the per-user pending-media state machine. State is
// in-memory and best-effort: a restart loses it, and stale entries are
// pruned. One coarse mutex guards the table; event rates are interactive
// chat, not a hot path.
type Tracker struct {
	mu          sync.Mutex
	entries     map[int64]*entry
	maxProduct  int
	maxCategory int
	logger      *slog.Logger
	now         func() time.Time
}

// NewTracker creates a tracker with the configured per-mode maximums.
func NewTracker(log *slog.Logger, maxProduct, maxCategory int) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	if maxProduct <= 0 {
		maxProduct = 10
	}
	if maxCategory <= 0 {
		maxCategory = 1
	}
	return &Tracker{
		entries:     make(map[int64]*entry),
		maxProduct:  maxProduct,
		maxCategory: maxCategory,
		logger:      log.With(slog.String("service", "pending")),
		now:         time.Now,
	}
}

// ProductLimit returns the configured product image maximum, for
// user-facing hints.
func (t *Tracker) ProductLimit() int { return t.maxProduct }

// SetMode creates the user's entry if absent, otherwise switches only the
// mode, keeping already-collected references. An over-length category
// list produced by a late switch is rejected at append time, not here.
func (t *Tracker) SetMode(userID int64, mode Mode) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		e = &entry{mode: mode}
		t.entries[userID] = e
	} else {
		e.mode = mode
	}
	e.updatedAt = t.now()
	t.logger.Debug("mode set", slog.Int64("user_id", userID), slog.String("mode", string(mode)))
}

// CanAppend reports whether another reference fits under the user's
// current mode, without mutating state. Checked before the upload so a
// full entry never costs a storage round trip.
func (t *Tracker) CanAppend(userID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		return nil
	}
	limit := t.maxProduct
	if e.mode == ModeCategory {
		limit = t.maxCategory
	}
	if len(e.references) >= limit {
		if e.mode == ModeCategory {
			return ErrCategoryImageLimit
		}
		return fmt.Errorf("%w: max %d", ErrProductImageLimit, limit)
	}
	return nil
}

// Append adds a media reference for the user, creating the entry with the
// default product mode when absent. A full entry is rejected without
// mutating state.
func (t *Tracker) Append(userID, mediaID int64) (AppendResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		e = &entry{mode: ModeProduct}
		t.entries[userID] = e
	}

	limit := t.maxProduct
	if e.mode == ModeCategory {
		limit = t.maxCategory
	}
	if len(e.references) >= limit {
		if e.mode == ModeCategory {
			return AppendResult{}, ErrCategoryImageLimit
		}
		return AppendResult{}, fmt.Errorf("%w: max %d", ErrProductImageLimit, limit)
	}

	e.references = append(e.references, mediaID)
	e.updatedAt = t.now()
	return AppendResult{Count: len(e.references), Pinned: len(e.references) == 1}, nil
}

// Snapshot returns a read-only copy of the user's pending media. Absent
// users get an empty product-mode snapshot.
func (t *Tracker) Snapshot(userID int64) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		return Snapshot{Mode: ModeProduct}
	}
	refs := make([]int64, len(e.references))
	copy(refs, e.references)
	return Snapshot{References: refs, Mode: e.mode}
}

// Clear removes the user's entry entirely and returns how many
// references were dropped. A no-op for absent users.
func (t *Tracker) Clear(userID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[userID]
	if !ok {
		return 0
	}
	delete(t.entries, userID)
	t.logger.Debug("cleared", slog.Int64("user_id", userID), slog.Int("count", len(e.references)))
	return len(e.references)
}

// PruneStale drops entries not touched within ttl and returns how many
// were removed. Abandoned uploads should not pin memory forever.
func (t *Tracker) PruneStale(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-ttl)
	pruned := 0
	for userID, e := range t.entries {
		if e.updatedAt.Before(cutoff) {
			delete(t.entries, userID)
			pruned++
		}
	}
	if pruned > 0 {
		t.logger.Info("pruned stale pending media", slog.Int("entries", pruned))
	}
	return pruned
}
