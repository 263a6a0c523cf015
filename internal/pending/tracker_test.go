package pending

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTrackerAppendProductMode(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 3, 1)

	first, err := tr.Append(1, 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Pinned || first.Count != 1 {
		t.Fatalf("first append: %+v", first)
	}

	second, err := tr.Append(1, 102)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Pinned || second.Count != 2 {
		t.Fatalf("second append: %+v", second)
	}

	if _, err := tr.Append(1, 103); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tr.Append(1, 104); !errors.Is(err, ErrProductImageLimit) {
		t.Fatalf("expected product limit, got %v", err)
	}

	// The rejected append must not have mutated state.
	snap := tr.Snapshot(1)
	if len(snap.References) != 3 || snap.Pinned() != 101 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestTrackerCategorySingleImage(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10, 1)
	tr.SetMode(7, ModeCategory)

	if err := tr.CanAppend(7); err != nil {
		t.Fatalf("empty entry must accept: %v", err)
	}
	if _, err := tr.Append(7, 201); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tr.CanAppend(7); !errors.Is(err, ErrCategoryImageLimit) {
		t.Fatalf("expected category limit from CanAppend, got %v", err)
	}
	if _, err := tr.Append(7, 202); !errors.Is(err, ErrCategoryImageLimit) {
		t.Fatalf("expected category limit from Append, got %v", err)
	}
}

func TestTrackerSetModeKeepsReferences(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10, 1)
	if _, err := tr.Append(3, 301); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr.SetMode(3, ModeCategory)

	snap := tr.Snapshot(3)
	if snap.Mode != ModeCategory || len(snap.References) != 1 || snap.References[0] != 301 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestTrackerClear(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10, 1)
	tr.Append(5, 501)
	tr.Append(5, 502)

	if got := tr.Clear(5); got != 2 {
		t.Fatalf("Clear = %d, want 2", got)
	}
	if got := tr.Clear(5); got != 0 {
		t.Fatalf("second Clear = %d, want 0", got)
	}
	if snap := tr.Snapshot(5); !snap.Empty() || snap.Mode != ModeProduct {
		t.Fatalf("cleared user must snapshot empty product mode: %+v", snap)
	}
}

func TestTrackerSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10, 1)
	tr.Append(9, 901)

	snap := tr.Snapshot(9)
	snap.References[0] = 999

	if again := tr.Snapshot(9); again.References[0] != 901 {
		t.Fatal("mutating a snapshot must not affect tracker state")
	}
}

func TestTrackerPruneStale(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil, 10, 1)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return current }

	tr.Append(1, 101)
	current = current.Add(4 * time.Hour)
	tr.Append(2, 201)
	current = current.Add(3 * time.Hour)

	if got := tr.PruneStale(6 * time.Hour); got != 1 {
		t.Fatalf("PruneStale = %d, want 1", got)
	}
	if !tr.Snapshot(1).Empty() {
		t.Fatal("stale entry survived pruning")
	}
	if tr.Snapshot(2).Empty() {
		t.Fatal("fresh entry was pruned")
	}
	if got := tr.PruneStale(0); got != 0 {
		t.Fatalf("zero ttl must be a no-op, got %d", got)
	}
}

func TestSnapshotAnnotate(t *testing.T) {
	t.Parallel()

	if got := (Snapshot{}).Annotate("add a laptop"); got != "add a laptop" {
		t.Fatalf("empty snapshot must not annotate: %q", got)
	}

	product := Snapshot{References: []int64{11, 12}, Mode: ModeProduct}
	text := product.Annotate("add a laptop")
	for _, want := range []string{"add a laptop", "2 uploaded image(s)", "media_pinned_id=11"} {
		if !strings.Contains(text, want) {
			t.Fatalf("product annotation missing %q: %q", want, text)
		}
	}

	category := Snapshot{References: []int64{21}, Mode: ModeCategory}
	text = category.Annotate("create a drinks category")
	for _, want := range []string{"create a drinks category", "media_id: 21"} {
		if !strings.Contains(text, want) {
			t.Fatalf("category annotation missing %q: %q", want, text)
		}
	}
}
