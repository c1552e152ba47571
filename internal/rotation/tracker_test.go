package rotation

import (
	"context"
	"errors"
	"testing"

	"github.com/krlohnes/album-club-bot/internal/store"
	"github.com/krlohnes/album-club-bot/internal/store/storetest"
	"github.com/rs/zerolog"
)

var testRanges = Ranges{
	Rotation: "Rotation!A:A",
	Roster:   "Roster!A:A",
}

func newTestTracker(t *testing.T) (*Tracker, *storetest.Fake) {
	t.Helper()
	fake := storetest.New()
	return NewTracker(fake, testRanges, zerolog.Nop()), fake
}

func TestCurrent(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Rotation, "amy", "bob", "amy", "")

	current, err := tracker.Current(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(current) != 2 {
		t.Errorf("expected 2 members, got %d: %v", len(current), current)
	}
	if _, ok := current["amy"]; !ok {
		t.Error("expected amy in rotation")
	}
	if _, ok := current[""]; ok {
		t.Error("empty cells must not become rotation members")
	}
}

func TestRosterDeduplicates(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy", "bob", "amy", "carl")

	roster, err := tracker.Roster(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"amy", "bob", "carl"}
	if len(roster) != len(want) {
		t.Fatalf("expected %v, got %v", want, roster)
	}
	for i := range want {
		if roster[i] != want[i] {
			t.Errorf("roster[%d] = %q, want %q", i, roster[i], want[i])
		}
	}
}

func TestRecordAppendsWithoutClearing(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy", "bob", "carl")
	fake.SetColumn(testRanges.Rotation, "amy")

	if err := tracker.Record(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Appends) != 1 || fake.Appends[0] != [2]string{testRanges.Rotation, "bob"} {
		t.Errorf("expected a single rotation append of bob, got %v", fake.Appends)
	}
	if len(fake.Clears) != 0 {
		t.Errorf("rotation must not be cleared while carl is missing, got clears %v", fake.Clears)
	}
}

func TestRecordClearsWhenRotationFills(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy", "bob", "carl")
	fake.SetColumn(testRanges.Rotation, "amy", "bob")

	if err := tracker.Record(context.Background(), "carl"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Clears) != 1 || fake.Clears[0] != testRanges.Rotation {
		t.Errorf("expected exactly one rotation clear, got %v", fake.Clears)
	}
	if rows := fake.Rows(testRanges.Rotation); len(rows) != 0 {
		t.Errorf("expected empty rotation after clear, got %v", rows)
	}
}

func TestRecordDuplicateDoesNotDoubleCount(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy", "bob", "carl")
	fake.SetColumn(testRanges.Rotation, "amy")

	// bob twice plus amy leaves carl unfeatured; list semantics would see
	// four entries and a full rotation.
	if err := tracker.Record(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tracker.Record(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Clears) != 0 {
		t.Errorf("duplicate records must not trigger a clear, got %v", fake.Clears)
	}
}

func TestRecordSingleMemberRosterClears(t *testing.T) {
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy")

	if err := tracker.Record(context.Background(), "amy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Clears) != 1 {
		t.Errorf("expected one clear for a single-member roster, got %v", fake.Clears)
	}
}

func TestRecordFullnessSurvivesStaleRead(t *testing.T) {
	// The fake applies appends immediately, but the union in Record must
	// make the check correct even when the re-read misses the append. The
	// rotation is pre-seeded as if the append had been lost.
	tracker, fake := newTestTracker(t)
	fake.SetColumn(testRanges.Roster, "amy", "bob")
	fake.SetColumn(testRanges.Rotation, "amy")

	if err := tracker.Record(context.Background(), "bob"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Clears) != 1 {
		t.Errorf("expected the fill to clear, got %v", fake.Clears)
	}
}

func TestRecordEmptyRosterNeverClears(t *testing.T) {
	tracker, fake := newTestTracker(t)

	if err := tracker.Record(context.Background(), "amy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fake.Clears) != 0 {
		t.Errorf("an empty roster must never trigger a clear, got %v", fake.Clears)
	}
}

func TestRecordStoreErrors(t *testing.T) {
	t.Run("append fails", func(t *testing.T) {
		tracker, fake := newTestTracker(t)
		fake.Fail(testRanges.Rotation, store.ErrUnavailable)

		err := tracker.Record(context.Background(), "amy")
		if !errors.Is(err, store.ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("roster read fails", func(t *testing.T) {
		tracker, fake := newTestTracker(t)
		fake.Fail(testRanges.Roster, store.ErrUnavailable)

		err := tracker.Record(context.Background(), "amy")
		if !errors.Is(err, store.ErrUnavailable) {
			t.Errorf("expected ErrUnavailable, got %v", err)
		}
	})
}
