package selection

import (
	"context"
	"errors"
	"testing"

	"github.com/krlohnes/album-club-bot/internal/catalog"
	"github.com/krlohnes/album-club-bot/internal/rotation"
	"github.com/krlohnes/album-club-bot/internal/store"
	"github.com/krlohnes/album-club-bot/internal/store/storetest"
	"github.com/rs/zerolog"
)

const (
	albumsRange   = "Album Selection!A2:D"
	lastRange     = "Ratings!B2:C2"
	currentRange  = "Ratings!A2:D2"
	rotationRange = "Rotation!A:A"
	rosterRange   = "Roster!A:A"
)

func newTestPicker(t *testing.T) (*Picker, *storetest.Fake) {
	t.Helper()

	fake := storetest.New()
	reader := catalog.NewReader(fake, catalog.Ranges{
		Albums:  albumsRange,
		Last:    lastRange,
		Current: currentRange,
	})
	tracker := rotation.NewTracker(fake, rotation.Ranges{
		Rotation: rotationRange,
		Roster:   rosterRange,
	}, zerolog.Nop())

	return NewPicker(reader, tracker, zerolog.Nop()), fake
}

// twoAlbumCatalog is the catalog used by the filtering scenarios: "A" by bob
// (rock) and "B" by amy (jazz).
func twoAlbumCatalog(fake *storetest.Fake) {
	fake.Set(albumsRange, [][]string{
		{"X", "A", "rock", "bob"},
		{"Y", "B", "jazz", "amy"},
	})
}

func TestNextExcludesLastGenre(t *testing.T) {
	picker, fake := newTestPicker(t)
	twoAlbumCatalog(fake)
	fake.Set(lastRange, [][]string{{"rock", "carl"}})

	got, err := picker.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := catalog.Album{Artist: "Y", Title: "B", Genre: "jazz", AddedBy: "amy", Row: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNextExcludesRotationMembers(t *testing.T) {
	picker, fake := newTestPicker(t)
	twoAlbumCatalog(fake)
	fake.SetColumn(rotationRange, "amy")
	fake.Set(lastRange, [][]string{{"blues", "carl"}})

	got, err := picker.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Title != "A" {
		t.Errorf("expected album A, got %+v", got)
	}
}

func TestNextExcludesLastContributor(t *testing.T) {
	picker, fake := newTestPicker(t)
	twoAlbumCatalog(fake)
	fake.Set(lastRange, [][]string{{"blues", "bob"}})

	got, err := picker.Next(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AddedBy != "amy" {
		t.Errorf("expected amy's album, got %+v", got)
	}
}

func TestNextComparesCaseInsensitively(t *testing.T) {
	picker, fake := newTestPicker(t)
	twoAlbumCatalog(fake)
	fake.Set(lastRange, [][]string{{"ROCK", "AMY"}})

	_, err := picker.Next(context.Background())
	if !errors.Is(err, ErrNoEligibleAlbum) {
		t.Errorf("expected ErrNoEligibleAlbum (rock and amy both excluded), got %v", err)
	}
}

func TestNextResultAlwaysSatisfiesAllPredicates(t *testing.T) {
	picker, fake := newTestPicker(t)
	fake.Set(albumsRange, [][]string{
		{"V", "A", "rock", "bob"},
		{"W", "B", "jazz", "amy"},
		{"X", "C", "folk", "carl"},
		{"Y", "D", "blues", "dora"},
		{"Z", "E", "soul", "erin"},
	})
	fake.SetColumn(rotationRange, "carl")
	fake.Set(lastRange, [][]string{{"jazz", "bob"}})

	// Exactly D and E survive: bob shares the last contributor, B shares
	// the last genre, carl is in rotation. Every draw must satisfy all
	// three predicates.
	for i := 0; i < 50; i++ {
		got, err := picker.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.AddedBy == "carl" {
			t.Fatalf("pick %+v violates rotation exclusion", got)
		}
		if got.Genre == "jazz" || got.AddedBy == "bob" {
			t.Fatalf("pick %+v violates last-selection exclusions", got)
		}
		if got.Title != "D" && got.Title != "E" {
			t.Fatalf("unexpected pick %+v", got)
		}
	}
}

func TestNextNoEligibleAlbum(t *testing.T) {
	picker, fake := newTestPicker(t)
	twoAlbumCatalog(fake)
	fake.SetColumn(rotationRange, "amy", "bob")

	_, err := picker.Next(context.Background())
	if !errors.Is(err, ErrNoEligibleAlbum) {
		t.Errorf("expected ErrNoEligibleAlbum, got %v", err)
	}
}

func TestNextEmptyCatalog(t *testing.T) {
	picker, _ := newTestPicker(t)

	_, err := picker.Next(context.Background())
	if !errors.Is(err, ErrNoEligibleAlbum) {
		t.Errorf("expected ErrNoEligibleAlbum for empty catalog, got %v", err)
	}
}

func TestNextUniformOverSurvivors(t *testing.T) {
	picker, fake := newTestPicker(t)
	fake.Set(albumsRange, [][]string{
		{"W", "A", "rock", "bob"},
		{"X", "B", "jazz", "amy"},
		{"Y", "C", "folk", "carl"},
	})
	fake.Set(lastRange, [][]string{{"rock", "dora"}})

	// Two survivors (B, C). The injected source indexes into exactly that
	// filtered slice.
	for idx, wantTitle := range map[int]string{0: "B", 1: "C"} {
		idx := idx
		picker.SetIntn(func(n int) int {
			if n != 2 {
				t.Fatalf("expected 2 eligible albums, intn called with %d", n)
			}
			return idx
		})

		got, err := picker.Next(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Title != wantTitle {
			t.Errorf("index %d: expected %q, got %q", idx, wantTitle, got.Title)
		}
	}
}

func TestNextStoreErrorAborts(t *testing.T) {
	tests := []struct {
		name    string
		rangeID string
	}{
		{"catalog read fails", albumsRange},
		{"rotation read fails", rotationRange},
		{"last selection read fails", lastRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picker, fake := newTestPicker(t)
			twoAlbumCatalog(fake)
			fake.Fail(tt.rangeID, store.ErrUnavailable)

			_, err := picker.Next(context.Background())
			if !errors.Is(err, store.ErrUnavailable) {
				t.Errorf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}
