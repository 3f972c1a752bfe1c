package ui

import (
	"context"
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/whataflick/flick/internal/models"
	tu "github.com/whataflick/flick/internal/testing"
)

func adminWithCatalog(t *testing.T, backend *tu.StubBackend, posters *countingPosters, movies []models.Movie) *adminModel {
	t.Helper()

	m := newAdminModel(context.Background(), testDeps(backend, posters, nil), 1)
	next, _ := m.update(adminCatalogMsg{gen: 1, movies: movies})
	return next.(*adminModel)
}

func typeString(t *testing.T, m *adminModel, s string) tea.Cmd {
	t.Helper()

	var last tea.Cmd
	for _, r := range s {
		next, cmd := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if next.(*adminModel) != m {
			t.Fatal("admin model must update in place")
		}
		last = cmd
	}
	return last
}

func TestAdminModel(t *testing.T) {
	catalog := []models.Movie{
		{ID: "m1", Title: "Fargo", Director: []string{"Joel Coen"}, Genre: []string{"Crime"}, ReleaseYear: 1996},
		{ID: "m2", Title: "Heat"},
	}

	t.Run("Mode Transitions", func(t *testing.T) {
		t.Run("Select Then Edit Then Cancel", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)

			m.selected = catalog[0]
			m.transition(adminViewing)
			if m.mode != adminViewing {
				t.Fatal("expected viewing mode")
			}

			m.transition(adminEditing)
			if got := m.form.title.Value(); got != "Fargo" {
				t.Errorf("edit form must seed from the entity, got %q", got)
			}

			next, _ := m.update(tea.KeyMsg{Type: tea.KeyEsc})
			m = next.(*adminModel)
			if m.mode != adminIdle {
				t.Error("cancel from editing returns to the no-selection list")
			}
			if m.selected.Persisted() {
				t.Error("cancel must clear the selection")
			}
			if len(m.movies.Items()) != 2 {
				t.Error("cancelled edit must not change the list")
			}
		})

		t.Run("Add Reachable From Viewing", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)
			m.selected = catalog[0]
			m.transition(adminViewing)

			next, _ := m.update(keyRunes("+"))
			m = next.(*adminModel)

			if m.mode != adminAdding {
				t.Error("+ must open the add form from the entity view")
			}
			if m.form.title.Value() != "" {
				t.Error("add form must start blank")
			}
		})

		t.Run("Cancel Add Returns To Idle", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)

			m.transition(adminAdding)
			next, _ := m.update(tea.KeyMsg{Type: tea.KeyEsc})
			m = next.(*adminModel)

			if m.mode != adminIdle {
				t.Error("cancel from adding returns to idle")
			}
			if len(m.movies.Items()) != 2 {
				t.Error("cancelled add must not change the list")
			}
		})

		t.Run("Transition Resets Poster State", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)
			m.posterURL, m.posterOK = "https://img.example/old.jpg", true

			m.transition(adminAdding)

			if m.posterOK || m.posterURL != "" {
				t.Error("poster preview must reset on transition")
			}
		})
	})

	t.Run("Draft Derivation", func(t *testing.T) {
		m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)
		m.transition(adminAdding)

		m.form.director.Focus()
		m.form.title.Blur()
		m.form.focus = 1
		typeString(t, m, "Joel Coen, Ethan Coen")

		want := []string{"Joel Coen", "Ethan Coen"}
		if !reflect.DeepEqual(m.form.draft.Director, want) {
			t.Errorf("expected %v, got %v", want, m.form.draft.Director)
		}

		m.form.director.Blur()
		m.form.year.Focus()
		m.form.focus = 3
		typeString(t, m, "19x")
		if m.form.draft.ReleaseYear != 0 {
			t.Errorf("partial year must fall back to 0, got %d", m.form.draft.ReleaseYear)
		}
		typeString(t, m, "96")
		// "19x96" still unparsable, year stays unset
		if m.form.draft.ReleaseYear != 0 {
			t.Errorf("unparsable year must stay 0, got %d", m.form.draft.ReleaseYear)
		}
	})

	t.Run("Poster Debounce", func(t *testing.T) {
		t.Run("Fires Once For The Final Title", func(t *testing.T) {
			posters := newCountingPosters(map[string]string{"Heat": "https://img.example/heat.jpg"})
			m := adminWithCatalog(t, &tu.StubBackend{}, posters, catalog)
			m.transition(adminAdding)

			// Each keystroke schedules a tick stamped with a fresh sequence.
			seqs := []int{}
			for _, r := range "Heat" {
				next, _ := m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
				m = next.(*adminModel)
				seqs = append(seqs, m.posterSeq)
			}

			// Expired ticks from earlier keystrokes resolve to nothing.
			for _, seq := range seqs[:len(seqs)-1] {
				if _, cmd := m.update(posterTickMsg{gen: 1, seq: seq}); cmd != nil {
					t.Error("superseded tick must not trigger a lookup")
				}
			}

			// The final keystroke's tick performs the single lookup.
			_, cmd := m.update(posterTickMsg{gen: 1, seq: seqs[len(seqs)-1]})
			if cmd == nil {
				t.Fatal("latest tick must trigger a lookup")
			}
			next, _ := m.update(cmd())
			m = next.(*adminModel)

			if posters.count("Heat") != 1 {
				t.Errorf("expected exactly one lookup for Heat, got %d", posters.count("Heat"))
			}
			if posters.count("H")+posters.count("He")+posters.count("Hea") != 0 {
				t.Error("intermediate titles must never be looked up")
			}
			if !m.posterOK || m.posterURL != "https://img.example/heat.jpg" {
				t.Errorf("expected resolved poster, got %q %v", m.posterURL, m.posterOK)
			}
		})

		t.Run("Stale Resolution Never Overwrites", func(t *testing.T) {
			posters := newCountingPosters(nil)
			m := adminWithCatalog(t, &tu.StubBackend{}, posters, catalog)
			m.transition(adminAdding)

			typeString(t, m, "He")
			staleSeq := m.posterSeq
			typeString(t, m, "at")

			next, _ := m.update(adminPosterMsg{gen: 1, seq: staleSeq, url: "https://img.example/stale.jpg", ok: true})
			m = next.(*adminModel)

			if m.posterOK || m.posterURL != "" {
				t.Error("stale poster resolution must be dropped")
			}
		})

		t.Run("Clearing The Title Cancels Lookup", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)
			m.transition(adminAdding)

			typeString(t, m, "H")
			next, cmd := m.update(tea.KeyMsg{Type: tea.KeyBackspace})
			m = next.(*adminModel)

			if cmd != nil {
				t.Error("empty title must not schedule a tick")
			}
			if m.posterBusy {
				t.Error("no lookup pending for an empty title")
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("Add Appends Server Entity", func(t *testing.T) {
			backend := &tu.StubBackend{
				CreateMovieFn: func(ctx context.Context, movie models.Movie) (*models.Movie, error) {
					created := movie
					created.ID = "m3"
					return &created, nil
				},
			}
			m := adminWithCatalog(t, backend, nil, catalog)
			m.transition(adminAdding)
			typeString(t, m, "Ronin")

			cmd := m.save()
			if cmd == nil {
				t.Fatal("expected save command")
			}
			next, _ := m.update(cmd())
			m = next.(*adminModel)

			if got := len(m.movies.Items()); got != 3 {
				t.Fatalf("expected 3 items after add, got %d", got)
			}
			added := m.movies.Items()[2].(adminItem).movie
			if added.ID != "m3" || added.Title != "Ronin" {
				t.Errorf("unexpected appended entity %+v", added)
			}
			if m.mode != adminIdle {
				t.Error("successful add returns to the no-selection list")
			}
			if m.selected.Persisted() {
				t.Error("successful save clears the selection")
			}
		})

		t.Run("Edit Replaces By ID Without Duplication", func(t *testing.T) {
			backend := &tu.StubBackend{
				UpdateMovieFn: func(ctx context.Context, movie models.Movie) (*models.Movie, error) {
					return &movie, nil
				},
			}
			m := adminWithCatalog(t, backend, nil, catalog)
			m.selected = catalog[1]
			m.transition(adminEditing)

			m.form.title.SetValue("Heat (1995)")
			m.form.draft.Title = "Heat (1995)"
			m.form.draft.ID = "m2"

			cmd := m.save()
			next, _ := m.update(cmd())
			m = next.(*adminModel)

			if got := len(m.movies.Items()); got != 2 {
				t.Fatalf("update must not grow the list, got %d items", got)
			}
			updated := m.movies.Items()[1].(adminItem).movie
			if updated.Title != "Heat (1995)" {
				t.Errorf("expected patched title, got %q", updated.Title)
			}
			if m.movies.Items()[0].(adminItem).movie.Title != "Fargo" {
				t.Error("unrelated entries must not change")
			}
			if m.mode != adminIdle || m.selected.Persisted() {
				t.Error("successful update returns to the no-selection list")
			}
		})

		t.Run("Requires Title", func(t *testing.T) {
			m := adminWithCatalog(t, &tu.StubBackend{}, nil, catalog)
			m.transition(adminAdding)

			if cmd := m.save(); cmd != nil {
				t.Error("empty title must not save")
			}
			if m.errLine == "" {
				t.Error("expected validation message")
			}
		})

		t.Run("Failure Leaves List Untouched", func(t *testing.T) {
			backend := &tu.StubBackend{
				CreateMovieFn: func(ctx context.Context, movie models.Movie) (*models.Movie, error) {
					return nil, errors.New("backend down")
				},
			}
			m := adminWithCatalog(t, backend, nil, catalog)
			m.transition(adminAdding)
			typeString(t, m, "Ronin")

			cmd := m.save()
			next, _ := m.update(cmd())
			m = next.(*adminModel)

			if got := len(m.movies.Items()); got != 2 {
				t.Errorf("failed save must not change the list, got %d items", got)
			}
			if m.errLine == "" {
				t.Error("expected error line")
			}
			if m.mode != adminAdding {
				t.Error("failed save keeps the form open")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("Removes By ID", func(t *testing.T) {
			backend := &tu.StubBackend{
				DeleteMovieFn: func(ctx context.Context, id string) error {
					if id != "m1" {
						t.Errorf("expected m1, got %s", id)
					}
					return nil
				},
			}
			m := adminWithCatalog(t, backend, nil, catalog)
			m.selected = catalog[0]
			m.transition(adminViewing)

			next, cmd := m.update(keyRunes("x"))
			m = next.(*adminModel)
			if cmd == nil {
				t.Fatal("expected delete command")
			}
			next, _ = m.update(cmd())
			m = next.(*adminModel)

			if got := len(m.movies.Items()); got != 1 {
				t.Fatalf("expected 1 item after delete, got %d", got)
			}
			if m.movies.Items()[0].(adminItem).movie.ID != "m2" {
				t.Error("wrong entry removed")
			}
			if m.mode != adminIdle {
				t.Error("delete returns to the list")
			}
		})

		t.Run("Failure Keeps Entry", func(t *testing.T) {
			backend := &tu.StubBackend{
				DeleteMovieFn: func(ctx context.Context, id string) error {
					return errors.New("forbidden")
				},
			}
			m := adminWithCatalog(t, backend, nil, catalog)
			m.selected = catalog[0]
			m.transition(adminViewing)

			next, cmd := m.update(keyRunes("x"))
			m = next.(*adminModel)
			next, _ = m.update(cmd())
			m = next.(*adminModel)

			if got := len(m.movies.Items()); got != 2 {
				t.Errorf("failed delete must keep the list, got %d items", got)
			}
			if m.errLine == "" {
				t.Error("expected error line")
			}
		})
	})
}
