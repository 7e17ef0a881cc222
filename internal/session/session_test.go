package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func newSession(t *testing.T) (*Session, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "favorites.txt")
	s, err := New(NewFavoritesFile(path))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, path
}

func TestAppendHistoryIsDistinct(t *testing.T) {
	s, _ := newSession(t)

	if !s.AppendHistory("My laptop crashed overnight.") {
		t.Error("first append reported duplicate")
	}
	if s.AppendHistory("My laptop crashed overnight.") {
		t.Error("second append reported new")
	}
	s.AppendHistory("The bus never came.")

	got := s.History()
	if len(got) != 2 || got[0] != "My laptop crashed overnight." || got[1] != "The bus never came." {
		t.Errorf("History() = %q", got)
	}

	got[0] = "mutated"
	if s.History()[0] == "mutated" {
		t.Error("History() returned shared slice")
	}

	s.ClearHistory()
	if len(s.History()) != 0 {
		t.Error("ClearHistory left entries")
	}
}

func TestAddFavoriteWritesOneLine(t *testing.T) {
	s, path := newSession(t)

	for i := 0; i < 3; i++ {
		added, err := s.AddFavorite("The bus never came.")
		if err != nil {
			t.Fatalf("AddFavorite: %v", err)
		}
		if added != (i == 0) {
			t.Errorf("call %d: added = %v", i, added)
		}
	}

	if got := s.Favorites(); len(got) != 1 {
		t.Errorf("Favorites() = %q", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "The bus never came.\n" {
		t.Errorf("file = %q", data)
	}
}

func TestFavoritesSurviveSessions(t *testing.T) {
	s, path := newSession(t)
	s.AddFavorite("first")
	s.AddFavorite("second\nline")

	next, err := New(NewFavoritesFile(path))
	if err != nil {
		t.Fatal(err)
	}
	got := next.Favorites()
	if strings.Join(got, "|") != "first|second line" {
		t.Errorf("Favorites() = %q", got)
	}
	if next.ID() == s.ID() {
		t.Error("sessions share an id")
	}
}

func TestClearFavoritesRemovesFile(t *testing.T) {
	s, path := newSession(t)
	s.AddFavorite("keep me")

	if err := s.ClearFavorites(); err != nil {
		t.Fatalf("ClearFavorites: %v", err)
	}
	if len(s.Favorites()) != 0 {
		t.Error("favorites not cleared")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still present: %v", err)
	}

	next, err := New(NewFavoritesFile(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(next.Favorites()) != 0 {
		t.Errorf("new session loaded %q", next.Favorites())
	}

	if err := s.ClearFavorites(); err != nil {
		t.Errorf("second clear: %v", err)
	}
}

func TestAddFavoriteKeepsMemoryOnWriteFailure(t *testing.T) {
	s, path := newSession(t)
	// A directory where the file should be makes every write fail.
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}

	added, err := s.AddFavorite("text")
	if err == nil {
		t.Fatal("expected write error")
	}
	if !added || len(s.Favorites()) != 1 {
		t.Errorf("added=%v favorites=%q", added, s.Favorites())
	}
}

func TestMostSaved(t *testing.T) {
	s, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"a", "b", "a", "c", "d"} {
		s.AddFavorite(f)
	}

	got := s.MostSaved(3)
	if len(got) != 3 {
		t.Fatalf("MostSaved(3) = %+v", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Text != want || got[i].Count != 1 {
			t.Errorf("rank %d = %+v, want %s x1", i, got[i], want)
		}
	}
}

func TestCountersAndLast(t *testing.T) {
	s, _ := newSession(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.IncrementGenerated()
		}()
	}
	wg.Wait()

	if s.Generated() != 10 {
		t.Errorf("Generated() = %d", s.Generated())
	}

	s.SetLast("latest")
	if s.Last() != "latest" {
		t.Errorf("Last() = %q", s.Last())
	}
}
