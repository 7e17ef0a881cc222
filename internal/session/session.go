// Package session holds the per-process state the pipelines mutate: the
// generated counter, the excuse history, the favorites list and the last
// excuse shown.
package session

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// FavoriteCount is one row of the most-saved ranking.
type FavoriteCount struct {
	Text  string
	Count int
}

// Session is safe for concurrent use. The UI reads it while a pipeline
// command mutates it from another goroutine.
type Session struct {
	id    uuid.UUID
	store *FavoritesFile

	mu        sync.Mutex
	generated int
	history   []string
	favorites []string
	last      string
}

// New starts a session and loads favorites from store. A nil store keeps
// favorites in memory only.
func New(store *FavoritesFile) (*Session, error) {
	s := &Session{
		id:    uuid.New(),
		store: store,
	}
	if err := s.LoadFavorites(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string {
	return s.id.String()
}

// LoadFavorites fills the favorites list from the file. It does nothing
// when the list already has entries.
func (s *Session) LoadFavorites() error {
	if s.store == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.favorites) > 0 {
		return nil
	}
	lines, err := s.store.Load()
	if err != nil {
		return err
	}
	s.favorites = append(s.favorites, lines...)
	return nil
}

// AppendHistory records text unless it is already in the history.
func (s *Session) AppendHistory(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.history, text) {
		return false
	}
	s.history = append(s.history, text)
	return true
}

func (s *Session) IncrementGenerated() {
	s.mu.Lock()
	s.generated++
	s.mu.Unlock()
}

// AddFavorite adds text to the in-memory list and the file. It reports
// false when the favorite was already present. The in-memory entry is kept
// even when the file write fails.
func (s *Session) AddFavorite(text string) (bool, error) {
	text = oneLine(text)
	if text == "" {
		return false, nil
	}

	s.mu.Lock()
	if contains(s.favorites, text) {
		s.mu.Unlock()
		return false, nil
	}
	s.favorites = append(s.favorites, text)
	s.mu.Unlock()

	if s.store == nil {
		return true, nil
	}
	if _, err := s.store.Append(text); err != nil {
		return true, err
	}
	return true, nil
}

func (s *Session) ClearHistory() {
	s.mu.Lock()
	s.history = nil
	s.mu.Unlock()
}

// ClearFavorites empties the list and deletes the file.
func (s *Session) ClearFavorites() error {
	s.mu.Lock()
	s.favorites = nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Remove()
}

func (s *Session) SetLast(text string) {
	s.mu.Lock()
	s.last = text
	s.mu.Unlock()
}

func (s *Session) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) Generated() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generated
}

func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

func (s *Session) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favorites...)
}

// MostSaved ranks favorites by how often they occur, first-saved first on
// ties. Since AddFavorite never stores a duplicate every count is 1, so
// this is the first n favorites in save order.
func (s *Session) MostSaved(n int) []FavoriteCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int{}
	var order []string
	for _, f := range s.favorites {
		if counts[f] == 0 {
			order = append(order, f)
		}
		counts[f]++
	}

	ranked := make([]FavoriteCount, 0, len(order))
	for _, f := range order {
		ranked = append(ranked, FavoriteCount{Text: f, Count: counts[f]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
