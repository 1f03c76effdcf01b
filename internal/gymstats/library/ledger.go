// Package library keeps the set of exercise names ever used in plans and sessions.
//
// The library is never seeded: it only grows from saves, keyed by the
// normalized name, and it is the source of the exercise name suggestions.
package library

import (
	"slices"
	"strings"

	"github.com/2beens/gymtracker/internal/gymstats/names"
)

// Ledger is the in-memory view of the library, one entry per normalized name.
type Ledger struct {
	entries map[string]string
}

func NewLedger(raw ...string) *Ledger {
	l := &Ledger{
		entries: make(map[string]string, len(raw)),
	}
	l.Record(raw...)
	return l
}

// Record upserts every non empty name. The last recorded display value wins.
func (l *Ledger) Record(raw ...string) {
	for _, r := range raw {
		key := names.Normalize(r)
		if key == "" {
			continue
		}
		l.entries[key] = key
	}
}

// Remove deletes the entry of name and reports whether there was one.
func (l *Ledger) Remove(name string) bool {
	key := names.Normalize(name)
	if _, ok := l.entries[key]; !ok {
		return false
	}
	delete(l.entries, key)
	return true
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// List returns all names, sorted.
func (l *Ledger) List() []string {
	list := make([]string, 0, len(l.entries))
	for _, name := range l.entries {
		list = append(list, name)
	}
	slices.Sort(list)
	return list
}

// Search returns the sorted names containing query, ignoring case.
// An empty query matches everything.
func (l *Ledger) Search(query string) []string {
	q := names.Key(query)
	var found []string
	for _, name := range l.List() {
		if strings.Contains(names.Key(name), q) {
			found = append(found, name)
		}
	}
	return found
}

// AvailableNames merges the library with the names already in a session,
// as offered when an extra exercise is added mid workout.
func AvailableNames(libraryNames, sessionNames []string) []string {
	l := NewLedger(libraryNames...)
	l.Record(sessionNames...)
	return l.List()
}
