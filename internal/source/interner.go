package source

import (
	"slices"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned string. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier text for one compilation session.
// Strings are NFC-normalised before lookup so that visually identical
// identifiers share one entry. Safe for concurrent use.
type Interner struct {
	mu    sync.RWMutex
	byID  []string
	index map[string]StringID
}

// NewInterner returns an interner holding only the empty string.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, adding it on first use.
func (i *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)

	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	if ok {
		return id
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	// own copy, the caller's buffer may be reused
	cpy := string([]byte(s))
	id = StringID(len(i.byID)) // #nosec G115 -- identifiers per session fit in uint32
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Canonical returns the shared copy of s.
func (i *Interner) Canonical(s string) string {
	return i.MustLookup(i.Intern(s))
}

// Lookup returns the string interned under id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup for ids known to be valid. It panics otherwise.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts NoStringID too, so it is never below 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}

// Snapshot copies the interned strings in id order.
func (i *Interner) Snapshot() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.byID)
}
