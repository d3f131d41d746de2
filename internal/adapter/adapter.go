// Package adapter defines the descriptor handed from adapter discovery to the
// code that later opens an adapter for EtherCAT traffic.
package adapter

import (
	"errors"
	"unicode/utf8"
)

// MaxNameLen is the size of the fixed name buffer used by the master stack.
// One byte is reserved for the terminator, so stored strings hold at most
// MaxNameLen-1 bytes.
const MaxNameLen = 128

var (
	// ErrCollectionFull is returned by Collector.Add once the limit is hit.
	ErrCollectionFull = errors.New("adapter collection full")
	// ErrEmptyName is returned by Collector.Add for a nameless adapter.
	ErrEmptyName = errors.New("adapter name is empty")
)

// Adapter describes one network adapter the master could use.
type Adapter struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// New builds an Adapter with both fields truncated to the name bound.
func New(name, description string) Adapter {
	return Adapter{
		Name:        Truncate(name),
		Description: Truncate(description),
	}
}

// Truncate bounds s to MaxNameLen-1 bytes without splitting a UTF-8 sequence.
// Input that is not UTF-8 at all is cut at the byte limit.
func Truncate(s string) string {
	const limit = MaxNameLen - 1
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return s[:limit]
	}
	return s[:cut]
}

// Adapters is an ordered collection in discovery order. Duplicates are kept.
type Adapters []Adapter

// Names returns the adapter names in order.
func (a Adapters) Names() []string {
	names := make([]string, 0, len(a))
	for _, ad := range a {
		names = append(names, ad.Name)
	}
	return names
}

// Release drops every element and leaves the collection empty. It is safe to
// call on a nil pointer, an empty collection, or twice.
func (a *Adapters) Release() {
	if a == nil || *a == nil {
		return
	}
	clear(*a)
	*a = nil
}
