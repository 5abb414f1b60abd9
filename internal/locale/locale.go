// Package locale maps the human language names clients send ("Nepali",
// "sanskrit") to the locale codes used by the article and speech backends.
package locale

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultName is the language assumed when a request names none.
const DefaultName = "english"

// Normalize trims and case-folds a language name. An empty name becomes
// DefaultName.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	// Casers carry state, so one is built per call.
	return cases.Fold().String(name)
}

// Entry pairs a language name with its locale code.
type Entry struct {
	Name string
	Code string
}

// Table is a fixed, ordered mapping from language names to locale tags with
// a default for unknown names. It is immutable after construction.
type Table struct {
	tags     map[string]language.Tag
	names    []string
	fallback language.Tag
}

// NewTable builds a Table. Codes must be valid BCP 47 tags; an invalid one
// panics because tables are package-level constants.
func NewTable(fallback string, entries ...Entry) *Table {
	t := &Table{
		tags:     make(map[string]language.Tag, len(entries)),
		names:    make([]string, 0, len(entries)),
		fallback: language.MustParse(fallback),
	}
	for _, e := range entries {
		t.tags[e.Name] = language.MustParse(e.Code)
		t.names = append(t.names, e.Name)
	}
	return t
}

// Code returns the locale code for a language name, or the table's fallback
// code when the name is unknown.
func (t *Table) Code(name string) string {
	if tag, ok := t.tags[Normalize(name)]; ok {
		return tag.String()
	}
	return t.fallback.String()
}

// Lookup is like Code but reports whether the name was in the table.
func (t *Table) Lookup(name string) (string, bool) {
	tag, ok := t.tags[Normalize(name)]
	if !ok {
		return t.fallback.String(), false
	}
	return tag.String(), true
}

// Names returns the language names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Fallback returns the code used for unknown names.
func (t *Table) Fallback() string {
	return t.fallback.String()
}
