package config

import (
	"context"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads the file at path and translates it into the
	// format-agnostic Document.
	Load(ctx context.Context, path string) (*Document, error)
}

// Document is the format-agnostic result of parsing a configuration file.
// Sections and entries keep the order in which they appear in the file.
type Document struct {
	Path     string
	Format   string
	Sections []*Section
}

// Section is one named group of entries.
type Section struct {
	Name    string
	Origin  string
	Entries []Entry
}

// Entry is a single option assignment. Origin points back into the source
// file (for example "run.hcl:4,3-20") for error messages.
type Entry struct {
	Key    string
	Value  cty.Value
	Origin string
}

// Section returns the first section whose name matches (normalized), or nil.
func (d *Document) Section(name string) *Section {
	want := normalizeName(name)
	for _, s := range d.Sections {
		if normalizeName(s.Name) == want {
			return s
		}
	}
	return nil
}

// Lookup returns the last entry assigned to key in the section, so that a
// repeated key behaves like an override.
func (s *Section) Lookup(key string) (Entry, bool) {
	want := normalizeName(key)
	for i := len(s.Entries) - 1; i >= 0; i-- {
		if normalizeName(s.Entries[i].Key) == want {
			return s.Entries[i], true
		}
	}
	return Entry{}, false
}

// normalizeName folds case and drops '_' and '-' so that CamelCase and
// snake_case spellings of the same name compare equal.
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.TrimSpace(s) {
		if r == '_' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
