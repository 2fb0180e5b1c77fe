// Package bibtex assembles BibTeX entries from MARC records and provides the
// BibTeX output format plugin.
package bibtex

import (
	"bytes"
	"regexp"

	"github.com/lehigh-university-libraries/marc2bib/format"
)

// Version documents the BibTeX dialect this implementation writes.
const Version = "bibtex-1988"

var entryStart = regexp.MustCompile(`^@[A-Za-z]+\s*\{`)

// Format implements the BibTeX format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format     = (*Format)(nil)
	_ format.Serializer = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "bibtex"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "BibTeX bibliography format"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"bib", "bibtex"}
}

// CanParse returns true if the input looks like BibTeX. BibTeX is output
// only; the registry never selects it for input.
func (f *Format) CanParse(peek []byte) bool {
	return entryStart.Match(bytes.TrimSpace(peek))
}

func init() {
	format.Register(&Format{})
}
