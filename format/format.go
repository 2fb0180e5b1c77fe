// Package format defines the interface for record format plugins.
package format

import (
	"io"

	"github.com/lehigh-university-libraries/marc2bib/marc"
	"github.com/lehigh-university-libraries/marc2bib/tagfunc"
)

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format identifier (e.g., "marcxml", "bibtex")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// Extensions returns file extensions associated with this format
	Extensions() []string

	// CanParse returns true if this format can parse the given input
	CanParse(peek []byte) bool
}

// Parser is a format that can decode input into MARC records.
type Parser interface {
	Format

	// Parse reads input and returns the records it contains.
	Parse(r io.Reader, opts *ParseOptions) ([]*marc.Record, error)
}

// Serializer is a format that can write MARC records to output.
type Serializer interface {
	Format

	// Serialize writes the records to the output.
	Serialize(w io.Writer, records []*marc.Record, opts *SerializeOptions) error
}

// ParseOptions contains options for parsing.
type ParseOptions struct {
	// SourceName is an identifier for the source (for error messages)
	SourceName string
}

// SerializeOptions contains options for serialization.
type SerializeOptions struct {
	// EntryType is the BibTeX entry type written for every record
	EntryType string

	// BibKey overrides the derived citation key. Only valid for a single record.
	BibKey string

	// KeyStyle selects how citation keys are derived ("" or "title")
	KeyStyle string

	// TagFuncs are merged over the default tag functions
	TagFuncs tagfunc.Set

	// Strict fails on records whose citation key cannot be derived
	// instead of skipping them
	Strict bool
}

// NewParseOptions creates ParseOptions with defaults.
func NewParseOptions() *ParseOptions {
	return &ParseOptions{}
}

// NewSerializeOptions creates SerializeOptions with defaults.
func NewSerializeOptions() *SerializeOptions {
	return &SerializeOptions{
		EntryType: "book",
	}
}
