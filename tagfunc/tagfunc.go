// Package tagfunc defines the tag functions that derive BibTeX field values
// from MARC records.
//
// A tag function returns "" when the record carries no usable data for its
// field. Errors are reserved for extractors that cannot run at all, such as
// Note, which is not implemented and must be overridden or excluded.
package tagfunc

import (
	"errors"
	"sort"

	"github.com/lehigh-university-libraries/marc2bib/marc"
)

// ErrNotSupported is returned by extractors that are deliberately unimplemented.
var ErrNotSupported = errors.New("extraction not supported")

// Record is the record capability set the tag functions read from.
// *marc.Record satisfies it.
type Record interface {
	// Fields returns every data field with any of the tags.
	Fields(tags ...string) []*marc.Field

	// Field returns the first data field with the tag, or nil.
	Field(tag string) *marc.Field

	// Publisher returns the raw publisher statement.
	Publisher() string

	// PubYear returns the raw publication date.
	PubYear() string
}

// Func derives one BibTeX field value from a record.
type Func func(r Record) (string, error)

// Set maps BibTeX field names to tag functions.
type Set map[string]Func

// Defaults returns a fresh copy of the default tag function set.
// Note is not part of it.
func Defaults() Set {
	return Set{
		"address":   Address,
		"author":    Author,
		"edition":   Edition,
		"editor":    Editor,
		"pages":     Pages,
		"publisher": Publisher,
		"series":    Series,
		"title":     Title,
		"volume":    Volume,
		"year":      Year,
	}
}

// Known returns every built-in tag function, including unimplemented ones.
func Known() Set {
	s := Defaults()
	s["note"] = Note
	return s
}

// Sources returns a description of the MARC tags each built-in tag
// function reads, keyed by field name.
func Sources() map[string]string {
	return map[string]string{
		"address":   "260/264 $a",
		"author":    "100/110/400/600/800 $a",
		"edition":   "250 $a",
		"editor":    "700 $a",
		"note":      "not implemented",
		"pages":     "300 $a",
		"publisher": "260 $b, 264 $b",
		"series":    "490 $a",
		"title":     "245 $a $b",
		"volume":    "300 $a",
		"year":      "260 $c, 264 $c",
	}
}

// Merge returns a new set with overrides applied over base. A nil override
// removes the name from the result.
func Merge(base, overrides Set) Set {
	merged := make(Set, len(base)+len(overrides))
	for name, fn := range base {
		merged[name] = fn
	}
	for name, fn := range overrides {
		if fn == nil {
			delete(merged, name)
			continue
		}
		merged[name] = fn
	}
	return merged
}

// Names returns the field names of the set, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
