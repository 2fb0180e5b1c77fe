package bibtex

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/marc2bib/helpers"
	"github.com/lehigh-university-libraries/marc2bib/tagfunc"
)

// ErrCannotDeriveKey is returned when no citation key was given and the
// record lacks the author or year needed to build one.
var ErrCannotDeriveKey = errors.New("cannot derive citation key")

// KeyStyle selects how a missing citation key is derived.
type KeyStyle string

const (
	// KeyStyleDefault derives surname + year, e.g. "Hargittai2009".
	KeyStyleDefault KeyStyle = ""

	// KeyStyleTitle appends the first title word, e.g. "Hargittai2009Symmetry".
	KeyStyleTitle KeyStyle = "title"
)

// ParseKeyStyle validates a key style name.
func ParseKeyStyle(s string) (KeyStyle, error) {
	switch KeyStyle(strings.ToLower(s)) {
	case KeyStyleDefault, "default":
		return KeyStyleDefault, nil
	case KeyStyleTitle:
		return KeyStyleTitle, nil
	default:
		return KeyStyleDefault, fmt.Errorf("unknown key style %q (want \"default\" or \"title\")", s)
	}
}

// ConvertOptions contains options for converting a single record.
type ConvertOptions struct {
	// BibKey is the citation key. Derived from author and year when empty.
	BibKey string

	// TagFuncs are merged over tagfunc.Defaults(): same names replace,
	// new names add a field, nil functions remove one.
	TagFuncs tagfunc.Set

	// KeyStyle selects how a missing BibKey is derived
	KeyStyle KeyStyle
}

// Assemble runs the effective tag functions against the record and builds
// the entry.
func Assemble(record tagfunc.Record, entryType string, opts *ConvertOptions) (*Entry, error) {
	if record == nil {
		return nil, errors.New("record is nil")
	}
	if entryType == "" {
		return nil, errors.New("entry type is empty")
	}
	if opts == nil {
		opts = &ConvertOptions{}
	}

	funcs := tagfunc.Merge(tagfunc.Defaults(), opts.TagFuncs)

	entry := &Entry{
		Type:   entryType,
		Fields: make(map[string]string, len(funcs)),
	}
	for _, name := range funcs.Names() {
		value, err := funcs[name](record)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", name, err)
		}
		if value == "" {
			slog.Debug("no value for field", "field", name)
			continue
		}
		entry.Fields[name] = value
	}

	entry.Key = opts.BibKey
	if entry.Key == "" {
		key, err := DeriveKey(entry.Fields, opts.KeyStyle)
		if err != nil {
			return nil, err
		}
		entry.Key = key
	}

	return entry, nil
}

// Convert assembles the entry for a record and renders it as BibTeX text.
func Convert(record tagfunc.Record, entryType string, opts *ConvertOptions) (string, error) {
	entry, err := Assemble(record, entryType, opts)
	if err != nil {
		return "", err
	}
	return entry.String(), nil
}

// DeriveKey builds a citation key from extracted field values: the first
// author's surname (the first token for corporate names) followed by the
// year, plus the first title word for KeyStyleTitle.
func DeriveKey(fields map[string]string, style KeyStyle) (string, error) {
	surname := helpers.KeyToken(helpers.KeyName(fields["author"]))
	year := helpers.KeyToken(fields["year"])

	var missing []string
	if surname == "" {
		missing = append(missing, "author")
	}
	if year == "" {
		missing = append(missing, "year")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrCannotDeriveKey, strings.Join(missing, " and "))
	}

	key := surname + year
	if style == KeyStyleTitle {
		key += helpers.KeyToken(helpers.FirstWord(fields["title"]))
	}
	return key, nil
}
