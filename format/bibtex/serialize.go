package bibtex

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lehigh-university-libraries/marc2bib/format"
	"github.com/lehigh-university-libraries/marc2bib/marc"
)

// Entry is an assembled BibTeX entry. Fields never holds empty values.
type Entry struct {
	Type   string
	Key    string
	Fields map[string]string
}

// Names returns the entry's field names in output order (alphabetical).
func (e *Entry) Names() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the entry as BibTeX text followed by one blank line.
// Values are written verbatim inside braces.
func (e *Entry) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "@%s{%s,\n", e.Type, e.Key)

	names := e.Names()
	for i, name := range names {
		fmt.Fprintf(&sb, " %s = {%s}", name, e.Fields[name])
		if i < len(names)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("}\n\n")
	return sb.String()
}

// Serialize writes one BibTeX entry per record.
func (f *Format) Serialize(w io.Writer, records []*marc.Record, opts *format.SerializeOptions) error {
	if opts == nil {
		opts = format.NewSerializeOptions()
	}
	if opts.BibKey != "" && len(records) > 1 {
		return fmt.Errorf("a citation key can only be given for a single record, got %d records", len(records))
	}

	style, err := ParseKeyStyle(opts.KeyStyle)
	if err != nil {
		return err
	}

	convertOpts := &ConvertOptions{
		BibKey:   opts.BibKey,
		TagFuncs: opts.TagFuncs,
		KeyStyle: style,
	}

	for i, record := range records {
		entry, err := Assemble(record, opts.EntryType, convertOpts)
		if errors.Is(err, ErrCannotDeriveKey) && !opts.Strict {
			slog.Warn("skipping record", "index", i, "controlNumber", record.ControlNum(), "error", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("converting record %d: %w", i, err)
		}

		if _, err := io.WriteString(w, entry.String()); err != nil {
			return err
		}
	}

	return nil
}
