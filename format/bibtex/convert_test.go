package bibtex_test

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/marc2bib/format"
	"github.com/lehigh-university-libraries/marc2bib/format/bibtex"
	"github.com/lehigh-university-libraries/marc2bib/format/marcxml"
	"github.com/lehigh-university-libraries/marc2bib/marc"
	"github.com/lehigh-university-libraries/marc2bib/tagfunc"
)

// loadHargittai decodes the Hargittai (2009) fixture through the MARCXML parser.
func loadHargittai(t *testing.T) *marc.Record {
	t.Helper()
	f, err := os.Open("../marcxml/testdata/hargittai2009.xml")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	defer f.Close()

	records, err := (&marcxml.Format{}).Parse(f, format.NewParseOptions())
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	return records[0]
}

func sf(code, value string) marc.Subfield {
	return marc.Subfield{Code: code, Value: value}
}

func TestConvert_DefaultTagFuncs(t *testing.T) {
	want := "@book{Hargittai2009,\n" +
		" author = {Hargittai, I.},\n" +
		" edition = {3rd ed.},\n" +
		" title = {Symmetry through the eyes of a chemist},\n" +
		" year = {2009}\n" +
		"}\n\n"

	got, err := bibtex.Convert(loadHargittai(t), "book", nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvert_CustomTagFuncs(t *testing.T) {
	want := "@book{Hargittai2009,\n" +
		" author = {Hargittai, I.},\n" +
		" edition = {3rd ed.},\n" +
		" title = {Meow.},\n" +
		" year = {2009}\n" +
		"}\n\n"

	opts := &bibtex.ConvertOptions{
		TagFuncs: tagfunc.Set{
			"title": func(tagfunc.Record) (string, error) { return "Meow.", nil },
		},
	}
	got, err := bibtex.Convert(loadHargittai(t), "book", opts)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvert_ExtendTagFuncs(t *testing.T) {
	want := "@book{Hargittai2009,\n" +
		" author = {Hargittai, I.},\n" +
		" edition = {3rd ed.},\n" +
		" title = {Symmetry through the eyes of a chemist},\n" +
		" url = {http://dx.doi.org/10.1007/978-1-4020-5628-4},\n" +
		" year = {2009}\n" +
		"}\n\n"

	url := func(r tagfunc.Record) (string, error) {
		if f := r.Field("856"); f != nil {
			return f.Get("u"), nil
		}
		return "", nil
	}
	got, err := bibtex.Convert(loadHargittai(t), "book", &bibtex.ConvertOptions{
		TagFuncs: tagfunc.Set{"url": url},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}
}

func TestConvert_ExplicitBibKey(t *testing.T) {
	got, err := bibtex.Convert(loadHargittai(t), "book", &bibtex.ConvertOptions{BibKey: "Hargittai2009Symmetry"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if !strings.HasPrefix(got, "@book{Hargittai2009Symmetry,\n") {
		t.Errorf("Convert() header = %q", strings.SplitN(got, "\n", 2)[0])
	}
}

func TestConvert_TitleKeyStyle(t *testing.T) {
	entry, err := bibtex.Assemble(loadHargittai(t), "book", &bibtex.ConvertOptions{KeyStyle: bibtex.KeyStyleTitle})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if entry.Key != "Hargittai2009Symmetry" {
		t.Errorf("Key = %q, want %q", entry.Key, "Hargittai2009Symmetry")
	}
}

func TestConvert_NoteNotSupported(t *testing.T) {
	_, err := bibtex.Convert(loadHargittai(t), "book", &bibtex.ConvertOptions{
		TagFuncs: tagfunc.Set{"note": tagfunc.Note},
	})
	if !errors.Is(err, tagfunc.ErrNotSupported) {
		t.Fatalf("Convert() error = %v, want ErrNotSupported", err)
	}
	if !strings.Contains(err.Error(), "extracting note") {
		t.Errorf("error %q does not name the field", err.Error())
	}
}

func TestConvert_NoteOverridden(t *testing.T) {
	note := func(tagfunc.Record) (string, error) { return "Includes index", nil }
	entry, err := bibtex.Assemble(loadHargittai(t), "book", &bibtex.ConvertOptions{
		TagFuncs: tagfunc.Set{"note": note},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if entry.Fields["note"] != "Includes index" {
		t.Errorf("note = %q", entry.Fields["note"])
	}
}

func TestConvert_ExcludeField(t *testing.T) {
	entry, err := bibtex.Assemble(loadHargittai(t), "book", &bibtex.ConvertOptions{
		TagFuncs: tagfunc.Set{"edition": nil},
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if _, ok := entry.Fields["edition"]; ok {
		t.Error("edition should be excluded")
	}
	if got := strings.Join(entry.Names(), ","); got != "author,title,year" {
		t.Errorf("Names() = %s", got)
	}
}

func TestConvert_CorporateAuthorKey(t *testing.T) {
	record := recordWith(
		marc.NewField("110", "2", " ", sf("a", "Royal Society of Chemistry,")),
		marc.NewField("245", "1", "0", sf("a", "Annual reports.")),
		marc.NewField("260", " ", " ", sf("a", "London :"), sf("c", "1999.")),
	)

	entry, err := bibtex.Assemble(record, "book", nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if entry.Key != "Royal1999" {
		t.Errorf("Key = %q, want %q", entry.Key, "Royal1999")
	}
	if got := entry.Fields["author"]; got != "Royal Society of Chemistry" {
		t.Errorf("author = %q, want %q", got, "Royal Society of Chemistry")
	}
}

func TestConvert_CannotDeriveKey(t *testing.T) {
	tests := []struct {
		name        string
		record      *marc.Record
		wantMissing string
	}{
		{
			name:        "no author",
			record:      recordWith(marc.NewField("260", " ", " ", sf("c", "1999"))),
			wantMissing: "missing author",
		},
		{
			name:        "no year",
			record:      recordWith(marc.NewField("100", "1", " ", sf("a", "Doe, Jane."))),
			wantMissing: "missing year",
		},
		{
			name:        "empty record",
			record:      marc.NewRecord(),
			wantMissing: "missing author and year",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bibtex.Convert(tt.record, "book", nil)
			if !errors.Is(err, bibtex.ErrCannotDeriveKey) {
				t.Fatalf("Convert() error = %v, want ErrCannotDeriveKey", err)
			}
			if !strings.Contains(err.Error(), tt.wantMissing) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMissing)
			}

			// An explicit key makes the same record convertible.
			if _, err := bibtex.Convert(tt.record, "book", &bibtex.ConvertOptions{BibKey: "k"}); err != nil {
				t.Errorf("Convert() with key error = %v", err)
			}
		})
	}
}

func TestConvert_InvalidArguments(t *testing.T) {
	if _, err := bibtex.Convert(nil, "book", nil); err == nil {
		t.Error("expected error for nil record")
	}
	if _, err := bibtex.Convert(marc.NewRecord(), "", nil); err == nil {
		t.Error("expected error for empty entry type")
	}
}

func TestConvert_FullRecord(t *testing.T) {
	record := recordWith(
		marc.NewField("100", "1", " ", sf("a", "Weyl, Hermann,")),
		marc.NewField("245", "1", "0", sf("a", "Symmetry :"), sf("b", "an introduction."), sf("c", "by Hermann Weyl.")),
		marc.NewField("250", " ", " ", sf("a", "2nd ed. /")),
		marc.NewField("260", " ", " ", sf("a", "[Princeton] :"), sf("b", "Princeton University Press,"), sf("c", "c1952.")),
		marc.NewField("300", " ", " ", sf("a", "168 p. :"), sf("b", "ill.")),
		marc.NewField("490", "1", " ", sf("a", "Princeton science library,")),
		marc.NewField("700", "1", " ", sf("a", "Doe, Jane,"), sf("e", "editor.")),
		marc.NewField("700", "1", " ", sf("a", "Roe, Richard")),
	)

	want := "@misc{Weyl1952,\n" +
		" address = {Princeton},\n" +
		" author = {Weyl, Hermann},\n" +
		" edition = {2nd ed.},\n" +
		" editor = {Doe, Jane and Roe, Richard},\n" +
		" pages = {168},\n" +
		" publisher = {Princeton University Press},\n" +
		" series = {Princeton science library},\n" +
		" title = {Symmetry: an introduction},\n" +
		" volume = {168 p. :},\n" +
		" year = {1952}\n" +
		"}\n\n"

	got, err := bibtex.Convert(record, "misc", nil)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if got != want {
		t.Errorf("Convert() =\n%s\nwant\n%s", got, want)
	}

	again, _ := bibtex.Convert(record, "misc", nil)
	if again != got {
		t.Error("converting the same record twice gave different output")
	}
}

func TestEntryString_NoFields(t *testing.T) {
	e := &bibtex.Entry{Type: "book", Key: "k", Fields: map[string]string{}}
	if got := e.String(); got != "@book{k,\n}\n\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestSerialize(t *testing.T) {
	good := loadHargittai(t)
	keyless := recordWith(marc.NewField("245", "1", "0", sf("a", "Untitled")))

	t.Run("skips keyless records", func(t *testing.T) {
		var buf bytes.Buffer
		err := (&bibtex.Format{}).Serialize(&buf, []*marc.Record{good, keyless, good}, format.NewSerializeOptions())
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if n := strings.Count(buf.String(), "@book{Hargittai2009,"); n != 2 {
			t.Errorf("entries written = %d, want 2", n)
		}
	})

	t.Run("strict fails on keyless records", func(t *testing.T) {
		opts := format.NewSerializeOptions()
		opts.Strict = true
		err := (&bibtex.Format{}).Serialize(&bytes.Buffer{}, []*marc.Record{good, keyless}, opts)
		if !errors.Is(err, bibtex.ErrCannotDeriveKey) {
			t.Fatalf("Serialize() error = %v, want ErrCannotDeriveKey", err)
		}
	})

	t.Run("key only for a single record", func(t *testing.T) {
		opts := format.NewSerializeOptions()
		opts.BibKey = "k"
		err := (&bibtex.Format{}).Serialize(&bytes.Buffer{}, []*marc.Record{good, good}, opts)
		if err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("not supported aborts", func(t *testing.T) {
		opts := format.NewSerializeOptions()
		opts.TagFuncs = tagfunc.Set{"note": tagfunc.Note}
		err := (&bibtex.Format{}).Serialize(&bytes.Buffer{}, []*marc.Record{good}, opts)
		if !errors.Is(err, tagfunc.ErrNotSupported) {
			t.Fatalf("Serialize() error = %v, want ErrNotSupported", err)
		}
	})

	t.Run("entry type and key style", func(t *testing.T) {
		opts := format.NewSerializeOptions()
		opts.EntryType = "inbook"
		opts.KeyStyle = "title"
		var buf bytes.Buffer
		if err := (&bibtex.Format{}).Serialize(&buf, []*marc.Record{good}, opts); err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		if !strings.HasPrefix(buf.String(), "@inbook{Hargittai2009Symmetry,\n") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestParseKeyStyle(t *testing.T) {
	for _, s := range []string{"", "default", "title", "TITLE"} {
		if _, err := bibtex.ParseKeyStyle(s); err != nil {
			t.Errorf("ParseKeyStyle(%q) error = %v", s, err)
		}
	}
	if _, err := bibtex.ParseKeyStyle("random"); err == nil {
		t.Error("expected error for unknown key style")
	}
}

func TestCanParse(t *testing.T) {
	f := &bibtex.Format{}
	if !f.CanParse([]byte("  @book{k,\n}")) {
		t.Error("CanParse() = false for a BibTeX entry")
	}
	if f.CanParse([]byte("<record/>")) {
		t.Error("CanParse() = true for XML")
	}
}

func recordWith(fields ...*marc.Field) *marc.Record {
	r := marc.NewRecord()
	r.AddField(fields...)
	return r
}
