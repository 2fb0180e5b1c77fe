// Package marc provides the in-memory MARC 21 bibliographic record model
// shared by the record decoders and the tag functions.
package marc

import "strings"

// Record is a MARC bibliographic record. Data fields keep their record order.
type Record struct {
	// Leader is the 24 character record leader
	Leader string

	// ControlFields holds the 00X fields (001, 005, 008, ...)
	ControlFields []ControlField

	// DataFields holds the variable data fields (010 and up)
	DataFields []*Field
}

// ControlField is a 00X field with a tag and an unstructured value.
type ControlField struct {
	Tag   string
	Value string
}

// Field is a variable data field with two indicators and repeatable subfields.
type Field struct {
	Tag        string
	Indicator1 string
	Indicator2 string
	Subfields  []Subfield
}

// Subfield contains a Code and a Value.
type Subfield struct {
	Code  string
	Value string
}

// NewRecord creates a new empty Record.
func NewRecord() *Record {
	return &Record{
		ControlFields: make([]ControlField, 0),
		DataFields:    make([]*Field, 0),
	}
}

// NewField creates a data field. Blank indicators are stored as a single space.
func NewField(tag, ind1, ind2 string, subfields ...Subfield) *Field {
	return &Field{
		Tag:        tag,
		Indicator1: normalizeIndicator(ind1),
		Indicator2: normalizeIndicator(ind2),
		Subfields:  subfields,
	}
}

// AddField appends data fields to the record.
func (r *Record) AddField(fields ...*Field) {
	r.DataFields = append(r.DataFields, fields...)
}

// AddControlField appends a control field to the record.
func (r *Record) AddControlField(tag, value string) {
	r.ControlFields = append(r.ControlFields, ControlField{Tag: tag, Value: value})
}

// ControlField returns the value of the first control field with the tag.
func (r *Record) ControlField(tag string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, cf := range r.ControlFields {
		if cf.Tag == tag {
			return cf.Value, true
		}
	}
	return "", false
}

// ControlNum returns the record's control number (001), trimmed.
func (r *Record) ControlNum() string {
	v, _ := r.ControlField("001")
	return strings.TrimSpace(v)
}

// Fields returns all data fields matching any of the tags, in record order.
func (r *Record) Fields(tags ...string) []*Field {
	if r == nil {
		return nil
	}
	fields := make([]*Field, 0, len(tags))
	for _, f := range r.DataFields {
		for _, t := range tags {
			if f.Tag == t {
				fields = append(fields, f)
				break
			}
		}
	}
	return fields
}

// Field returns the first data field with the tag, or nil.
func (r *Record) Field(tag string) *Field {
	if r == nil {
		return nil
	}
	for _, f := range r.DataFields {
		if f.Tag == tag {
			return f
		}
	}
	return nil
}

// Publisher returns 260$b, or $b of the first 264 publication statement
// (second indicator 1). Empty when neither is present.
func (r *Record) Publisher() string {
	return r.publicationSubfield("b")
}

// PubYear returns the raw publication date subfield ($c) located the same
// way as Publisher.
func (r *Record) PubYear() string {
	return r.publicationSubfield("c")
}

func (r *Record) publicationSubfield(code string) string {
	if f := r.Field("260"); f != nil {
		return f.Get(code)
	}
	for _, f := range r.Fields("264") {
		if f.Indicator2 == "1" {
			return f.Get(code)
		}
	}
	return ""
}

// Subfield returns the value of the first subfield with the code.
func (f *Field) Subfield(code string) (string, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// Get returns the first value of the subfield code, or "".
func (f *Field) Get(code string) string {
	v, _ := f.Subfield(code)
	return v
}

// SubfieldValues returns the values of all subfields matching any of the
// codes, in field order.
func (f *Field) SubfieldValues(codes ...string) []string {
	var values []string
	for _, sf := range f.Subfields {
		for _, c := range codes {
			if sf.Code == c {
				values = append(values, sf.Value)
				break
			}
		}
	}
	return values
}

// MatchesIndicators reports whether the field indicators match the filters.
// An empty filter or "*" matches any indicator.
func (f *Field) MatchesIndicators(ind1, ind2 string) bool {
	i1 := ind1 == "" || ind1 == "*" || normalizeIndicator(ind1) == f.Indicator1
	i2 := ind2 == "" || ind2 == "*" || normalizeIndicator(ind2) == f.Indicator2
	return i1 && i2
}

func normalizeIndicator(ind string) string {
	if ind == "" || ind == "#" {
		return " "
	}
	return ind[:1]
}

// IsControlTag reports whether tag names a control field (00X).
func IsControlTag(tag string) bool {
	return strings.HasPrefix(tag, "00")
}
