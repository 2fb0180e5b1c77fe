// Package mapping provides YAML mapping profiles that declare extra or
// replacement tag functions without writing Go code.
package mapping

// Profile represents a complete mapping configuration for a catalog or use case.
type Profile struct {
	// Name is the profile identifier
	Name string `yaml:"name" json:"name"`

	// Description provides human-readable documentation
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// EntryType is the BibTeX entry type used when none is given on the command line
	EntryType string `yaml:"entry_type,omitempty" json:"entry_type,omitempty"`

	// KeyStyle selects how citation keys are derived ("" or "title")
	KeyStyle string `yaml:"key_style,omitempty" json:"key_style,omitempty"`

	// Fields maps BibTeX field names to extraction rules
	Fields map[string]FieldMapping `yaml:"fields" json:"fields"`
}

// FieldMapping describes how one BibTeX field is read from MARC data fields.
type FieldMapping struct {
	// Tags are the MARC tags to read, in priority order of record appearance
	// (e.g., ["856"], ["260", "264"])
	Tags []string `yaml:"tags,omitempty" json:"tags,omitempty"`

	// Subfield is the subfield code to read. Defaults to "a". Several codes
	// (e.g., "ab") read each matching subfield in field order, joined by a space.
	Subfield string `yaml:"subfield,omitempty" json:"subfield,omitempty"`

	// Ind1 and Ind2 filter fields by indicator; empty or "*" matches any
	Ind1 string `yaml:"ind1,omitempty" json:"ind1,omitempty"`
	Ind2 string `yaml:"ind2,omitempty" json:"ind2,omitempty"`

	// All reads every matching field instead of the first one
	All bool `yaml:"all,omitempty" json:"all,omitempty"`

	// Join is the separator for All. Defaults to " and ".
	Join string `yaml:"join,omitempty" json:"join,omitempty"`

	// Remove lists characters deleted anywhere in the value (e.g., "[]")
	Remove string `yaml:"remove,omitempty" json:"remove,omitempty"`

	// TrimLeft and TrimRight list characters trimmed from each end
	TrimLeft  string `yaml:"trim_left,omitempty" json:"trim_left,omitempty"`
	TrimRight string `yaml:"trim_right,omitempty" json:"trim_right,omitempty"`

	// Pattern is a regular expression applied to each value; the first
	// capture group (or the whole match) becomes the value
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	// Skip excludes the field from output
	Skip bool `yaml:"skip,omitempty" json:"skip,omitempty"`
}

// GetSubfield returns the subfield code with a default.
func (m FieldMapping) GetSubfield() string {
	if m.Subfield != "" {
		return m.Subfield
	}
	return "a"
}

// GetJoin returns the multi-value separator with a default.
func (m FieldMapping) GetJoin() string {
	if m.Join != "" {
		return m.Join
	}
	return " and "
}
