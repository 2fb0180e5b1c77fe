// Package marcjson provides a format plugin for MARC-in-JSON records.
package marcjson

import (
	"bytes"

	"github.com/lehigh-university-libraries/marc2bib/format"
)

// Version documents the MARC-in-JSON proposal this implementation targets.
const Version = "1.0"

// Format implements the MARC-in-JSON format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcjson"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC-in-JSON (v" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"json"}
}

// CanParse returns true if the input looks like MARC-in-JSON.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || (peek[0] != '{' && peek[0] != '[') {
		return false
	}
	return bytes.Contains(peek, []byte(`"leader"`)) || bytes.Contains(peek, []byte(`"subfields"`))
}

func init() {
	format.Register(&Format{})
}
