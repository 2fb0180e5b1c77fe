// Package marcxml provides a format plugin for MARC 21 XML (MARCXML) records.
package marcxml

import (
	"bytes"

	"github.com/lehigh-university-libraries/marc2bib/format"
)

// Version documents the MARCXML schema this implementation targets.
const Version = "MARC21 slim 1.1"

// Namespace is the MARCXML namespace URI.
const Namespace = "http://www.loc.gov/MARC21/slim"

// Format implements the MARCXML format.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format = (*Format)(nil)
	_ format.Parser = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "marcxml"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "MARC 21 XML (" + Version + ")"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"xml", "marcxml"}
}

// CanParse returns true if the input looks like MARCXML.
func (f *Format) CanParse(peek []byte) bool {
	peek = bytes.TrimSpace(peek)
	if len(peek) == 0 || peek[0] != '<' {
		return false
	}

	if bytes.Contains(peek, []byte("loc.gov/MARC21/slim")) {
		return true
	}
	return bytes.Contains(peek, []byte("<record")) &&
		(bytes.Contains(peek, []byte("<datafield")) || bytes.Contains(peek, []byte("<leader")))
}

func init() {
	format.Register(&Format{})
}
