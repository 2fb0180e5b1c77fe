package marcxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/marc2bib/format"
	"github.com/lehigh-university-libraries/marc2bib/marc"
)

// xmlRecord mirrors a MARCXML <record>. Element names are matched
// regardless of namespace prefix.
type xmlRecord struct {
	Leader        string            `xml:"leader"`
	ControlFields []xmlControlField `xml:"controlfield"`
	DataFields    []xmlDataField    `xml:"datafield"`
}

type xmlControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

type xmlDataField struct {
	Tag       string        `xml:"tag,attr"`
	Ind1      string        `xml:"ind1,attr"`
	Ind2      string        `xml:"ind2,attr"`
	Subfields []xmlSubfield `xml:"subfield"`
}

type xmlSubfield struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// Parse reads MARCXML and returns its records.
// Handles a bare <record> as well as <collection> wrappers and records nested
// in other envelopes such as OAI-PMH responses.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*marc.Record, error) {
	source := "input"
	if opts != nil && opts.SourceName != "" {
		source = opts.SourceName
	}

	decoder := xml.NewDecoder(r)
	var records []*marc.Record
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing MARCXML %s: %w", source, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || !isMARCRecord(start.Name) {
			continue
		}

		var xr xmlRecord
		if err := decoder.DecodeElement(&xr, &start); err != nil {
			return nil, fmt.Errorf("decoding record %d in %s: %w", len(records), source, err)
		}
		records = append(records, toRecord(&xr))
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no <record> elements found in %s", source)
	}

	return records, nil
}

// isMARCRecord skips same-named envelope elements such as the OAI-PMH <record>.
func isMARCRecord(name xml.Name) bool {
	return name.Local == "record" && (name.Space == "" || name.Space == Namespace)
}

// toRecord converts a decoded MARCXML record to the record model.
func toRecord(xr *xmlRecord) *marc.Record {
	record := marc.NewRecord()
	record.Leader = strings.TrimSpace(xr.Leader)

	for _, cf := range xr.ControlFields {
		record.AddControlField(strings.TrimSpace(cf.Tag), cf.Value)
	}

	for _, df := range xr.DataFields {
		subfields := make([]marc.Subfield, 0, len(df.Subfields))
		for _, sf := range df.Subfields {
			subfields = append(subfields, marc.Subfield{Code: sf.Code, Value: sf.Value})
		}
		record.AddField(marc.NewField(strings.TrimSpace(df.Tag), df.Ind1, df.Ind2, subfields...))
	}

	return record
}
