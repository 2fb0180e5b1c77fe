package marcjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/lehigh-university-libraries/marc2bib/format"
	"github.com/lehigh-university-libraries/marc2bib/marc"
)

// jsonRecord is a MARC-in-JSON record. Each entry in Fields holds exactly one
// tag: a string value for control fields, a jsonDataField otherwise.
type jsonRecord struct {
	Leader string                       `json:"leader"`
	Fields []map[string]json.RawMessage `json:"fields"`
}

type jsonDataField struct {
	Ind1      string              `json:"ind1"`
	Ind2      string              `json:"ind2"`
	Subfields []map[string]string `json:"subfields"`
}

// Parse reads a MARC-in-JSON record or an array of records.
func (f *Format) Parse(r io.Reader, opts *format.ParseOptions) ([]*marc.Record, error) {
	source := "input"
	if opts != nil && opts.SourceName != "" {
		source = opts.SourceName
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no records found in %s", source)
	}

	var raw []jsonRecord
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing MARC-in-JSON %s: %w", source, err)
		}
	} else {
		var single jsonRecord
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parsing MARC-in-JSON %s: %w", source, err)
		}
		raw = append(raw, single)
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("no records found in %s", source)
	}

	records := make([]*marc.Record, 0, len(raw))
	for i := range raw {
		record, err := toRecord(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("record %d in %s: %w", i, source, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// toRecord converts a decoded MARC-in-JSON record to the record model.
func toRecord(jr *jsonRecord) (*marc.Record, error) {
	record := marc.NewRecord()
	record.Leader = jr.Leader

	for _, entry := range jr.Fields {
		if len(entry) != 1 {
			return nil, fmt.Errorf("field entry must hold exactly one tag, got %d", len(entry))
		}
		for tag, value := range entry {
			if marc.IsControlTag(tag) {
				var v string
				if err := json.Unmarshal(value, &v); err != nil {
					return nil, fmt.Errorf("control field %s: %w", tag, err)
				}
				record.AddControlField(tag, v)
				continue
			}

			var df jsonDataField
			if err := json.Unmarshal(value, &df); err != nil {
				return nil, fmt.Errorf("data field %s: %w", tag, err)
			}
			record.AddField(marc.NewField(tag, df.Ind1, df.Ind2, subfields(df.Subfields)...))
		}
	}

	return record, nil
}

// subfields flattens the one-key subfield objects, keeping their order.
func subfields(entries []map[string]string) []marc.Subfield {
	result := make([]marc.Subfield, 0, len(entries))
	for _, entry := range entries {
		codes := make([]string, 0, len(entry))
		for code := range entry {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			result = append(result, marc.Subfield{Code: code, Value: entry[code]})
		}
	}
	return result
}
