package mapping

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lehigh-university-libraries/marc2bib/marc"
	"github.com/lehigh-university-libraries/marc2bib/tagfunc"
)

// TagFuncs compiles the profile's field mappings into tag functions ready
// to merge over the defaults. Skipped fields map to nil so the merge removes
// them. A "note" mapping without tags selects tagfunc.Note.
func (p *Profile) TagFuncs() (tagfunc.Set, error) {
	set := make(tagfunc.Set, len(p.Fields))
	for name, m := range p.Fields {
		fn, err := m.Compile(name)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
		set[name] = fn
	}
	return set, nil
}

// Compile builds the tag function for one field mapping.
func (m FieldMapping) Compile(name string) (tagfunc.Func, error) {
	if m.Skip {
		return nil, nil
	}
	if len(m.Tags) == 0 {
		if known, ok := tagfunc.Known()[name]; ok {
			return known, nil
		}
		return nil, fmt.Errorf("field %s: no tags", name)
	}

	var pattern *regexp.Regexp
	if m.Pattern != "" {
		re, err := regexp.Compile(m.Pattern)
		if err != nil {
			return nil, fmt.Errorf("field %s: invalid pattern: %w", name, err)
		}
		pattern = re
	}

	var remover *strings.Replacer
	if m.Remove != "" {
		pairs := make([]string, 0, 2*len(m.Remove))
		for _, r := range m.Remove {
			pairs = append(pairs, string(r), "")
		}
		remover = strings.NewReplacer(pairs...)
	}

	codes := strings.Split(m.GetSubfield(), "")
	read := func(field *marc.Field) (string, bool) {
		if len(codes) == 1 {
			return field.Subfield(codes[0])
		}
		values := field.SubfieldValues(codes...)
		if len(values) == 0 {
			return "", false
		}
		return strings.Join(values, " "), true
	}
	clean := func(v string) string {
		if remover != nil {
			v = remover.Replace(v)
		}
		if pattern != nil {
			match := pattern.FindStringSubmatch(v)
			switch {
			case match == nil:
				return ""
			case len(match) > 1:
				v = match[1]
			default:
				v = match[0]
			}
		}
		v = strings.TrimLeft(v, m.TrimLeft)
		return strings.TrimRight(v, m.TrimRight)
	}

	return func(r tagfunc.Record) (string, error) {
		var values []string
		for _, field := range r.Fields(m.Tags...) {
			if !field.MatchesIndicators(m.Ind1, m.Ind2) {
				continue
			}
			raw, ok := read(field)
			if !ok {
				if m.All {
					continue
				}
				// Like the built-in extractors, the first matching field decides.
				return "", nil
			}
			v := clean(raw)
			if !m.All {
				return v, nil
			}
			if v != "" {
				values = append(values, v)
			}
		}
		return strings.Join(values, m.GetJoin()), nil
	}, nil
}
