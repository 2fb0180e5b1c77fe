package tagfunc

import (
	"regexp"
	"strings"
)

var (
	// Matches a name that ends with initials, e.g. "Smith, J.A."
	initialsRegex = regexp.MustCompile(`(?:[A-Z]\.)+$`)

	// Matches the page count in a physical description, e.g. "xii, 505 p. :"
	pagesRegex = regexp.MustCompile(`([0-9]+) p\.`)
)

// Address returns the place of publication from the first 260 or 264 field.
// https://www.loc.gov/marc/bibliographic/bd26x28x.html
func Address(r Record) (string, error) {
	fields := r.Fields("260", "264")
	if len(fields) == 0 {
		return "", nil
	}
	place, ok := fields[0].Subfield("a")
	if !ok {
		return "", nil
	}
	place = strings.NewReplacer("[", "", "]", "").Replace(place)
	return strings.TrimRight(place, ": "), nil
}

// Author returns the main entry name.
// https://www.loc.gov/marc/bibliographic/bd1xx.html
func Author(r Record) (string, error) {
	fields := r.Fields("100", "110", "400", "600", "800")
	if len(fields) == 0 {
		return "", nil
	}
	field := fields[0]

	// A 400 with second indicator 1 carries a pronoun, not a name.
	if field.Tag == "400" && field.Indicator2 == "1" {
		return "", nil
	}

	name, ok := field.Subfield("a")
	if !ok {
		return "", nil
	}
	// The period of a closing initial is kept: "Smith, J.A.," -> "Smith, J.A."
	if trimmed := strings.TrimRight(name, ",: "); initialsRegex.MatchString(trimmed) {
		return trimmed, nil
	}
	return strings.TrimRight(name, ".,: "), nil
}

// Edition returns the edition statement.
// https://www.loc.gov/marc/bibliographic/bd250.html
func Edition(r Record) (string, error) {
	field := r.Field("250")
	if field == nil {
		return "", nil
	}
	return strings.TrimRight(field.Get("a"), "/= "), nil
}

// Editor joins the names of every added entry (700) with " and ".
func Editor(r Record) (string, error) {
	var editors []string
	for _, field := range r.Fields("700") {
		name, ok := field.Subfield("a")
		if !ok {
			continue
		}
		if name = strings.TrimRight(name, ","); name != "" {
			editors = append(editors, name)
		}
	}
	return strings.Join(editors, " and "), nil
}

// Publisher returns the publisher name without trailing punctuation.
// https://www.loc.gov/marc/bibliographic/bd26x28x.html
func Publisher(r Record) (string, error) {
	return strings.TrimRight(r.Publisher(), ",: "), nil
}

// Title combines the title proper and the remainder of title.
// https://www.loc.gov/marc/bibliographic/bd245.html
func Title(r Record) (string, error) {
	field := r.Field("245")
	if field == nil {
		return "", nil
	}
	title, ok := field.Subfield("a")
	if !ok {
		return "", nil
	}

	// "Title : subtitle." and "Title subtitle." both become "Title: subtitle"
	if subtitle := field.Get("b"); subtitle != "" {
		head, _, _ := strings.Cut(title, " :")
		title = head + ": " + strings.TrimRight(subtitle, ".")
	}
	return strings.TrimRight(title, " /"), nil
}

// Year returns the publication year without copyright prefix or trailing period.
func Year(r Record) (string, error) {
	year := strings.TrimLeft(r.PubYear(), "c")
	return strings.TrimRight(year, "."), nil
}

// Volume returns the physical description extent as is.
// https://www.loc.gov/marc/bibliographic/bd300.html
func Volume(r Record) (string, error) {
	field := r.Field("300")
	if field == nil {
		return "", nil
	}
	return field.Get("a"), nil
}

// Pages returns the page count from the physical description extent.
func Pages(r Record) (string, error) {
	field := r.Field("300")
	if field == nil {
		return "", nil
	}
	m := pagesRegex.FindStringSubmatch(field.Get("a"))
	if m == nil {
		return "", nil
	}
	return m[1], nil
}

// Series returns the series statement.
// https://www.loc.gov/marc/bibliographic/bd490.html
func Series(r Record) (string, error) {
	field := r.Field("490")
	if field == nil {
		return "", nil
	}
	return strings.TrimRight(field.Get("a"), ","), nil
}

// Note is not implemented. Callers wanting a note must supply their own.
func Note(_ Record) (string, error) {
	return "", ErrNotSupported
}
