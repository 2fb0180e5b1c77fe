// Package helpers provides name handling shared by the BibTeX assembler.
package helpers

import (
	"regexp"
	"strings"
	"unicode"
)

// NameParser parses catalog personal names into components.
type NameParser struct{}

// ParsedName holds the components of a personal name.
type ParsedName struct {
	Family string
	Given  string
	Suffix string
}

var (
	// Suffixes that appear after a name
	suffixes = []string{"Jr.", "Jr", "Sr.", "Sr", "III", "II", "IV"}

	// Name prefixes (nobiliary particles)
	prefixes = []string{"van", "von", "de", "del", "della", "di", "da", "le", "la", "du", "des", "den", "der", "ter", "ten"}

	// Pattern for "Last, First Middle" format
	invertedNameRegex = regexp.MustCompile(`^([^,]+),\s*(.*)$`)

	andSeparator = regexp.MustCompile(`\s+and\s+`)
)

// Parse parses a name string into its components.
// Handles both "Family, Given" (the MARC heading form) and "Given Family".
func (p *NameParser) Parse(name string) *ParsedName {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	result := &ParsedName{}

	if matches := invertedNameRegex.FindStringSubmatch(name); matches != nil {
		family := strings.TrimSpace(matches[1])
		rest := strings.TrimSpace(matches[2])

		// "I. Hargittai, M. Hargittai" is a list of direct names, not an inverted one.
		if strings.Contains(family, " ") && hasInitial(family) {
			return p.Parse(family)
		}

		result.Family = family
		result.Given, result.Suffix = extractSuffix(rest)
		return result
	}

	name, result.Suffix = extractSuffix(name)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return nil
	}

	familyStart := len(parts) - 1
	if familyStart > 0 && isPrefix(parts[familyStart-1]) {
		familyStart--
	}
	result.Family = strings.Join(parts[familyStart:], " ")
	result.Given = strings.Join(parts[:familyStart], " ")

	return result
}

// extractSuffix splits a trailing generational suffix from a name string.
func extractSuffix(name string) (string, string) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, ", "+suffix) {
			return strings.TrimSuffix(name, ", "+suffix), suffix
		}
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSuffix(name, " "+suffix), suffix
		}
	}
	return name, ""
}

// isPrefix checks if a word is a nobiliary particle.
func isPrefix(word string) bool {
	lower := strings.ToLower(word)
	for _, prefix := range prefixes {
		if lower == prefix {
			return true
		}
	}
	return false
}

func hasInitial(s string) bool {
	for _, w := range strings.Fields(s) {
		if len(w) == 2 && w[1] == '.' && unicode.IsUpper(rune(w[0])) {
			return true
		}
	}
	return false
}

// ParseName is a convenience function to parse a name string.
func ParseName(name string) *ParsedName {
	parser := &NameParser{}
	return parser.Parse(name)
}

// SplitNames splits a BibTeX name list joined with "and".
func SplitNames(names string) []string {
	var result []string
	for _, n := range andSeparator.Split(strings.TrimSpace(names), -1) {
		if n = strings.TrimSpace(n); n != "" {
			result = append(result, n)
		}
	}
	return result
}

// Surname returns the family name of the first name in a name list, or "".
func Surname(names string) string {
	list := SplitNames(names)
	if len(list) == 0 {
		return ""
	}
	parsed := ParseName(list[0])
	if parsed == nil {
		return ""
	}
	return parsed.Family
}

// KeyName returns the part of the first name in a name list used for
// citation keys. Catalog headings for persons are inverted or carry
// initials and yield the surname. Anything else, such as a corporate name
// from 110, yields its first token: "Royal Society of Chemistry" -> "Royal".
func KeyName(names string) string {
	list := SplitNames(names)
	if len(list) == 0 {
		return ""
	}
	first := list[0]
	if strings.Contains(first, ",") || hasInitial(first) {
		return Surname(first)
	}
	return FirstWord(first)
}

// FirstWord returns the first whitespace separated word of s.
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// KeyToken keeps only the letters and digits of s, for use in citation keys.
func KeyToken(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
