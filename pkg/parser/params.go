package parser

import "regexp"

var placeholderRe = regexp.MustCompile(`\$P\{([^}]+)\}`)

// Placeholder is the first occurrence of a named $P{name} parameter.
type Placeholder struct {
	Name   string
	Offset int // byte offset of "$P{" in the scanned text
	End    int
}

// ParsePlaceholders returns the distinct $P{name} placeholders of src in
// order of first occurrence. Placeholders inside string literals count:
// the report engine substitutes them textually.
func ParsePlaceholders(src string) []Placeholder {
	var out []Placeholder
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, Placeholder{Name: name, Offset: m[0], End: m[1]})
	}
	return out
}
