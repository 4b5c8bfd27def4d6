package sheetquery

import (
	"strconv"
	"strings"
	"unicode"
)

// NormalizeColumn converts a header cell into a column name: lower case,
// keeping only letters, digits, '.' and '-'. Returns "" for headers that
// contain none of those.
func NormalizeColumn(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(header) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r > unicode.MaxASCII && unicode.IsLetter(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Headers normalises a header row. Repeated names get a numeric suffix
// ("amount", "amount_2", ...). Headers that normalise to "" stay "" and
// callers should not expose those columns.
func Headers(raw []string) []string {
	out := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := NormalizeColumn(h)
		if name == "" {
			continue
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = name + "_" + strconv.Itoa(n)
		}
		out[i] = name
	}
	return out
}

// ColumnIndex returns the position of key among normalised headers,
// matching verbatim first and then in normalised form. Returns -1 if
// no named column matches.
func ColumnIndex(columns []string, key string) int {
	for i, c := range columns {
		if c != "" && c == key {
			return i
		}
	}
	norm := NormalizeColumn(key)
	for i, c := range columns {
		if c != "" && c == norm {
			return i
		}
	}
	return -1
}

// lookup reads a column from r, trying name verbatim and then in
// normalised form, so suffixed duplicates such as "amount_2" resolve.
func lookup(r Record, name string) (string, bool) {
	if v, ok := r.Get(name); ok {
		return v, true
	}
	return r.Get(NormalizeColumn(name))
}
