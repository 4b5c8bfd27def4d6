package sheetquery

import (
	"sort"
	"strconv"
	"strings"
)

// Compare orders two cell values. Values that both read as numbers compare
// numerically; anything else compares as strings.
func Compare(a, b string) int {
	fa, okA := ParseNumber(a)
	fb, okB := ParseNumber(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// ParseNumber reads a cell value as a number. It accepts a leading currency
// symbol and thousands separators, so "$1,202.39" reads as 1202.39.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	for _, sym := range []string{"$", "€", "£", "¥"} {
		s = strings.TrimPrefix(s, sym)
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || !(s[0] == '.' || (s[0] >= '0' && s[0] <= '9')) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}

// Sort orders records by a column, keeping sheet order for equal values.
// An empty column leaves the order untouched except for reverse.
func Sort[T Record](items []T, column string, reverse bool) {
	if column != "" {
		sort.SliceStable(items, func(i, j int) bool {
			a, _ := lookup(items[i], column)
			b, _ := lookup(items[j], column)
			return Compare(a, b) < 0
		})
	}
	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
}

// Select filters items with q, orders them by column (see Sort) and
// returns the page starting at offset with at most limit items.
// A nil q matches everything and a limit of zero means no limit.
func Select[T Record](items []T, q *Query, orderBy string, reverse bool, offset, limit int) []T {
	matched := make([]T, 0, len(items))
	for _, it := range items {
		if q == nil || q.Match(it) {
			matched = append(matched, it)
		}
	}

	Sort(matched, orderBy, reverse)

	if offset > len(matched) {
		offset = len(matched)
	}
	if offset < 0 {
		offset = 0
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end]
}
