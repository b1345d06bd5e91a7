package docs

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByOrder sorts items by ascending order, breaking ties by name with
// locale-aware collation. Names that collate equal fall back to byte order so
// the result is total.
func SortByOrder[T any](items []T, key func(T) (order int, name string)) {
	c := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		oi, ni := key(items[i])
		oj, nj := key(items[j])
		if oi != oj {
			return oi < oj
		}
		if cmp := c.CompareString(ni, nj); cmp != 0 {
			return cmp < 0
		}
		return ni < nj
	})
}
