package content

import "sort"

// SortByPublication orders articles newest first. Undated articles go last and
// ties are broken by name.
func SortByPublication(articles []Article) []Article {
	out := append([]Article(nil), articles...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PublicationDate, out[j].PublicationDate
		switch {
		case a == nil && b == nil:
			return out[i].Name < out[j].Name
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(b.Time):
			return a.After(b.Time)
		default:
			return out[i].Name < out[j].Name
		}
	})
	return out
}

// SortByName orders articles by source name.
func SortByName(articles []Article) []Article {
	out := append([]Article(nil), articles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
