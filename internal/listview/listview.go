// Package listview derives the visible slice of a fetched collection:
// a client-side substring filter over configured fields followed by a page
// slice. Records are never mutated and their fetch order is preserved.
package listview

import (
	"strings"

	"fooddesk/internal/model"
)

// Page describes the requested window. Page counts from 1.
type Page struct {
	Page int
	Size int
}

// View is the derived, display-ready window of a collection.
type View struct {
	// PageItems is the requested slice of the filtered records.
	PageItems []model.Record
	// Total counts the records matching the query, not the raw fetch size.
	Total int
}

// DeriveView filters items case-insensitively: a record matches when any of
// matchFields contains query as a substring. A record missing a match field is
// treated as having it empty. An empty query matches everything. A page past
// the last one yields an empty slice, not an error.
func DeriveView(items []model.Record, query string, matchFields []string, p Page) View {
	matched := filter(items, query, matchFields)

	v := View{Total: len(matched)}
	if p.Size <= 0 || p.Page <= 0 {
		v.PageItems = matched
		return v
	}
	start := (p.Page - 1) * p.Size
	if start >= len(matched) {
		v.PageItems = []model.Record{}
		return v
	}
	end := start + p.Size
	if end > len(matched) {
		end = len(matched)
	}
	v.PageItems = matched[start:end]
	return v
}

func filter(items []model.Record, query string, matchFields []string) []model.Record {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	matched := make([]model.Record, 0, len(items))
	for _, it := range items {
		for _, f := range matchFields {
			if strings.Contains(strings.ToLower(it.Str(f)), q) {
				matched = append(matched, it)
				break
			}
		}
	}
	return matched
}
