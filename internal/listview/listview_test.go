package listview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddesk/internal/model"
)

func records(names ...string) []model.Record {
	out := make([]model.Record, 0, len(names))
	for i, n := range names {
		out = append(out, model.Record{"_id": fmt.Sprintf("%d", i+1), "name": n})
	}
	return out
}

func TestDeriveView_EmptyQueryMatchesAll(t *testing.T) {
	items := records("A", "B", "C")
	v := DeriveView(items, "", []string{"code", "name"}, Page{Page: 1, Size: 10})
	assert.Equal(t, len(items), v.Total)
	assert.Equal(t, items, v.PageItems)
}

func TestDeriveView_NoMatches(t *testing.T) {
	v := DeriveView(records("A", "B"), "zzz", []string{"name"}, Page{Page: 1, Size: 10})
	assert.Equal(t, 0, v.Total)
	assert.Empty(t, v.PageItems)
}

func TestDeriveView_CaseInsensitiveSubstring(t *testing.T) {
	items := []model.Record{
		{"_id": "1", "name": "Pizza Place"},
		{"_id": "2", "name": "Burger Bar"},
	}
	v := DeriveView(items, "pizza", []string{"code", "name"}, Page{Page: 1, Size: 10})
	require.Equal(t, 1, v.Total)
	assert.Equal(t, "Pizza Place", v.PageItems[0].Str("name"))
}

func TestDeriveView_AnyConfiguredFieldMatches(t *testing.T) {
	items := []model.Record{
		{"_id": "1", "code": "RST-7", "name": "Noodle House"},
		{"_id": "2", "name": "Taco Stand"}, // no code field at all
	}
	v := DeriveView(items, "rst", []string{"code", "name"}, Page{Page: 1, Size: 10})
	require.Equal(t, 1, v.Total)
	assert.Equal(t, "1", v.PageItems[0].ID())
}

func TestDeriveView_MissingFieldTreatedAsEmpty(t *testing.T) {
	items := []model.Record{{"_id": "1"}, {"_id": "2", "name": "Deli"}}
	assert.NotPanics(t, func() {
		v := DeriveView(items, "deli", []string{"code", "name"}, Page{Page: 1, Size: 5})
		assert.Equal(t, 1, v.Total)
	})
}

func TestDeriveView_TotalReflectsFilteredSetNotFetchSize(t *testing.T) {
	items := records("Pizza One", "Pizza Two", "Burgers")
	v := DeriveView(items, "pizza", []string{"name"}, Page{Page: 1, Size: 1})
	assert.Equal(t, 2, v.Total)
	assert.Len(t, v.PageItems, 1)
}

func TestDeriveView_PaginationSlicing(t *testing.T) {
	items := records("a", "b", "c", "d", "e")
	cases := []struct {
		name string
		page Page
		want []string
	}{
		{"first page", Page{Page: 1, Size: 2}, []string{"a", "b"}},
		{"middle page", Page{Page: 2, Size: 2}, []string{"c", "d"}},
		{"short last page", Page{Page: 3, Size: 2}, []string{"e"}},
		{"page beyond range", Page{Page: 9, Size: 2}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := DeriveView(items, "", []string{"name"}, tc.page)
			require.LessOrEqual(t, len(v.PageItems), tc.page.Size)
			got := make([]string, 0, len(v.PageItems))
			for _, r := range v.PageItems {
				got = append(got, r.Str("name"))
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 5, v.Total)
		})
	}
}

func TestDeriveView_StableOrderPreserved(t *testing.T) {
	items := records("zeta pizza", "alpha pizza", "midway pizza")
	v := DeriveView(items, "pizza", []string{"name"}, Page{Page: 1, Size: 10})
	require.Equal(t, 3, v.Total)
	assert.Equal(t, "zeta pizza", v.PageItems[0].Str("name"))
	assert.Equal(t, "alpha pizza", v.PageItems[1].Str("name"))
	assert.Equal(t, "midway pizza", v.PageItems[2].Str("name"))
}

func TestDeriveView_DoesNotMutateInput(t *testing.T) {
	items := records("a", "b")
	_ = DeriveView(items, "a", []string{"name"}, Page{Page: 1, Size: 1})
	assert.Equal(t, records("a", "b"), items)
}
