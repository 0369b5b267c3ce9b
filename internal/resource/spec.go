// Package resource holds the one generic list/CRUD engine every admin screen
// shares, parameterized per resource instead of duplicated per resource.
package resource

import (
	"context"

	"fooddesk/internal/api"
	"fooddesk/internal/model"
)

// Field is one editable field of a resource form.
type Field struct {
	Name     string
	Required bool
	// Secret marks password-style fields: included in an update body only when
	// non-empty, and guarded by a confirmation value.
	Secret bool
}

// Spec describes one backend resource: its endpoints, its editable fields and
// how its list view filters and renders.
type Spec struct {
	Name   string // singular, e.g. "restaurant"
	Plural string
	// Nested resources live under a parent restaurant id.
	Nested bool
	// Multipart resources submit forms field-by-field with an optional image
	// part; the rest submit JSON.
	Multipart bool
	// UpdateParentField, when set on a nested resource, is a form field carrying
	// the parent id on update submissions.
	UpdateParentField string

	MatchFields []string
	Fields      []Field
	Columns     []string

	ListPath   func(parentID string) string
	ViewPath   func(id string) string
	CreatePath func(parentID string) string
	UpdatePath func(id string) string
	DeletePath func(id string) string

	// Enrich, when set, runs after a successful list fetch and may decorate the
	// records with derived fields.
	Enrich func(ctx context.Context, c *api.Client, items []model.Record) error

	// ListDestination is the command invocation to suggest after a successful
	// create/update/delete; it must be dispatchable as printed.
	ListDestination func(parentID string) string
}

// FieldNames returns the editable field names in declaration order.
func (s *Spec) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Restaurant is the top-level restaurant resource. Its list view is enriched
// with the per-restaurant menu item count via a second batch request.
var Restaurant = &Spec{
	Name:        "restaurant",
	Plural:      "restaurants",
	Multipart:   true,
	MatchFields: []string{"code", "name"},
	Fields: []Field{
		{Name: "name", Required: true},
		{Name: "phone", Required: true},
		{Name: "address", Required: true},
		{Name: "open_time", Required: true},
		{Name: "close_time", Required: true},
	},
	Columns:         []string{"code", "name", "phone", "address", "count"},
	ListPath:        func(string) string { return "/restaurants" },
	ViewPath:        func(id string) string { return "/restaurants/" + id },
	CreatePath:      func(string) string { return "/restaurants" },
	UpdatePath:      func(id string) string { return "/restaurants/" + id },
	DeletePath:      func(id string) string { return "/restaurants/" + id },
	Enrich:          enrichRestaurantCounts,
	ListDestination: func(string) string { return "restaurants" },
}

var User = &Spec{
	Name:        "user",
	Plural:      "users",
	Multipart:   true,
	MatchFields: []string{"role", "name"},
	Fields: []Field{
		{Name: "name", Required: true},
		{Name: "email", Required: true},
		{Name: "phone"},
		{Name: "address"},
		{Name: "password", Secret: true},
	},
	Columns:         []string{"name", "email", "role", "phone"},
	ListPath:        func(string) string { return "/users" },
	ViewPath:        func(id string) string { return "/users/" + id },
	CreatePath:      func(string) string { return "/users" },
	UpdatePath:      func(id string) string { return "/users/" + id },
	DeletePath:      func(id string) string { return "/users/" + id },
	ListDestination: func(string) string { return "users" },
}

var DeliveryPartner = &Spec{
	Name:        "delivery-partner",
	Plural:      "delivery-partners",
	MatchFields: []string{"name", "phone"},
	Fields: []Field{
		{Name: "name", Required: true},
		{Name: "phone", Required: true},
		{Name: "address", Required: true},
		{Name: "gender", Required: true},
		{Name: "availability", Required: true},
	},
	Columns:         []string{"name", "phone", "address", "gender", "availability"},
	ListPath:        func(string) string { return "/delivery-partners" },
	ViewPath:        func(id string) string { return "/delivery-partners/" + id },
	CreatePath:      func(string) string { return "/delivery-partners/create" },
	UpdatePath:      func(id string) string { return "/delivery-partners/" + id },
	DeletePath:      func(id string) string { return "/delivery-partners/" + id },
	ListDestination: func(string) string { return "partners" },
}

// MenuItem is nested under a restaurant: list and create are scoped by the
// restaurant id, detail endpoints address the item directly.
var MenuItem = &Spec{
	Name:              "menu-item",
	Plural:            "menu-items",
	Nested:            true,
	Multipart:         true,
	UpdateParentField: "restaurantId",
	MatchFields:       []string{"code", "name"},
	Fields: []Field{
		{Name: "name", Required: true},
		{Name: "code", Required: true},
		{Name: "description", Required: true},
		{Name: "price", Required: true},
	},
	Columns:         []string{"code", "name", "description", "price"},
	ListPath:        func(parentID string) string { return "/restaurant/items/" + parentID },
	ViewPath:        func(id string) string { return "/restaurant/items/view/" + id },
	CreatePath:      func(parentID string) string { return "/restaurant/items/create/" + parentID },
	UpdatePath:      func(id string) string { return "/restaurant/items/update/" + id },
	DeletePath:      func(id string) string { return "/restaurant/items/delete/" + id },
	ListDestination: func(parentID string) string { return "menu " + parentID },
}

// All lists every registered resource spec.
func All() []*Spec {
	return []*Spec{Restaurant, User, DeliveryPartner, MenuItem}
}

// Lookup finds a spec by its singular or plural name.
func Lookup(name string) (*Spec, bool) {
	for _, s := range All() {
		if s.Name == name || s.Plural == name {
			return s, true
		}
	}
	return nil, false
}

// enrichRestaurantCounts is the two-phase fetch for the restaurant list: the
// primary call already happened; this batches the full id set to the counts
// endpoint and left-joins the result onto the records by id, defaulting
// unmatched restaurants to 0.
func enrichRestaurantCounts(ctx context.Context, c *api.Client, items []model.Record) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID())
	}
	var resp model.CountsResponse
	if err := c.Post(ctx, "/restaurant/items/counts", model.CountsRequest{IDs: ids}, &resp); err != nil {
		return err
	}
	byID := make(map[string]int, len(resp.Counts))
	for _, rc := range resp.Counts {
		byID[rc.RestaurantID] = rc.Count
	}
	for _, it := range items {
		it["count"] = byID[it.ID()]
	}
	return nil
}
