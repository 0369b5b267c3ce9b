package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is one backend-owned row as decoded from a list or detail response.
// The backend is free to add fields per resource, so records stay untyped and
// access goes through the helpers below.
type Record map[string]any

// ID returns the server-assigned identifier. The backend uses Mongo-style
// "_id" keys; "id" is accepted as a fallback.
func (r Record) ID() string {
	if v := r.Str("_id"); v != "" {
		return v
	}
	return r.Str("id")
}

// Str returns the named field rendered as a string. Missing fields come back
// as the empty string, never an error.
func (r Record) Str(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; print integers without a fraction
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// LoginResponse is the body of POST /users/login.
type LoginResponse struct {
	User        Record `json:"user"`
	AccessToken string `json:"access_token"`
}

// CountsRequest is the body of POST /restaurant/items/counts.
type CountsRequest struct {
	IDs []string `json:"ids"`
}

// CountsResponse carries per-restaurant menu item counts.
type CountsResponse struct {
	Counts []RestaurantCount `json:"counts"`
}

type RestaurantCount struct {
	RestaurantID string `json:"restaurantId"`
	Count        int    `json:"count"`
}
