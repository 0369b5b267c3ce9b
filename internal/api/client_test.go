package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_DecodesBody(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/restaurants", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"_id":"1","name":"A"}]}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	c := NewClient(ts.URL+"/api", nil)
	var out struct {
		Data []map[string]any `json:"data"`
	}
	err := c.Get(context.Background(), "/restaurants", &out)
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "A", out.Data[0]["name"])
}

func TestClient_Post_SendsJSONContentType(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/users/login", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	c := NewClient(ts.URL+"/api", nil)
	err := c.Post(context.Background(), "/users/login", map[string]string{"email": "a@b"}, nil)
	require.NoError(t, err)
}

func TestClient_Non2xx_RequestErrorWithBackendMessage(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json error field", 400, `{"error":"name already taken"}`, "name already taken"},
		{"json message field", 500, `{"message":"boom"}`, "boom"},
		{"plain body", 502, "bad gateway\n", "bad gateway"},
		{"not found", 404, `{"error":"no such restaurant"}`, "no such restaurant"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			c := NewClient(ts.URL, nil)
			err := c.Get(context.Background(), "/x", nil)
			var reqErr *RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, tc.status, reqErr.Status)
			assert.Equal(t, tc.message, reqErr.Message)
			assert.Equal(t, tc.status == 404, reqErr.NotFound())
		})
	}
}

func TestClient_TransportFailure_NetworkError(t *testing.T) {
	// server started and immediately closed: connection refused
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close()

	c := NewClient(ts.URL, nil)
	err := c.Get(context.Background(), "/x", nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.NotNil(t, errors.Unwrap(netErr))
}

func TestClient_PostMultipart_FieldsAndImagePart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.True(t, strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data;"))
		require.NoError(t, req.ParseMultipartForm(10<<20))
		assert.Equal(t, "Pizza Place", req.FormValue("name"))
		assert.Equal(t, "99", req.FormValue("price"))
		f, hdr, err := req.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "menu.png", hdr.Filename)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil)
	file := &FilePart{FieldName: "image", FileName: "menu.png", Reader: strings.NewReader("png-bytes")}
	var out struct {
		Message string `json:"message"`
	}
	err := c.PostMultipart(context.Background(), "/restaurants",
		map[string]string{"name": "Pizza Place", "price": "99"}, file, &out)
	require.NoError(t, err)
	assert.Equal(t, "created", out.Message)
}

func TestClient_PutMultipart_NoFile(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPut, req.Method)
		require.NoError(t, req.ParseMultipartForm(10<<20))
		assert.Equal(t, "B", req.FormValue("name"))
		_, _, err := req.FormFile("image")
		assert.Error(t, err) // no image part when none was attached
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, nil)
	err := c.PutMultipart(context.Background(), "/restaurants/1", map[string]string{"name": "B"}, nil, nil)
	require.NoError(t, err)
}
