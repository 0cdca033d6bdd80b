package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI serves canned handlers and records every request path it sees.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []string
	handlers map[string]http.HandlerFunc
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{t: t, handlers: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		api.mu.Lock()
		api.calls = append(api.calls, key)
		h, ok := api.handlers[key]
		api.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.handlers[method+" "+path] = h
}

func (a *fakeAPI) callCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

func (a *fakeAPI) totalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type recorder struct {
	replaced  []string
	backs     int
	successes []string
	errors    []string
}

func (r *recorder) Replace(path string)    { r.replaced = append(r.replaced, path) }
func (r *recorder) Back()                  { r.backs++ }
func (r *recorder) Success(message string) { r.successes = append(r.successes, message) }
func (r *recorder) Error(message string)   { r.errors = append(r.errors, message) }

func TestClientSendsSessionCookie(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle(http.MethodGet, "/api/category", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("_sid")
		require.NoError(t, err)
		assert.Equal(t, "tok", cookie.Value)
		assert.Equal(t, "250", r.URL.Query().Get("pageSize"))
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Success",
			"data":    []map[string]any{{"id": "1", "nameEn": "Drinks"}},
		})
	})

	categories, err := New(srv.URL, WithSessionToken("tok")).ListCategories(t.Context())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Drinks", categories[0].NameEn)
}

func TestDecodeAPIError(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		details string
		fields  map[string]string
	}{
		{"plain text", 401, "Unauthorized", "Unauthorized", "", nil},
		{"resource error", 400, `{"error":"Failed to update product","details":"not_found"}`, "Failed to update product", "not_found", nil},
		{"structured error", 415, `{"error":{"type":"unsupported_media_type","message":"only image uploads are accepted"}}`, "only image uploads are accepted", "", nil},
		{"field errors", 400, `{"message":"Validation failed","errors":{"endDate":"End date is required!"}}`, "Validation failed", "", map[string]string{"endDate": "End date is required!"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := decodeAPIError(tc.status, []byte(tc.body))
			assert.Equal(t, tc.status, err.Status)
			assert.Equal(t, tc.message, err.Message)
			assert.Equal(t, tc.details, err.Details)
			assert.Equal(t, tc.fields, err.Fields)
		})
	}
}
