package omdb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

var tronPayload = map[string]any{
	"Response": "True",
	"Type":     "movie",
	"Title":    "Tron",
	"Year":     "1982",
	"Rated":    "PG",
	"Released": "09 Jul 1982",
	"Runtime":  "96 min",
	"Genre":    "Action, Sci-Fi",
	"Director": "Steven Lisberger",
	"Writer":   "Steven Lisberger, Bonnie MacBird",
	"Actors":   "Jeff Bridges, Bruce Boxleitner, David Warner",
	"Plot":     "A computer hacker is abducted into the digital world.",
	"Language": "English",
	"Country":  "United States",
	"Poster":   "https://example.com/tron.jpg",
	"imdbID":   "tt0084827",
}

var uprisingPayload = map[string]any{
	"Response":     "True",
	"Type":         "series",
	"Title":        "Tron: Uprising",
	"Year":         "2012–2013",
	"Rated":        "TV-Y7-FV",
	"Released":     "07 Jun 2012",
	"Runtime":      "22 min",
	"Genre":        "Animation, Action, Adventure",
	"Director":     "N/A",
	"Writer":       "Steven Lisberger, Bonnie MacBird",
	"Actors":       "Elijah Wood, Bruce Boxleitner, Mandy Moore",
	"Plot":         "A young program joins a secret rebellion.",
	"Language":     "English",
	"Country":      "United States",
	"Poster":       "https://example.com/uprising.jpg",
	"imdbID":       "tt1712587",
	"totalSeasons": "1",
}

// fakeOMDB serves canned payloads keyed by the i, t or s parameter and records
// every query it receives.
type fakeOMDB struct {
	t        *testing.T
	mu       sync.Mutex
	byID     map[string]map[string]any
	byTitle  map[string]map[string]any
	bySearch map[string]map[string]any
	requests []map[string]string
}

func newFakeOMDB(t *testing.T) *fakeOMDB {
	return &fakeOMDB{
		t:        t,
		byID:     map[string]map[string]any{},
		byTitle:  map[string]map[string]any{},
		bySearch: map[string]map[string]any{},
	}
}

func (f *fakeOMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f.mu.Lock()
	seen := map[string]string{}
	for key := range q {
		seen[key] = q.Get(key)
	}
	f.requests = append(f.requests, seen)
	f.mu.Unlock()

	if q.Get("apikey") != testAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
		return
	}

	var payload map[string]any
	switch {
	case q.Has("i"):
		payload = f.byID[q.Get("i")]
	case q.Has("t"):
		payload = f.byTitle[q.Get("t")]
	case q.Has("s"):
		payload = f.bySearch[q.Get("s")]
	}
	if payload == nil {
		payload = map[string]any{"Response": "False", "Error": "Movie not found!"}
	}
	json.NewEncoder(w).Encode(payload)
}

// requestsSnapshot returns a copy of the recorded queries
func (f *fakeOMDB) requestsSnapshot() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.requests...)
}

// newTestClient starts handler and returns a client pointed at it
func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testAPIKey, zerolog.Nop(), append([]Option{WithBaseURL(server.URL + "/")}, opts...)...)
	require.NoError(t, err)
	return client
}

// searchPayload builds a search response listing the given payloads as hits
func searchPayload(total string, hits ...map[string]any) map[string]any {
	search := make([]map[string]any, 0, len(hits))
	for _, h := range hits {
		search = append(search, map[string]any{
			"Title":  h["Title"],
			"Year":   h["Year"],
			"imdbID": h["imdbID"],
			"Type":   h["Type"],
			"Poster": h["Poster"],
		})
	}
	return map[string]any{
		"Response":     "True",
		"totalResults": total,
		"Search":       search,
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func clonePayload(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
