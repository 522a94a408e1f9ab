package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blang/semver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/omdbq/config"
	"github.com/s0up4200/omdbq/omdb"
)

// titles served by the fake OMDB server, keyed by imdbID
var titles = map[string]map[string]any{
	"tt0084827": {
		"Response": "True", "Type": "movie", "Title": "Tron", "Year": "1982",
		"Runtime": "96 min", "Genre": "Action, Sci-Fi", "Released": "09 Jul 1982", "imdbID": "tt0084827",
	},
	"tt1104001": {
		"Response": "True", "Type": "movie", "Title": "Tron: Legacy", "Year": "2010",
		"Runtime": "125 min", "Genre": "Action, Adventure, Sci-Fi", "Released": "17 Dec 2010", "imdbID": "tt1104001",
	},
	"tt1712587": {
		"Response": "True", "Type": "series", "Title": "Tron: Uprising", "Year": "2012–2013",
		"Runtime": "22 min", "Genre": "Animation, Action", "Released": "07 Jun 2012", "imdbID": "tt1712587",
		"totalSeasons": "1",
	},
}

func newFakeServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		q := r.URL.Query()
		if q.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Invalid API key!"})
			return
		}

		if q.Get("s") == "tron" {
			var search []map[string]string
			for _, id := range []string{"tt0084827", "tt1712587", "tt1104001"} {
				search = append(search, map[string]string{"imdbID": id, "Type": titles[id]["Type"].(string)})
			}
			json.NewEncoder(w).Encode(map[string]any{"Response": "True", "totalResults": "3", "Search": search})
			return
		}

		if title, ok := titles[q.Get("i")]; ok {
			json.NewEncoder(w).Encode(title)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"Response": "False", "Error": "Incorrect IMDb ID."})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			setupLogger(config.LoggingConfig{Level: tt.level, Format: "json"}, os.Stderr)
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestGetMatchExpression(t *testing.T) {
	defer func() {
		whereExpr, preset, cfg = "", "", nil
	}()

	cfg = &config.Config{Match: config.MatchConfig{Presets: map[string]string{"long": "Runtime > 150"}}}

	whereExpr, preset = "Year > 2000", "long"
	expression, err := getMatchExpression()
	require.NoError(t, err)
	assert.Equal(t, "Year > 2000", expression, "inline expression wins over preset")

	whereExpr = ""
	expression, err = getMatchExpression()
	require.NoError(t, err)
	assert.Equal(t, "Runtime > 150", expression)

	preset = "missing"
	_, err = getMatchExpression()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "preset 'missing' not found")

	preset = ""
	expression, err = getMatchExpression()
	require.NoError(t, err)
	assert.Empty(t, expression)
}

func TestResolveBatch(t *testing.T) {
	var requests atomic.Int32
	server := newFakeServer(t, &requests)

	c, err := omdb.NewClient("test-key", zerolog.Nop(), omdb.WithBaseURL(server.URL))
	require.NoError(t, err)

	ids := []string{"tt1712587", "tt0000000", "tt0084827", "tt1104001"}
	result := resolveBatch(context.Background(), c, ids, "", 3, zerolog.Nop())

	require.Len(t, result.Entities, 3)
	assert.Equal(t, "tt1712587", result.Entities[0].ID())
	assert.Equal(t, "tt0084827", result.Entities[1].ID())
	assert.Equal(t, "tt1104001", result.Entities[2].ID())

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "tt0000000", result.Failed[0].TTID)
	assert.True(t, errors.Is(result.Failed[0], omdb.ErrNoResults))
	assert.Equal(t, int32(4), requests.Load())
}

func TestResolveBatchInvalidPlot(t *testing.T) {
	var requests atomic.Int32
	server := newFakeServer(t, &requests)

	c, err := omdb.NewClient("test-key", zerolog.Nop(), omdb.WithBaseURL(server.URL))
	require.NoError(t, err)

	result := resolveBatch(context.Background(), c, []string{"tt0084827"}, "long", 0, zerolog.Nop())
	assert.Empty(t, result.Entities)
	require.Len(t, result.Failed, 1)
	assert.ErrorIs(t, result.Failed[0], omdb.ErrInvalidParameterValue)
	assert.Equal(t, int32(0), requests.Load())
}

func TestIsNewer(t *testing.T) {
	v := func(s string) semver.Version {
		parsed, err := semver.ParseTolerant(s)
		require.NoError(t, err)
		return parsed
	}

	assert.True(t, isNewer(v("v1.2.0"), v("1.3.0")))
	assert.False(t, isNewer(v("1.3.0"), v("v1.3.0")))
	assert.False(t, isNewer(v("2.0.0"), v("1.9.9")))
}

func TestSearchCommand(t *testing.T) {
	var requests atomic.Int32
	server := newFakeServer(t, &requests)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "omdb:\n  key: test-key\n  base_uri: " + server.URL + "/\n  rate_limit: 0\nlogging:\n  level: error\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	defer func() {
		cfgFile, outputFormat, whereExpr, cfg, client = "", "", "", nil, nil
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"search", "tron", "--config", path, "--output", "json", "--where", "Runtime > 90"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, rootCmd.ExecuteContext(ctx))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "tt0084827", decoded[0]["ttid"])
	assert.Equal(t, "tt1104001", decoded[1]["ttid"])

	// one search plus one follow-up per hit
	assert.Equal(t, int32(4), requests.Load())
}
