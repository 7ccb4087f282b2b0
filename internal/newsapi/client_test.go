package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:  baseURL,
		APIKey:   "test-key",
		Query:    "Elden ring",
		From:     "2023",
		SortBy:   "popularity",
		Language: "pt",
		PageSize: 100,
		Timeout:  2 * time.Second,
	}
}

func TestEverythingSendsConfiguredParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, everythingPath, r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		q := r.URL.Query()
		assert.Equal(t, "Elden ring", q.Get("q"))
		assert.Equal(t, "2023", q.Get("from"))
		assert.Equal(t, "popularity", q.Get("sortBy"))
		assert.Equal(t, "pt", q.Get("language"))
		assert.Equal(t, "100", q.Get("pageSize"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"id":null,"name":"IGN"},"author":"IGN","title":"One","url":"https://example.com/1","publishedAt":"2023-03-01T10:00:00Z"},
			{"source":{"id":null,"name":"Eurogamer"},"author":"Jane","title":"Two","url":"https://example.com/2","publishedAt":"2023-03-02T10:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	articles, err := NewClient(testConfig(srv.URL)).Everything(context.Background())
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "One", articles[0].Title)
	assert.Equal(t, "Eurogamer", articles[1].Source.Name)
}

func TestEverythingEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":0}`))
	}))
	defer srv.Close()

	articles, err := NewClient(testConfig(srv.URL)).Everything(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestEverythingErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantAPI bool
	}{
		{name: "api error payload", status: http.StatusUnauthorized, body: `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`, wantAPI: true},
		{name: "error status with ok body", status: http.StatusOK, body: `{"status":"error","code":"rateLimited","message":"slow down"}`, wantAPI: true},
		{name: "non json error", status: http.StatusBadGateway, body: `<html>bad gateway</html>`},
		{name: "malformed body", status: http.StatusOK, body: `{"status":"ok","articles":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			articles, err := NewClient(testConfig(srv.URL)).Everything(context.Background())
			require.Error(t, err)
			assert.Nil(t, articles)

			var apiErr *APIError
			assert.Equal(t, tt.wantAPI, errors.As(err, &apiErr))
		})
	}
}

func TestEverythingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(testConfig(url)).Everything(context.Background())
	assert.Error(t, err)
}

func TestParamsOmitsEmptyValues(t *testing.T) {
	params := Config{Query: "Elden ring"}.Params()
	assert.Equal(t, map[string]string{"q": "Elden ring"}, params)
}
