package stations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, handler http.HandlerFunc) Source {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)

	return Source{Client: client, Index: "smartroute-places"}
}

func TestLookupSuggestions(t *testing.T) {
	t.Run("returns display names", func(t *testing.T) {
		s := newSource(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/smartroute-places-*/_search", r.URL.Path)
			assert.Equal(t, "5", r.URL.Query().Get("size"))

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Contains(t, body, "query")

			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"hits":{"hits":[
				{"_source":{"ID":"krakow","DisplayName":"Kraków (PL)"}},
				{"_source":{"ID":"krasnik","DisplayName":"Kraśnik (PL)"}}
			]}}`))
		})

		value, err := s.Lookup(context.Background(), query.PlaceSuggestions{Text: "kra", Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, []string{"Kraków (PL)", "Kraśnik (PL)"}, value)
	})

	t.Run("empty result falls through", func(t *testing.T) {
		s := newSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.Write([]byte(`{"hits":{"hits":[]}}`))
		})

		_, err := s.Lookup(context.Background(), query.PlaceSuggestions{Text: "zzz"})
		assert.ErrorIs(t, err, source.UnsupportedSourceError)
	})

	t.Run("server error falls through", func(t *testing.T) {
		s := newSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.WriteHeader(http.StatusBadRequest)
		})

		_, err := s.Lookup(context.Background(), query.PlaceSuggestions{Text: "kra"})
		assert.ErrorIs(t, err, source.UnsupportedSourceError)
	})

	t.Run("single character is not searched", func(t *testing.T) {
		searched := false
		s := newSource(t, func(w http.ResponseWriter, r *http.Request) {
			searched = true
			w.Header().Set("X-Elastic-Product", "Elasticsearch")
			w.Write([]byte(`{"hits":{"hits":[{"_source":{"ID":"krakow","DisplayName":"Kraków (PL)"}}]}}`))
		})

		_, err := s.Lookup(context.Background(), query.PlaceSuggestions{Text: "K"})
		assert.ErrorIs(t, err, source.UnsupportedSourceError)
		assert.False(t, searched)
	})

	t.Run("no client", func(t *testing.T) {
		_, err := Source{}.Lookup(context.Background(), query.PlaceSuggestions{Text: "kra"})
		assert.ErrorIs(t, err, source.UnsupportedSourceError)
	})
}
