package stations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/dataaggregator/query"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source"
	"github.com/smartroute/smartroute/pkg/indexer"
)

// Source searches the Elasticsearch places index. It is best effort, any failure hands the
// query on to the next source.
type Source struct {
	Client *elasticsearch.Client
	Index  string
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source indexer.PlaceDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s Source) GetName() string {
	return "Elasticsearch Places"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]string{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.PlaceSuggestions:
		if s.Client == nil || indexer.ShortQuery(q.Text) {
			return nil, source.UnsupportedSourceError
		}

		names, err := s.suggest(ctx, q.Text, q.Limit)
		if err != nil {
			log.Debug().Err(err).Str("query", q.Text).Msg("Elasticsearch suggestions unavailable")
			return nil, source.UnsupportedSourceError
		}
		if len(names) == 0 {
			return nil, source.UnsupportedSourceError
		}

		return names, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) suggest(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = indexer.DefaultSuggestionLimit
	}

	var queryBytes bytes.Buffer
	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": text,
				"type":  "bool_prefix",
				"fields": []string{
					"DisplayName.search_as_you_type",
					"DisplayName.search_as_you_type._2gram",
					"DisplayName.search_as_you_type._3gram",
					"Name.search_as_you_type",
					"LocalName.search_as_you_type",
				},
			},
		},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"Population": map[string]interface{}{"order": "desc"}},
		},
	}
	if err := json.NewEncoder(&queryBytes).Encode(searchQuery); err != nil {
		return nil, err
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index+"-*"),
		s.Client.Search.WithBody(&queryBytes),
		s.Client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.Status())
	}

	var response searchResponse
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, err
	}

	var names []string
	for _, hit := range response.Hits.Hits {
		if hit.Source.DisplayName != "" {
			names = append(names, hit.Source.DisplayName)
		}
	}

	return names, nil
}
