package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
	"github.com/smartroute/smartroute/pkg/ctdf"
	"github.com/smartroute/smartroute/pkg/elastic_client"
)

const placeIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 1
	},
	"mappings": {
		"properties": {
			"ID": {
				"type": "keyword"
			},
			"Name": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"LocalName": {
				"type": "text",
				"fields": {
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"DisplayName": {
				"type": "text",
				"fields": {
					"keyword": {
						"type": "keyword",
						"ignore_above": 256
					},
					"search_as_you_type": {
						"type": "search_as_you_type"
					}
				}
			},
			"CountryCode": {
				"type": "keyword"
			},
			"Location": {
				"type": "geo_point"
			},
			"Population": {
				"type": "integer"
			}
		}
	}
}`

// PlaceDocument is what gets stored in the places index
type PlaceDocument struct {
	ID          string
	Name        string
	LocalName   string
	DisplayName string
	CountryCode string
	Location    ctdf.Location
	Population  int
}

func NewPlaceDocument(place *ctdf.Place) PlaceDocument {
	return PlaceDocument{
		ID:          place.ID,
		Name:        place.Name,
		LocalName:   place.LocalName,
		DisplayName: place.DisplayName(),
		CountryCode: place.CountryCode,
		Location:    place.Location,
		Population:  place.Population,
	}
}

// IndexPlaces writes every place into a fresh timestamped index and then drops the older ones
func IndexPlaces(ctx context.Context, client *elasticsearch.Client, indexPrefix string, places []*ctdf.Place) (string, error) {
	indexName := fmt.Sprintf("%s-%d", indexPrefix, time.Now().Unix())

	if err := createPlaceIndex(ctx, client, indexName); err != nil {
		return "", err
	}

	for _, place := range places {
		document, err := json.Marshal(NewPlaceDocument(place))
		if err != nil {
			return "", err
		}

		elastic_client.IndexRequest(indexName, place.ID, bytes.NewReader(document))
	}

	log.Info().Str("index", indexName).Int("places", len(places)).Msg("Sent all index requests to queue")

	elastic_client.WaitUntilQueueEmpty()

	if err := deleteOldIndexes(ctx, client, indexPrefix+"-*", indexName); err != nil {
		return indexName, err
	}

	return indexName, nil
}

func createPlaceIndex(ctx context.Context, client *elasticsearch.Client, indexName string) error {
	indexReq := esapi.IndicesCreateRequest{
		Index: indexName,
		Body:  strings.NewReader(placeIndexMapping),
	}

	resp, err := indexReq.Do(ctx, client)
	if err != nil {
		return fmt.Errorf("create index %s: %w", indexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		responseBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create index %s: %s %s", indexName, resp.Status(), responseBytes)
	}

	log.Info().Str("index", indexName).Msg("Created places index")

	return nil
}
