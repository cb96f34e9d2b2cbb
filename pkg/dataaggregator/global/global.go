package global

import (
	"github.com/smartroute/smartroute/pkg/dataaggregator"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/journeyplanner"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/offline"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/placeindex"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/stations"
	"github.com/smartroute/smartroute/pkg/dataaggregator/source/worker"
)

type Sources struct {
	Worker         *worker.Source
	Stations       *stations.Source
	Places         placeindex.Source
	JourneyPlanner journeyplanner.Source
}

// Setup registers the sources in lookup order. Suggestions try the worker stations first, then
// Elasticsearch, then the in-memory index. Health answers MOCK when there is no worker.
func Setup(sources Sources) *dataaggregator.Aggregator {
	aggregator := &dataaggregator.Aggregator{}

	if sources.Worker != nil {
		aggregator.RegisterSource(sources.Worker)
	}
	if sources.Stations != nil {
		aggregator.RegisterSource(*sources.Stations)
	}

	aggregator.RegisterSource(sources.Places)
	aggregator.RegisterSource(sources.JourneyPlanner)
	aggregator.RegisterSource(offline.Source{})

	return aggregator
}
