package api

import (
	"context"
	"strconv"
	"time"

	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	endpointRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tashkeel_endpoint_requests_total",
		Help: "Endpoint calls by endpoint, transport and outcome",
	}, []string{"endpoint", "transport", "outcome"})

	endpointDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tashkeel_endpoint_duration_seconds",
		Help:    "Endpoint latency",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}, []string{"endpoint"})

	searchResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tashkeel_search_results_total",
		Help: "Single-text searches by whether the term was found",
	}, []string{"found"})
)

// Instrument records call counts and latency for the named endpoint.
func Instrument(name string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			start := time.Now()
			resp, err := next(ctx, request)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			endpointRequests.WithLabelValues(name, kit.GetTransport(ctx), outcome).Inc()
			endpointDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

func recordSearch(found bool) {
	searchResults.WithLabelValues(strconv.FormatBool(found)).Inc()
}
