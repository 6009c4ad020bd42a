package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInstrument(t *testing.T) {
	ok := endpointRequests.WithLabelValues("instrument_test", "mcp_quic", "ok")
	failed := endpointRequests.WithLabelValues("instrument_test", "mcp_quic", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ctx := kit.WithTransport(context.Background(), "mcp_quic")
	Instrument("instrument_test")(func(context.Context, any) (any, error) { return nil, nil })(ctx, nil)
	Instrument("instrument_test")(func(context.Context, any) (any, error) { return nil, errors.New("x") })(ctx, nil)

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("ok delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("error delta = %v, want 1", got)
	}
}

func TestSearchResultsCounter(t *testing.T) {
	found := searchResults.WithLabelValues("true")
	before := testutil.ToFloat64(found)

	svc := NewService(nil, quietLogger())
	svc.search(context.Background(), &searchReq{Content: shahada, Term: "الله"})

	if got := testutil.ToFloat64(found) - before; got != 1 {
		t.Errorf("found delta = %v, want 1", got)
	}
}

func TestMetricsExposure(t *testing.T) {
	srv := newTestServer(t, nil)
	http.Get(srv.URL + "/v1/search?content=abc&term=b")

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "tashkeel_endpoint_requests_total") {
		t.Error("metrics output missing tashkeel_endpoint_requests_total")
	}
}
