package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/tashkeel/pkg/corpus"
	"github.com/hazyhaar/tashkeel/pkg/diacritics"
	"github.com/hazyhaar/tashkeel/pkg/kit"
)

// MaxTextBytes caps content, term and text inputs on every transport.
const MaxTextBytes = 64 * 1024

var (
	errNoCorpus = errors.New("corpus store not configured")
	errTooLarge = errors.New("input too large")
)

// Shared request/response types used by both HTTP and MCP transports.

type searchReq struct {
	Content string
	Term    string
}

type searchResponse struct {
	diacritics.MatchResult
	Matched string `json:"matched,omitempty"`
}

type normalizeReq struct {
	Text string
}

type normalizeResponse struct {
	Stripped string `json:"stripped"`
	IndexMap []int  `json:"index_map"`
	Removed  int    `json:"removed"`
}

type corpusSearchReq struct {
	Term string
	Opts *corpus.SearchOptions
}

type corpusSearchResponse struct {
	Term string       `json:"term"`
	Hits []corpus.Hit `json:"hits"`
}

type collectionsResponse struct {
	Collections []corpus.CollectionInfo `json:"collections"`
}

// Service holds the endpoints shared by the HTTP router and the MCP tools.
type Service struct {
	store  *corpus.Store
	logger *slog.Logger

	search          kit.Endpoint
	normalize       kit.Endpoint
	corpusSearch    kit.Endpoint
	listCollections kit.Endpoint
}

// NewService wires the endpoints with logging and metrics middleware.
// store may be nil, in which case corpus endpoints fail.
func NewService(store *corpus.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(logger, name), Instrument(name))(ep)
	}
	return &Service{
		store:           store,
		logger:          logger,
		search:          wrap("search", searchEndpoint()),
		normalize:       wrap("normalize", normalizeEndpoint()),
		corpusSearch:    wrap("corpus_search", corpusSearchEndpoint(store)),
		listCollections: wrap("list_collections", listCollectionsEndpoint(store)),
	}
}

func checkSize(field, s string) error {
	if len(s) > MaxTextBytes {
		return fmt.Errorf("%w: %s is %d bytes, max %d", errTooLarge, field, len(s), MaxTextBytes)
	}
	return nil
}

func searchEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*searchReq)
		if err := checkSize("content", req.Content); err != nil {
			return nil, err
		}
		if err := checkSize("term", req.Term); err != nil {
			return nil, err
		}
		m := diacritics.Search(req.Content, req.Term)
		recordSearch(m.Found)
		_, matched, _ := diacritics.Split(req.Content, m)
		return searchResponse{MatchResult: m, Matched: matched}, nil
	}
}

func normalizeEndpoint() kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*normalizeReq)
		if err := checkSize("text", req.Text); err != nil {
			return nil, err
		}
		n := diacritics.Normalize(req.Text)
		return normalizeResponse{
			Stripped: n.String(),
			IndexMap: n.IndexMap,
			Removed:  len([]rune(req.Text)) - n.Len(),
		}, nil
	}
}

func corpusSearchEndpoint(store *corpus.Store) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		if store == nil {
			return nil, errNoCorpus
		}
		req := request.(*corpusSearchReq)
		if err := checkSize("term", req.Term); err != nil {
			return nil, err
		}
		hits, err := store.Search(req.Term, req.Opts)
		if err != nil {
			return nil, err
		}
		return corpusSearchResponse{Term: req.Term, Hits: hits}, nil
	}
}

func listCollectionsEndpoint(store *corpus.Store) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		if store == nil {
			return nil, errNoCorpus
		}
		infos, err := store.ListCollections()
		if err != nil {
			return nil, err
		}
		return collectionsResponse{Collections: infos}, nil
	}
}
