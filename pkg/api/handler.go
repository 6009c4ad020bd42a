package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hazyhaar/tashkeel/pkg/corpus"
	"github.com/hazyhaar/tashkeel/pkg/kit"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter returns an http.Handler with all tashkeel API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{svc: svc}

	mux.HandleFunc("POST /v1/search", h.handleSearchPost)
	mux.HandleFunc("GET /v1/search", h.handleSearchGet)
	mux.HandleFunc("POST /v1/normalize", h.handleNormalize)
	mux.HandleFunc("GET /v1/corpus/search", h.handleCorpusSearch)
	mux.HandleFunc("GET /v1/collections", h.handleListCollections)
	mux.HandleFunc("GET /v1/health", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return cors(requestID(mux))
}

type handler struct {
	svc *Service
}

// --- search ---

type httpSearchRequest struct {
	Content string `json:"content"`
	Term    string `json:"term"`
}

func (h *handler) handleSearchPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*MaxTextBytes+1024)
	var req httpSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.search(w, r, req.Content, req.Term)
}

func (h *handler) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.search(w, r, q.Get("content"), q.Get("term"))
}

func (h *handler) search(w http.ResponseWriter, r *http.Request, content, term string) {
	resp, err := h.svc.search(r.Context(), &searchReq{Content: content, Term: term})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- normalize ---

type httpNormalizeRequest struct {
	Text string `json:"text"`
}

func (h *handler) handleNormalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxTextBytes+1024)
	var req httpNormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	resp, err := h.svc.normalize(r.Context(), &normalizeReq{Text: req.Text})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- corpus ---

func (h *handler) handleCorpusSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	term := q.Get("q")
	if term == "" {
		writeError(w, http.StatusBadRequest, "missing q")
		return
	}
	opts := &corpus.SearchOptions{}
	if v := q.Get("collections"); v != "" {
		opts.Collections = splitList(v)
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = n
	}

	resp, err := h.svc.corpusSearch(r.Context(), &corpusSearchReq{Term: term, Opts: opts})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleListCollections(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.listCollections(r.Context(), nil)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
	Corpus bool   `json:"corpus"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Corpus: h.svc.store != nil})
}

// --- helpers ---

func statusFor(err error) int {
	switch {
	case errors.Is(err, errTooLarge), errors.Is(err, corpus.ErrEmptyTerm):
		return http.StatusBadRequest
	case errors.Is(err, corpus.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNoCorpus):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// requestID tags each request with X-Request-ID, taken from the client when present.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := kit.WithRequestID(kit.WithTransport(r.Context(), "http"), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
