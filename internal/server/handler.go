// Package server exposes tokenization and parsing over HTTP. The handler is
// transport agnostic; HTTP3Server serves it over QUIC.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lpp-lang/lpp/internal/cli"
	"github.com/lpp-lang/lpp/internal/format"
	"github.com/lpp-lang/lpp/internal/i18n"
	"github.com/lpp-lang/lpp/internal/lexer"
	"github.com/lpp-lang/lpp/internal/parser"
)

// DefaultMaxBodyBytes limits the size of submitted sources
const DefaultMaxBodyBytes = 1 << 20

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// Diagnostic is a parse error in a response
type Diagnostic struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// Hint is a keyword suggestion in a response
type Hint struct {
	Message string `json:"message"`
	Literal string `json:"literal"`
	Keyword string `json:"keyword"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

// Response is the body of /tokens and /parse replies
type Response struct {
	RequestID   string           `json:"request_id"`
	Tokens      []map[string]any `json:"tokens,omitempty"`
	Program     map[string]any   `json:"program,omitempty"`
	Rendering   string           `json:"rendering"`
	Errors      []Diagnostic     `json:"errors"`
	Suggestions []Hint           `json:"suggestions"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// Options configures a Handler
type Options struct {
	Catalogs     *i18n.Registry
	Logger       *cli.Logger
	MaxBodyBytes int64
}

// Handler serves the API:
//
//	POST /tokens   source in the body, token list out
//	POST /parse    source in the body, syntax tree and diagnostics out
//	GET  /healthz  liveness probe
//
// The ?locale= query parameter selects the diagnostics language.
type Handler struct {
	mux      *http.ServeMux
	catalogs *i18n.Registry
	logger   *cli.Logger
	maxBody  int64
}

// NewHandler creates the API handler
func NewHandler(opts Options) (*Handler, error) {
	if opts.Catalogs == nil {
		reg, err := i18n.NewRegistry("")
		if err != nil {
			return nil, err
		}
		opts.Catalogs = reg
	}
	if opts.Logger == nil {
		opts.Logger = cli.NewLogger(false, false)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	h := &Handler{
		mux:      http.NewServeMux(),
		catalogs: opts.Catalogs,
		logger:   opts.Logger,
		maxBody:  opts.MaxBodyBytes,
	}
	h.mux.HandleFunc("/healthz", h.healthz)
	h.mux.HandleFunc("/tokens", h.source(h.tokens))
	h.mux.HandleFunc("/parse", h.source(h.parse))
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	w.Header().Set(RequestIDHeader, id)
	r.Header.Set(RequestIDHeader, id)

	start := time.Now()
	h.mux.ServeHTTP(w, r)
	h.logger.With("request_id", id).Info("%s %s %s (%s)", r.Proto, r.Method, r.URL.Path, time.Since(start))
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.methodNotAllowed(w, r, "GET, HEAD")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": cli.Version})
}

type sourceFunc func(w http.ResponseWriter, r *http.Request, src string, catalog *i18n.Catalog)

// source wraps an endpoint taking a program in the POST body
func (h *Handler) source(fn sourceFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.methodNotAllowed(w, r, "POST")
			return
		}

		catalog, err := h.catalogs.Lookup(r.URL.Query().Get("locale"))
		if err != nil {
			h.fail(w, r, http.StatusBadRequest, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.fail(w, r, http.StatusRequestEntityTooLarge,
					fmt.Errorf("source exceeds %d bytes", tooLarge.Limit))
				return
			}
			h.fail(w, r, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
			return
		}

		fn(w, r, string(body), catalog)
	}
}

func (h *Handler) tokens(w http.ResponseWriter, r *http.Request, src string, catalog *i18n.Catalog) {
	toks := lexer.New(src).Tokens()

	var table strings.Builder
	if err := format.Tokens(&table, toks, catalog); err != nil {
		h.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		RequestID:   r.Header.Get(RequestIDHeader),
		Tokens:      format.TokenMaps(toks),
		Rendering:   table.String(),
		Errors:      []Diagnostic{},
		Suggestions: []Hint{},
	})
}

func (h *Handler) parse(w http.ResponseWriter, r *http.Request, src string, catalog *i18n.Catalog) {
	p := parser.New(lexer.New(src), parser.WithCatalog(catalog))
	program := p.ParseProgram()

	resp := Response{
		RequestID:   r.Header.Get(RequestIDHeader),
		Program:     format.ToMap(program),
		Rendering:   program.String(),
		Errors:      make([]Diagnostic, 0, len(p.Diagnostics())),
		Suggestions: make([]Hint, 0, len(p.Suggestions())),
	}
	for _, d := range p.Diagnostics() {
		resp.Errors = append(resp.Errors, Diagnostic{
			Message: d.Message,
			Line:    d.Position.Line,
			Column:  d.Position.Column,
		})
	}
	for _, s := range p.Suggestions() {
		resp.Suggestions = append(resp.Suggestions, Hint{
			Message: s.Message,
			Literal: s.Literal,
			Keyword: s.Keyword,
			Line:    s.Position.Line,
			Column:  s.Position.Column,
		})
	}

	// A program with syntax errors is still a successful analysis
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	h.fail(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := r.Header.Get(RequestIDHeader)
	h.logger.With("request_id", id).Warn("%s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, status, errorResponse{RequestID: id, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
