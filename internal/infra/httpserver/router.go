package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appfeedback "github.com/bryanwahyu/feedback-analyzer/internal/application/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/report"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/source"
	"github.com/bryanwahyu/feedback-analyzer/internal/middleware"
)

const (
	defaultMaxUpload = 200 << 20
	maxTopK          = 100
	// multipart parts beyond this stay on disk
	multipartMemory = 32 << 20
)

// Deps collects everything the router serves.
type Deps struct {
	Feedback       *appfeedback.Service
	Metrics        *middleware.Metrics
	Limiter        *middleware.RateLimiter
	Health         map[string]middleware.HealthChecker
	Log            *zap.Logger
	AllowedOrigins []string
	MaxUploadBytes int64
}

type Router struct {
	svc       *appfeedback.Service
	metrics   *middleware.Metrics
	log       *zap.Logger
	maxUpload int64
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	r := &Router{svc: d.Feedback, metrics: d.Metrics, log: log, maxUpload: d.MaxUploadBytes}
	if r.maxUpload <= 0 {
		r.maxUpload = defaultMaxUpload
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(log))
	if d.Metrics != nil {
		mux.Use(d.Metrics.Middleware)
	}
	mux.Use(chimw.Recoverer)
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(d.Health))
	mux.Get("/readyz", middleware.ReadinessHandler)
	if d.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	mux.Route("/v1", func(rt chi.Router) {
		rt.Get("/focuses", r.wrap(r.handleFocuses))
		rt.Post("/datasets/preview", r.wrap(r.handlePreview))
		rt.Post("/overview", r.wrap(r.handleOverview))
		rt.Post("/insights/top-words", r.wrap(r.handleTopWords))

		// endpoint yang memanggil model AI kena rate limit per IP
		rt.Group(func(limited chi.Router) {
			if d.Limiter != nil {
				limited.Use(d.Limiter.Middleware)
			}
			limited.Post("/analyze", r.wrap(r.handleAnalyze))
			limited.Post("/report", r.wrap(r.handleReport))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// httpError carries a status chosen by the handler itself.
type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &httpError{code: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var he *httpError
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &he):
			http.Error(w, he.msg, he.code)
		case errors.As(err, &tooLarge):
			http.Error(w, fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		case errors.Is(err, feedback.ErrSourceDisabled):
			http.Error(w, err.Error(), http.StatusNotImplemented)
		case feedback.IsInputError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			r.log.Error("request failed",
				zap.String("request_id", middleware.GetRequestID(req.Context())),
				zap.String("path", req.URL.Path),
				zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// dataset resolves the table from a multipart "file", ?object= or ?table=.
// requireColumn is false only for preview.
func (r *Router) dataset(w http.ResponseWriter, req *http.Request, requireColumn bool) (*feedback.Table, string, error) {
	if strings.HasPrefix(req.Header.Get("Content-Type"), "multipart/form-data") {
		req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
		if err := req.ParseMultipartForm(multipartMemory); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", badRequest("invalid multipart form: %v", err)
		}
	}

	column := middleware.SanitizeString(req.FormValue("column"))
	if requireColumn {
		if err := middleware.ValidateColumn(column); err != nil {
			return nil, "", badRequest("%v", err)
		}
	}

	if req.MultipartForm != nil && len(req.MultipartForm.File["file"]) > 0 {
		file, hdr, err := req.FormFile("file")
		if err != nil {
			return nil, "", badRequest("invalid file: %v", err)
		}
		defer file.Close()
		tbl, err := source.Parse(hdr.Filename, file)
		return tbl, column, err
	}

	query := req.URL.Query()
	switch {
	case query.Get("object") != "":
		key := query.Get("object")
		if err := middleware.ValidateObjectKey(key); err != nil {
			return nil, "", badRequest("%v", err)
		}
		tbl, err := r.svc.Load(req.Context(), feedback.DatasetRef{Kind: feedback.SourceObject, Key: key, Column: column})
		return tbl, column, err
	case query.Get("table") != "":
		table := query.Get("table")
		if err := middleware.ValidateIdentifier("table", table); err != nil {
			return nil, "", badRequest("%v", err)
		}
		if err := middleware.ValidateIdentifier("column", column); err != nil {
			return nil, "", badRequest("%v", err)
		}
		tbl, err := r.svc.Load(req.Context(), feedback.DatasetRef{Kind: feedback.SourceSQL, Key: table, Column: column})
		return tbl, column, err
	}
	return nil, "", badRequest("dataset required: upload a file or set object= or table=")
}

// GET /v1/focuses
func (r *Router) handleFocuses(w http.ResponseWriter, req *http.Request) error {
	type focus struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	out := make([]focus, 0, len(ai.Focuses))
	for _, f := range ai.Focuses {
		out = append(out, focus{Value: f.Slug(), Label: f.String()})
	}
	return writeJSON(w, out)
}

// POST /v1/datasets/preview?limit=5
func (r *Router) handlePreview(w http.ResponseWriter, req *http.Request) error {
	tbl, _, err := r.dataset(w, req, false)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	return writeJSON(w, map[string]any{
		"name":      tbl.Name,
		"columns":   tbl.Columns,
		"row_count": len(tbl.Rows),
		"rows":      tbl.Preview(middleware.ValidateLimit(limit)),
	})
}

// POST /v1/overview
func (r *Router) handleOverview(w http.ResponseWriter, req *http.Request) error {
	tbl, column, err := r.dataset(w, req, true)
	if err != nil {
		return err
	}
	ov, err := r.svc.Overview(tbl, column)
	if err != nil {
		return err
	}
	return writeJSON(w, ov)
}

// POST /v1/insights/top-words?k=15
func (r *Router) handleTopWords(w http.ResponseWriter, req *http.Request) error {
	k, err := middleware.ValidateTopK(req.URL.Query().Get("k"), feedback.DefaultTopK, maxTopK)
	if err != nil {
		return badRequest("%v", err)
	}
	tbl, column, err := r.dataset(w, req, true)
	if err != nil {
		return err
	}
	words, err := r.svc.TopWords(tbl, column, k)
	if err != nil {
		return err
	}
	return writeJSON(w, words)
}

// POST /v1/analyze?focus=themes
// Outcome apapun (termasuk error model) tetap 200 dengan kind di body.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	tbl, column, err := r.dataset(w, req, true)
	if err != nil {
		return err
	}
	focus, err := ai.ParseFocus(req.FormValue("focus"))
	if err != nil {
		// service yang menghasilkan pesan "Invalid analysis focus selected."
		focus = 0
	}
	out, err := r.svc.Analyze(req.Context(), tbl, column, focus)
	if err != nil {
		return err
	}
	return writeJSON(w, out)
}

// POST /v1/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	tbl, column, err := r.dataset(w, req, true)
	if err != nil {
		return err
	}
	rep, err := r.svc.Report(req.Context(), tbl, column)
	if err != nil {
		return err
	}
	if r.metrics != nil {
		r.metrics.ReportsTotal.Inc()
	}
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(rep.PDF)))
	w.Header().Set("X-Analysis-Kind", string(rep.Summary.Kind))
	_, err = w.Write(rep.PDF)
	return err
}
