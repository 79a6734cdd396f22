// Package app wires configuration into the facade and the HTTP surface
// shared by the luacene binaries.
package app

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonwraymond/luacene/codec"
	"github.com/jonwraymond/luacene/facade"
	"github.com/jonwraymond/luacene/index"
	"github.com/jonwraymond/luacene/internal/config"
	"github.com/jonwraymond/luacene/metrics"
)

// Codec returns the configured codec. An empty charset uses the process
// locale.
func Codec(cfg config.CodecConfig) (codec.Codec, error) {
	if cfg.Charset == "" && !cfg.Strict {
		return codec.Process(), nil
	}
	charset := cfg.Charset
	if charset == "" {
		charset = codec.Process().Charset()
	}
	var opts []codec.Option
	if cfg.Strict {
		opts = append(opts, codec.Strict())
	}
	return codec.New(charset, opts...)
}

// NewEngine builds a facade engine from cfg. m may be nil.
func NewEngine(cfg config.Config, log *zap.Logger, m *metrics.Metrics) (*facade.Engine, error) {
	c, err := Codec(cfg.Codec)
	if err != nil {
		return nil, err
	}
	return facade.New(facade.Options{
		Codec:   &c,
		Logger:  log,
		Metrics: m,
		Index: index.Options{
			MaxBufferedDocs: cfg.Index.MaxBufferedDocs,
			LockTimeout:     cfg.Index.LockTimeout,
			DefaultField:    cfg.Index.DefaultField,
			Logger:          log,
		},
	})
}

// RouterOptions configures Router.
type RouterOptions struct {
	Logger *zap.Logger

	// Metrics instruments requests. Nil disables instrumentation.
	Metrics *metrics.Metrics

	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// MCP is mounted at /mcp when set.
	MCP http.Handler
}

// Router returns the HTTP routes: /healthz, /metrics, and /mcp.
func Router(opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(jsonRecoverer(log))
	r.Use(chiMiddleware.RequestID)
	r.Use(opts.Metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}
	return r
}

// jsonRecoverer returns JSON instead of a plain text stack trace.
func jsonRecoverer(log *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					log.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					writeJSON(w, http.StatusInternalServerError, map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
