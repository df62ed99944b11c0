package api

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/cakeshelf/cakeshelf/internal/api/recovery"
	"github.com/cakeshelf/cakeshelf/internal/api/respond"
)

// NewRouter binds the five cake operations plus health and docs routes, and
// wraps the whole surface in recovery, access-log, CORS and compression
// middleware.
func NewRouter(cake *CakeHandler, health *HealthHandler, log zerolog.Logger, corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(recovery.Middleware)
	r.Use(accessLog(log))

	r.HandleFunc("/cakes", cake.ListCakes).Methods(http.MethodGet)
	r.HandleFunc("/cakes", cake.CreateCake).Methods(http.MethodPost)
	r.HandleFunc("/cakes/{id}", cake.GetCake).Methods(http.MethodGet)
	r.HandleFunc("/cakes/{id}", cake.UpdateCake).Methods(http.MethodPut)
	r.HandleFunc("/cakes/{id}", cake.DeleteCake).Methods(http.MethodDelete)

	r.HandleFunc("/health", health.CheckHealth).Methods(http.MethodGet)
	r.HandleFunc("/openapi.json", ServeOpenAPI).Methods(http.MethodGet)
	r.HandleFunc("/docs", ServeDocs).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(routeNotFound)

	cors := handlers.CORS(
		handlers.AllowedOrigins(corsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	return handlers.CompressHandler(cors(r))
}

// routeNotFound answers every unmatched route.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	respond.WriteNotFound(w, "Route not found")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// accessLog emits one structured line per request.
func accessLog(log zerolog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
