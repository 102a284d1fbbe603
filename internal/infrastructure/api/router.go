package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	AllowedOrigins []string
}

// NewRouter wires the routes and the middleware chain.
// Order, outermost first: recovery, request id, access log, origin check and CORS.
func NewRouter(generate *GenerateHandler, health *HealthHandler, cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", health.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/generate-image", generate.HandleGenerateImage).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	var h http.Handler = r
	h = CORS(cfg.AllowedOrigins)(h)
	h = AccessLog(h)
	h = RequestID(h)
	h = Recovery(h)
	return h
}
