package router

import (
	"net/http"

	"handi-menu/internal/handler"
	"handi-menu/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Menu      *handler.MenuHandler
	Orders    *handler.OrderHandler
	History   *handler.HistoryHandler
	Stats     *handler.StatsHandler
	Assistant *handler.AssistantHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, logger zerolog.Logger) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.MethodNotAllowed)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// Catalogue; the describe route is registered before {id} so it is not shadowed.
	api.HandleFunc("/menu", h.Menu.List).Methods(http.MethodGet)
	api.HandleFunc("/menu", h.Menu.Create).Methods(http.MethodPost)
	api.HandleFunc("/menu/describe", h.Assistant.Describe).Methods(http.MethodPost)
	api.HandleFunc("/menu/{id}", h.Menu.Update).Methods(http.MethodPut)
	api.HandleFunc("/menu/{id}", h.Menu.Delete).Methods(http.MethodDelete)

	// Active orders
	api.HandleFunc("/orders", h.Orders.List).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.Orders.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", h.Orders.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id}", h.Orders.UpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id}", h.Orders.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/orders/{id}/archive", h.Orders.Archive).Methods(http.MethodPost)

	// History
	api.HandleFunc("/history", h.History.List).Methods(http.MethodGet)
	api.HandleFunc("/history", h.History.Append).Methods(http.MethodPost)

	api.HandleFunc("/stats", h.Stats.Get).Methods(http.MethodGet)

	api.HandleFunc("/recommendations", h.Assistant.Recommend).Methods(http.MethodPost)
	api.HandleFunc("/assistant", h.Assistant.Assist).Methods(http.MethodPost)

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS.
	// CORS wraps the router so preflight requests never reach method matching.
	var handler http.Handler = r
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
