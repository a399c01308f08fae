package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	formHandler *FormHandler,
	healthHandler *HealthHandler,
	sessionMiddleware func(http.Handler) http.Handler,
	requestLogger func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogger)

	// Health check endpoint (no session)
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Form page
	page := router.PathPrefix("").Subrouter()
	page.Use(sessionMiddleware)
	page.HandleFunc("/", formHandler.ShowForm).Methods("GET")
	page.HandleFunc("/file", formHandler.SelectFile).Methods("POST")
	page.HandleFunc("/submit", formHandler.Submit).Methods("POST")
	page.HandleFunc("/reset", formHandler.Reset).Methods("POST")

	// JSON API
	api := page.PathPrefix("/api/v1/form").Subrouter()
	api.HandleFunc("", formHandler.GetState).Methods("GET")
	api.HandleFunc("/file", formHandler.SelectFileJSON).Methods("POST")
	api.HandleFunc("/submit", formHandler.SubmitJSON).Methods("POST")
	api.HandleFunc("/reset", formHandler.ResetJSON).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
