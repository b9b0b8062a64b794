package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Ritesh010/admin/internal/api"
	"github.com/Ritesh010/admin/internal/config"
	"github.com/Ritesh010/admin/internal/handlers"
	"github.com/Ritesh010/admin/internal/middleware"
	"github.com/Ritesh010/admin/internal/session"
	"github.com/Ritesh010/admin/internal/views"
)

func SetupRouter(cfg config.Config, sessions *session.Store, client *api.Client, templates *views.TemplateCache, logger zerolog.Logger) *mux.Router {
	authHandler := handlers.NewAuthHandler(sessions, client, templates, logger)
	dashboardHandler := handlers.NewDashboardHandler(sessions, client, templates, logger)
	orderHandler := handlers.NewOrderHandler(sessions, client, templates, logger)
	productHandler := handlers.NewProductHandler(sessions, client, templates, logger)

	// Logout and forced re-auth clear the session; the hook drops any
	// in-progress product workflow with it.
	sessions.OnClear(productHandler.EndSession)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	r.HandleFunc("/signin", authHandler.SigninPage).Methods("GET")
	r.HandleFunc("/signin", authHandler.Login).Methods("POST")
	r.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(middleware.Authentication(sessions, logger))

	protected.HandleFunc("/", dashboardHandler.Dashboard).Methods("GET")
	protected.HandleFunc("/password", authHandler.ChangePassword).Methods("POST")

	protected.HandleFunc("/orders", orderHandler.Orders).Methods("GET")
	protected.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods("POST")
	protected.HandleFunc("/orders/{id}/invoice", orderHandler.Invoice).Methods("GET")

	protected.HandleFunc("/products", productHandler.Products).Methods("GET")
	protected.HandleFunc("/products/new", productHandler.NewForm).Methods("GET")
	protected.HandleFunc("/products/new", productHandler.CreateDetails).Methods("POST")
	protected.HandleFunc("/products/new/reset", productHandler.ResetForm).Methods("POST")
	protected.HandleFunc("/products/images/add", productHandler.AddImages).Methods("POST")
	protected.HandleFunc("/products/images/remove", productHandler.RemoveImage).Methods("POST")
	protected.HandleFunc("/products/images/clear", productHandler.ClearImages).Methods("POST")
	protected.HandleFunc("/products/images/upload", productHandler.UploadImages).Methods("POST")
	protected.HandleFunc("/products/{id}/edit", productHandler.EditForm).Methods("GET")
	protected.HandleFunc("/products/{id}/edit", productHandler.UpdateDetails).Methods("POST")
	protected.HandleFunc("/products/{id}/skip", productHandler.Skip).Methods("POST")
	protected.HandleFunc("/products/{id}/delete", productHandler.Delete).Methods("POST")
	protected.HandleFunc("/products/{id}/flip", productHandler.FlipStatus).Methods("POST")

	return r
}
