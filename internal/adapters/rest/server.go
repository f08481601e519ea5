package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/beyondeth/shop/internal/constants"
	"github.com/beyondeth/shop/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - HTTP-сервер витрины.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает маршруты витрины. metricsHandler может быть nil.
func NewRouter(cfg ServerConfig, handlers *Handlers, metricsHandler http.Handler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", constants.HeaderTraceID},
		ExposedHeaders:   []string{constants.HeaderTraceID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handlers.Healthz)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(SessionMiddleware)

		// страницы
		r.Get("/products/id/{id}", handlers.ProductByID)
		r.Get("/products/{slug}", handlers.ProductPage)
		r.Get("/collections/{slug}", handlers.CollectionPage)
		r.Get("/shop", handlers.ShopPage)
		r.Get("/checkout-success", handlers.CheckoutSuccess)
		r.Get("/profile", handlers.ProfilePage)

		r.Route("/api", func(r chi.Router) {
			r.Get("/notifications", handlers.Notifications)

			r.Get("/profile/orders", handlers.CurrentOrders)
			r.Post("/profile/orders/next", handlers.NextOrders)
			r.Put("/profile", handlers.UpdateProfile)

			r.Get("/products/{id}/reviews", handlers.ProductReviews)
			r.Post("/products/{id}/reviews", handlers.CreateReview)

			r.Post("/checkout/cart", handlers.CartCheckout)
			r.Post("/checkout/quick-buy", handlers.QuickBuy)
		})
	})

	r.NotFound(handlers.NotFound)

	return r
}

func NewServer(cfg ServerConfig, handlers *Handlers, metricsHandler http.Handler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, handlers, metricsHandler, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер и блокируется до его остановки.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
