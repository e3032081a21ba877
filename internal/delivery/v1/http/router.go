package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/hhhemanthk-code/lishaa-agro-health-elevate/docs" // swagger registration
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/cfg"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/usecase"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(httpCfg *cfg.HTTPConfig, catalogUC usecase.CatalogUC, authUC usecase.AuthUC, contactUC usecase.ContactUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   httpCfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		productHandler := NewProductHandler(catalogUC, r.logger)
		contactHandler := NewContactHandler(contactUC, r.logger)
		authHandler := NewAuthHandler(authUC, r.logger)
		guard := NewSessionGuard(authUC, r.logger)

		registerPublicRoutes(v1, productHandler, contactHandler)
		registerAuthRoutes(v1, authHandler)
		registerAdminRoutes(v1, guard, productHandler)
	})
}

func registerPublicRoutes(router chi.Router, productHandler *ProductHandler, contactHandler *ContactHandler) {
	router.Get("/products", productHandler.ListPublic)
	router.Post("/contact", contactHandler.Submit)
}

func registerAuthRoutes(router chi.Router, authHandler *AuthHandler) {
	router.Post("/admin/login", authHandler.Login)
	router.Get("/admin/session", authHandler.Session)
	router.Post("/admin/logout", authHandler.Logout)
}

func registerAdminRoutes(router chi.Router, guard *SessionGuard, productHandler *ProductHandler) {
	router.Route("/admin/products", func(pr chi.Router) {
		pr.Use(guard.Middleware)
		pr.Get("/", productHandler.ListAdmin)
		pr.Post("/", productHandler.Create)
		pr.Put("/{id}", productHandler.Update)
		pr.Delete("/{id}", productHandler.Delete)
	})
}
