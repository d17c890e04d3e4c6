package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/otabekj/dukon/internal/http/admin"
	"github.com/otabekj/dukon/internal/http/catalog"
	"github.com/otabekj/dukon/internal/http/client"
	"github.com/otabekj/dukon/internal/http/exporthttp"
	"github.com/otabekj/dukon/internal/http/importcsv"
	"github.com/otabekj/dukon/internal/http/reports"
	"github.com/otabekj/dukon/internal/http/staff"
	"github.com/otabekj/dukon/internal/http/supplier"
	"github.com/otabekj/dukon/internal/http/trade"
)

func New(
	clientsV1 *client.Handler,
	catalogV1 *catalog.Handler,
	tradeV1 *trade.Handler,
	suppliersV1 *supplier.Handler,
	staffV1 *staff.Handler,
	reportsV1 *reports.Handler,
	exportV1 *exporthttp.Handler,
	importV1 *importcsv.Handler,
	adminV1 *admin.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The desktop shell talks to the API from a file:// origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			clientsV1.Routes(r)
		})

		r.Route("/products", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			catalogV1.Routes(r)
		})

		r.Route("/trade", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			tradeV1.Routes(r)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			suppliersV1.Routes(r)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			staffV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/export", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			exportV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/admin", adminV1.Routes)
	})

	return router
}
