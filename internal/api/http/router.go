package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Auth      *AuthHandler
	Sellers   *SellerHandler
	Crates    *CrateHandler
	Movements *MovementHandler
	Reports   *ReportHandler
	Admin     *AdminHandler
	Mw        *AuthMiddleware

	MetricsEnabled bool
}

// NewRouter wires the full route table. Everything under /api/v1 except login
// requires a bearer token; admin routes additionally require the admin role.
func NewRouter(deps RouterDeps) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	if deps.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	router.HandleFunc("/api/v1/auth/login", deps.Auth.Login).Methods("POST")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(deps.Mw.Authenticate)

	api.HandleFunc("/auth/logout", deps.Auth.Logout).Methods("POST")

	api.HandleFunc("/sellers", deps.Sellers.Create).Methods("POST")
	api.HandleFunc("/sellers", deps.Sellers.List).Methods("GET")
	api.HandleFunc("/sellers/export", deps.Sellers.Export).Methods("GET")
	api.HandleFunc("/sellers/{code}", deps.Sellers.Rename).Methods("PUT")
	api.HandleFunc("/sellers/{code}", deps.Sellers.Delete).Methods("DELETE")
	api.HandleFunc("/sellers/{code}/open-loans", deps.Reports.OpenLoans).Methods("GET")

	api.HandleFunc("/crates", deps.Crates.Register).Methods("POST")
	api.HandleFunc("/crates", deps.Crates.List).Methods("GET")
	api.HandleFunc("/crates/export", deps.Crates.Export).Methods("GET")
	api.HandleFunc("/crates/{barcode}", deps.Crates.Get).Methods("GET")
	api.HandleFunc("/crates/{barcode}/history", deps.Reports.CrateHistory).Methods("GET")

	api.HandleFunc("/movements", deps.Movements.Record).Methods("POST")
	api.HandleFunc("/movements/recent", deps.Movements.Recent).Methods("GET")

	api.HandleFunc("/reports/fleet", deps.Reports.FleetSummary).Methods("GET")
	api.HandleFunc("/reports/availability", deps.Reports.Availability).Methods("GET")
	api.HandleFunc("/reports/movements", deps.Reports.Movements).Methods("GET")
	api.HandleFunc("/reports/seller-activity", deps.Reports.SellerActivity).Methods("GET")
	api.HandleFunc("/reports/exposure", deps.Reports.Exposure).Methods("GET")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(deps.Mw.RequireAdmin)
	admin.HandleFunc("/users", deps.Admin.RegisterUser).Methods("POST")
	admin.HandleFunc("/purge-movements", deps.Admin.PurgeMovements).Methods("POST")
	admin.HandleFunc("/purge-crates", deps.Admin.PurgeCrates).Methods("POST")
	admin.HandleFunc("/rehash-passwords", deps.Admin.RehashPasswords).Methods("POST")
	admin.HandleFunc("/reconcile", deps.Admin.Reconcile).Methods("POST")

	return router
}
