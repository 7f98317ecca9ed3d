package http

import (
	"net/http"

	"go-survival-analysis/internal/delivery/http/handler"
	"go-survival-analysis/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	cohortHandler   *handler.CohortHandler
	analysisHandler *handler.AnalysisHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	cohortHandler *handler.CohortHandler,
	analysisHandler *handler.AnalysisHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		cohortHandler:   cohortHandler,
		analysisHandler: analysisHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Cohort and analysis routes (protected)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/cohorts", r.cohortHandler.GenerateCohort).Methods(http.MethodPost)
	protected.HandleFunc("/cohorts", r.cohortHandler.ListCohorts).Methods(http.MethodGet)
	protected.HandleFunc("/cohorts/{id}", r.cohortHandler.GetCohort).Methods(http.MethodGet)
	protected.HandleFunc("/cohorts/{id}/export", r.cohortHandler.ExportCohort).Methods(http.MethodGet)
	protected.HandleFunc("/cohorts/{id}/summary", r.cohortHandler.GetCohortSummary).Methods(http.MethodGet)

	protected.HandleFunc("/cohorts/{id}/analyses", r.analysisHandler.RunAnalysis).Methods(http.MethodPost)
	protected.HandleFunc("/cohorts/{id}/analyses", r.analysisHandler.ListAnalyses).Methods(http.MethodGet)
	protected.HandleFunc("/analyses/{id}", r.analysisHandler.GetAnalysis).Methods(http.MethodGet)
	protected.HandleFunc("/analyses/{id}/assumptions", r.analysisHandler.CheckAssumptions).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Cohort deletion is destructive, admin only
	adminCohorts := api.PathPrefix("/cohorts").Subrouter()
	adminCohorts.Use(r.authMiddleware.Authenticate)
	adminCohorts.Use(middleware.RequireAdmin)
	adminCohorts.HandleFunc("/{id}", r.cohortHandler.DeleteCohort).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
