package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/panel/internal/api/handler"
	mw "github.com/edvin/panel/internal/api/middleware"
	"github.com/edvin/panel/internal/config"
	"github.com/edvin/panel/internal/core"
)

type Server struct {
	router      chi.Router
	logger      zerolog.Logger
	services    *core.Services
	pool        *pgxpool.Pool
	cfg         *config.Config
	auditLogger *mw.AuditLogger
}

func NewServer(logger zerolog.Logger, pool *pgxpool.Pool, cfg *config.Config) *Server {
	services := core.NewServices(pool, cfg.JWTSecret, cfg.JWTIssuer, cfg.TOTPIssuer)
	auditLogger := mw.NewAuditLogger(pool, logger)

	s := &Server{
		router:      chi.NewRouter(),
		logger:      logger,
		services:    services,
		pool:        pool,
		cfg:         cfg,
		auditLogger: auditLogger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint
	s.router.Handle("/metrics", promhttp.Handler())

	// Health check endpoints
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// Login is the only unauthenticated API endpoint.
	auth := handler.NewAuth(s.services.Auth)
	s.router.Post("/api/v1/auth/login", auth.Login)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.Auth(s.services.Auth))
		r.Use(s.auditLogger.Middleware)

		// Own account
		me := handler.NewMe(s.services.User, s.services.Auth)
		r.Get("/me", me.Get)
		r.Put("/me/password", me.ChangePassword)
		r.Post("/me/2fa/setup", me.SetupTwoFA)
		r.Post("/me/2fa/enable", me.EnableTwoFA)
		r.Delete("/me/2fa", me.DisableTwoFA)

		// Domains
		domain := handler.NewDomain(s.services.Domain)
		r.Get("/domains", domain.List)
		r.Post("/domains", domain.Create)
		r.Get("/domains/{id}", domain.Get)
		r.Put("/domains/{id}", domain.Update)
		r.Delete("/domains/{id}", domain.Delete)

		// Subdomains
		subdomain := handler.NewSubdomain(s.services.Subdomain, s.services.Domain)
		r.Get("/domains/{domainID}/subdomains", subdomain.ListByDomain)
		r.Post("/domains/{domainID}/subdomains", subdomain.Create)
		r.Get("/subdomains/{id}", subdomain.Get)
		r.Put("/subdomains/{id}", subdomain.Update)
		r.Delete("/subdomains/{id}", subdomain.Delete)

		// DNS records
		dnsRecord := handler.NewDNSRecord(s.services.DNSRecord, s.services.Domain)
		r.Get("/domains/{domainID}/records", dnsRecord.ListByDomain)
		r.Post("/domains/{domainID}/records", dnsRecord.Create)
		r.Get("/dns-records/{id}", dnsRecord.Get)
		r.Put("/dns-records/{id}", dnsRecord.Update)
		r.Delete("/dns-records/{id}", dnsRecord.Delete)

		// Email accounts
		emailAccount := handler.NewEmailAccount(s.services.EmailAccount, s.services.Domain)
		r.Get("/domains/{domainID}/email-accounts", emailAccount.ListByDomain)
		r.Post("/domains/{domainID}/email-accounts", emailAccount.Create)
		r.Get("/email-accounts/{id}", emailAccount.Get)
		r.Put("/email-accounts/{id}", emailAccount.Update)
		r.Delete("/email-accounts/{id}", emailAccount.Delete)

		// Email forwarders
		emailForwarder := handler.NewEmailForwarder(s.services.EmailForwarder, s.services.EmailAccount)
		r.Get("/email-accounts/{accountID}/forwarders", emailForwarder.ListByAccount)
		r.Post("/email-accounts/{accountID}/forwarders", emailForwarder.Create)
		r.Put("/email-forwarders/{id}", emailForwarder.Update)
		r.Delete("/email-forwarders/{id}", emailForwarder.Delete)

		// Email auto-reply
		autoresponder := handler.NewAutoresponder(s.services.Autoresponder, s.services.EmailAccount)
		r.Get("/email-accounts/{accountID}/autoresponder", autoresponder.Get)
		r.Put("/email-accounts/{accountID}/autoresponder", autoresponder.Put)
		r.Delete("/email-accounts/{accountID}/autoresponder", autoresponder.Delete)

		// Databases
		database := handler.NewDatabase(s.services.Database)
		r.Get("/databases", database.List)
		r.Post("/databases", database.Create)
		r.Get("/databases/{id}", database.Get)
		r.Delete("/databases/{id}", database.Delete)

		// Database users
		dbUser := handler.NewDatabaseUser(s.services.DatabaseUser, s.services.Database)
		r.Get("/database-users", dbUser.List)
		r.Post("/database-users", dbUser.Create)
		r.Get("/database-users/{id}", dbUser.Get)
		r.Put("/database-users/{id}", dbUser.Update)
		r.Delete("/database-users/{id}", dbUser.Delete)

		// Virtual hosts
		vhost := handler.NewVirtualHost(s.services.VirtualHost, s.services.Domain)
		r.Get("/virtual-hosts", vhost.List)
		r.Post("/domains/{domainID}/virtual-hosts", vhost.Create)
		r.Get("/virtual-hosts/{id}", vhost.Get)
		r.Put("/virtual-hosts/{id}", vhost.Update)
		r.Put("/virtual-hosts/{id}/modsecurity", vhost.SetModSecurity)
		r.Put("/virtual-hosts/{id}/autossl", vhost.SetAutoSSL)
		r.Delete("/virtual-hosts/{id}", vhost.Delete)

		// SSH keys
		sshKey := handler.NewSSHKey(s.services.SSHKey)
		r.Get("/ssh-keys", sshKey.List)
		r.Post("/ssh-keys", sshKey.Create)
		r.Get("/ssh-keys/{id}", sshKey.Get)
		r.Delete("/ssh-keys/{id}", sshKey.Delete)

		// Blocked IPs
		blockedIP := handler.NewBlockedIP(s.services.BlockedIP)
		r.Get("/blocked-ips", blockedIP.List)
		r.Post("/blocked-ips", blockedIP.Create)
		r.Delete("/blocked-ips/{id}", blockedIP.Delete)

		// Certificates
		cert := handler.NewCertificate(s.services.Certificate, s.services.Domain, s.services.VirtualHost)
		r.Get("/domains/{domainID}/certificates", cert.ListByDomain)
		r.Post("/domains/{domainID}/certificates", cert.Upload)
		r.Get("/certificates/{id}", cert.Get)
		r.Delete("/certificates/{id}", cert.Delete)

		// Admin-only resources
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin())

			user := handler.NewUser(s.services.User)
			r.Get("/users", user.List)
			r.Post("/users", user.Create)
			r.Get("/users/{id}", user.Get)
			r.Put("/users/{id}", user.Update)
			r.Post("/users/{id}/suspend", user.Suspend)
			r.Post("/users/{id}/unsuspend", user.Unsuspend)
			r.Delete("/users/{id}", user.Delete)

			daemon := handler.NewDaemon(s.services.Daemon)
			r.Get("/daemons", daemon.List)
			r.Get("/daemons/{id}", daemon.Get)
			r.Post("/daemons/{id}/restart", daemon.Restart)
			r.Put("/daemons/{id}/enabled", daemon.SetEnabled)

			audit := handler.NewAudit(s.pool)
			r.Get("/audit-logs", audit.List)

			dashboard := handler.NewDashboard(s.services.Dashboard)
			r.Get("/dashboard/stats", dashboard.Stats)
		})
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := s.pool.Ping(ctx); err != nil {
		checks["db"] = err.Error()
		healthy = false
	} else {
		checks["db"] = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close drains the audit log buffer. Call after the HTTP server has stopped
// accepting requests.
func (s *Server) Close() {
	s.auditLogger.Close()
}
