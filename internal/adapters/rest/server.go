package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// Handlers - все обработчики API.
type Handlers struct {
	Contacts *ContactsHandler
	History  *HistoryHandler
	Outreach *OutreachHandler
	Snapshot *SnapshotHandler
}

// NewRouter собирает роутер. auth кладет владельца в контекст запроса.
func NewRouter(h Handlers, auth func(http.Handler) http.Handler, allowedOrigins []string, baseLogger port.LoggerPort) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-ID", "X-Trace-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/api/contacts", func(r chi.Router) {
			r.Get("/", h.Contacts.ListContacts)
			r.Post("/", h.Contacts.CreateContact)
			// статические пути до /{id}
			r.Get("/stats", h.Contacts.GetStats)
			r.Get("/export", h.Snapshot.ExportContacts)
			r.Post("/import", h.Snapshot.ImportContacts)
			r.Post("/bulk-contact", h.Outreach.BulkContact)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Contacts.GetContact)
				r.Put("/", h.Contacts.UpdateContact)
				r.Delete("/", h.Contacts.DeleteContact)
				r.Get("/whatsapp-qr", h.Outreach.WhatsAppQR)

				r.Post("/history", h.History.AddHistoryEntry)
				r.Put("/history/{historyId}", h.History.UpdateHistoryEntry)
				r.Delete("/history/{historyId}", h.History.DeleteHistoryEntry)
			})
		})

		r.Route("/api/matching", func(r chi.Router) {
			r.Post("/", h.Outreach.MatchBuyers)
			r.Post("/send", h.Outreach.SendMatches)
			r.Post("/contacts/{id}/send", h.Outreach.SendToContact)
		})
	})

	return r
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewServer создает новый экземпляр сервера.
func NewServer(listenPort string, handler http.Handler, baseLogger port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + listenPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start запускает HTTP-сервер.
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
