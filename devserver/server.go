// Package devserver is an in-memory reference implementation of the
// judging backend's HTTP contract. It exists so the terminal client can
// be developed and end-to-end tested without the real service; it owns
// no durable state and makes no attempt to.
package devserver

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/damrufest/judgeboard/logger"
)

type Server struct {
	store  *Store
	jwtKey []byte
	router *chi.Mux
}

type Options struct {
	JwtKey         []byte
	AllowedOrigins []string
	// Quiet disables request logging; used by tests.
	Quiet bool
}

func New(store *Store, opts Options) *Server {
	router := chi.NewRouter()

	if !opts.Quiet {
		logger := httplog.NewLogger("judgeboard-dev", httplog.Options{
			LogLevel:         slog.LevelDebug,
			Concise:          true,
			MessageFieldName: "message",
		})
		router.Use(httplog.RequestLogger(logger))
	}

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           3000,
		}))
	}

	server := &Server{
		store:  store,
		jwtKey: opts.JwtKey,
		router: router,
	}

	router.Use(server.sessionMiddleware)
	server.routes()

	return server
}

func (s *Server) routes() {
	r := s.router

	r.Post("/auth/login", s.login)
	r.Get("/auth/me", s.whoAmI)
	r.Post("/auth/logout", s.logout)

	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", s.listCompetitions)
		r.Post("/", s.createCompetition)

		r.Route("/{competitionId}", func(r chi.Router) {
			r.Use(s.competitionLogger)
			r.Get("/", s.getCompetition)
			r.Delete("/", s.deleteCompetition)
			r.Post("/select", s.selectCompetition)
			r.Post("/criteria", s.addCriteria)

			r.Get("/participants", s.listParticipants)
			r.Post("/participants/upload", s.uploadParticipants)
			r.Delete("/participants/{participantId}", s.deleteParticipant)
			r.Put("/participants/order", s.reorderParticipants)

			r.Get("/participants/{participantId}/matrix", s.scoringMatrix)
			r.Post("/participants/{participantId}/scores", s.submitScores)
		})
	})

	r.Route("/leaderboard/{competitionId}", func(r chi.Router) {
		r.Use(s.competitionLogger)
		r.Get("/", s.leaderboard)
	})
}

// competitionLogger tags the request logger with the competition being
// served so every downstream log line carries it.
func (s *Server) competitionLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithCompetition(r.Context(), chi.URLParam(r, "competitionId"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(address string) error {
	return http.ListenAndServe(address, s.router)
}
