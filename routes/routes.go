package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/doubles-rounds/docs"
	"github.com/Dosada05/doubles-rounds/handlers"
	"github.com/Dosada05/doubles-rounds/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	JWTSecret      []byte
	AllowedOrigins []string
}

func SetupRoutes(
	r chi.Router,
	cfg RouterConfig,
	healthHandler *handlers.HealthHandler,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.Health)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Websocket connections are long-lived and must not hit the timeout below.
	r.Get("/ws/tournaments/{slug}", webSocketHandler.ServeWs)

	authenticated := func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWTSecret))
		r.Use(middleware.RequireRole(middleware.RoleOrganizer, middleware.RoleAdmin))
	}

	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Post("/", tournamentHandler.CreateHandler)
			})

			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetHandler)
				r.Get("/pairs", participantHandler.ListPairs)
				r.Post("/pairs", participantHandler.RegisterPair)
				r.Get("/matches", matchHandler.ListMatches)
				r.Get("/standings", standingsHandler.GetStandings)
				r.Get("/board", standingsHandler.GetBoard)

				r.Group(func(r chi.Router) {
					authenticated(r)
					r.Patch("/", tournamentHandler.UpdateCapacityHandler)
					r.Delete("/", tournamentHandler.DeleteHandler)
					r.Post("/clear", tournamentHandler.ClearHandler)
					r.Post("/schedule", matchHandler.GenerateSchedule)
					r.Post("/export", standingsHandler.ExportSnapshot)
				})
			})
		})

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Delete("/pairs/{pairID}", participantHandler.RemovePair)
			r.Put("/matches/{matchID}", matchHandler.RecordScore)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
