package routes

import (
	"github.com/Dosada05/football-championship/handlers"
	"github.com/Dosada05/football-championship/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // alias to avoid conflict
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	corsAllowedOrigins []string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	rankingHandler *handlers.RankingHandler,
	auditHandler *handlers.AuditHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	adminOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize(middleware.RoleAdmin))
	}

	router.Post("/auth/login", authHandler.Login)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamName}", teamHandler.GetTeamByName)

		r.Group(func(r chi.Router) {
			adminOnly(r)
			r.Post("/", teamHandler.AddTeams)
			r.Put("/{teamName}", teamHandler.UpdateTeam)
			r.Delete("/{teamName}", teamHandler.DeleteTeam)
			r.Post("/{teamName}/logo", teamHandler.UploadLogo)
			r.Delete("/{teamName}/logo", teamHandler.DeleteLogo)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListRecent)

		r.Group(func(r chi.Router) {
			adminOnly(r)
			r.Post("/", matchHandler.AddMatches)
		})
	})

	router.Route("/groups/{groupNumber}", func(r chi.Router) {
		r.Get("/rankings", rankingHandler.GetGroupRankings)
		r.Get("/outcome/{teamName}", rankingHandler.GetOutcome)
		r.Get("/fixtures", rankingHandler.GetGroupFixtures)
	})

	router.Group(func(r chi.Router) {
		adminOnly(r)
		r.Get("/audit", auditHandler.ListRecent)
	})
}
