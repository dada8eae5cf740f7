package routes

import (
	"net/http"

	_ "github.com/Dosada05/tabletennis/docs" // swagger spec
	"github.com/Dosada05/tabletennis/handlers"
	"github.com/Dosada05/tabletennis/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	categoryHandler *handlers.CategoryHandler,
	matchHandler *handlers.MatchHandler,
	playerHandler *handlers.PlayerHandler,
) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin))
	}

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.Get)
		r.Get("/{playerID}/rating-history", playerHandler.RatingHistory)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", playerHandler.Create)
		})
	})

	router.Route("/categories", func(r chi.Router) {
		// Публичные маршруты
		r.Get("/", categoryHandler.List)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", categoryHandler.Create)
		})

		r.Route("/{categoryID}", func(r chi.Router) {
			r.Get("/", categoryHandler.Get)
			r.Get("/matches", categoryHandler.ListMatches)
			r.Get("/groups", categoryHandler.ListGroups)
			r.Get("/bracket", categoryHandler.GetBracket)
			r.Get("/standings", categoryHandler.GetStandings)

			r.Post("/registrations", categoryHandler.Register)
			r.Delete("/registrations/{playerID}", categoryHandler.CancelRegistration)

			// Управление категорией только для организаторов
			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/close", categoryHandler.Close)
				r.Post("/reopen", categoryHandler.Reopen)
				r.Post("/start", categoryHandler.Start)
				r.Post("/matches/{matchID}/result", matchHandler.SubmitResult)
			})
		})
	})
}
