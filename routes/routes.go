package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Dosada05/prediction-league/handlers"
	"github.com/Dosada05/prediction-league/middleware"
)

// SetupRoutes wires every handler onto the router. Read-only performance
// endpoints stay public; anything that writes or inspects the caller's own
// data requires a verified token, and fixture administration additionally
// requires the admin role.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	userHandler *handlers.UserHandler,
	groupHandler *handlers.GroupHandler,
	inviteHandler *handlers.InviteHandler,
	predictionHandler *handlers.PredictionHandler,
	gamificationHandler *handlers.GamificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(middleware.Metrics)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authenticate := middleware.Authenticate(jwtSecret)

	router.Route("/users", func(r chi.Router) {
		r.Get("/{id}/gamification", gamificationHandler.GetGamificationData)
		r.Get("/{id}/badges", gamificationHandler.GetBadges)
		r.Get("/{id}/stats", gamificationHandler.GetUserStats)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.GetProfile)
			r.Patch("/me", userHandler.UpdateProfile)
			r.Post("/me/avatar", userHandler.UploadAvatar)
		})
	})

	router.Route("/groups", func(r chi.Router) {
		r.Get("/{id}", groupHandler.GetGroupByID)
		r.Get("/{id}/leaderboard", groupHandler.GetLeaderboard)
		r.Get("/{id}/live", webSocketHandler.SubscribeGroup)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", groupHandler.CreateGroup)
			r.Get("/", groupHandler.ListMyGroups)
			r.Post("/{id}/leave", groupHandler.LeaveGroup)
			r.Post("/{id}/logo", groupHandler.UploadGroupLogo)
			r.Post("/{id}/invites", inviteHandler.CreateInvite)
			r.Get("/{id}/invites", inviteHandler.ListGroupInvites)
		})
	})

	router.Route("/invites", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/accept", inviteHandler.AcceptInvite)
		r.Delete("/{id}", inviteHandler.DeleteInvite)
	})

	router.Route("/fixtures", func(r chi.Router) {
		r.Get("/upcoming", predictionHandler.ListUpcomingFixtures)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(middleware.RequireAdmin)
			r.Post("/", predictionHandler.CreateFixture)
			r.Post("/{id}/result", predictionHandler.RecordFixtureResult)
			r.Post("/{id}/settle", predictionHandler.SettleFixture)
		})
	})

	router.Route("/predictions", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", predictionHandler.PlacePrediction)
		r.Get("/groups/{groupID}/fixtures/{fixtureID}", predictionHandler.GetOwnPrediction)
	})

	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)
		r.Get("/dashboard", dashboardHandler.GetDashboardStats)
	})
}
