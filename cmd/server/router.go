package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/parkhopper/parkhopper-api/internal/api"
	apiMiddleware "github.com/parkhopper/parkhopper-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	catalogHandler := api.NewCatalogHandler()
	parkHandler := api.NewParkHandler(app.parkClient, app.waitSampleStore, app.logger)
	analyticsHandler := api.NewAnalyticsHandler(app.waitSampleStore, app.logger)
	recommendHandler := api.NewRecommendHandler(app.scorer, app.planner, app.parkClient, app.logger)
	tripHandler := api.NewTripHandler(app.tripService, app.messageStore, app.logger)
	geofenceHandler := api.NewGeofenceHandler(app.geofenceService, app.logger)
	wsHandler := api.NewWSHandler(app.hub, app.tripService, app.userStore, app.jwtService, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Catalog endpoints (public)
		r.Get("/parks", catalogHandler.ListParks)
		r.Get("/attractions", catalogHandler.ListAttractions)
		r.Get("/restaurants", catalogHandler.ListRestaurants)

		// Live park data endpoints (public)
		r.Get("/parks/{parkID}/live", parkHandler.GetLive)
		r.Get("/parks/{parkID}/schedule", parkHandler.GetSchedule)
		r.Get("/parks/{parkID}/crowd", parkHandler.GetCrowd)
		r.Get("/attractions/{attractionID}/trend", analyticsHandler.GetTrend)

		// WebSocket endpoint; authenticates inside the handler because the
		// browser handshake cannot carry an Authorization header.
		r.Get("/trips/{tripID}/ws", wsHandler.Connect)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account profile endpoints
			r.Get("/users/me", userHandler.GetProfile)
			r.Put("/users/me/email", userHandler.UpdateEmail)
			r.Put("/users/me/password", userHandler.UpdatePassword)
			r.Delete("/users/me", userHandler.DeleteAccount)

			// Recommendation endpoints
			r.Post("/recommendations", recommendHandler.Recommend)
			r.Post("/itinerary", recommendHandler.BuildItinerary)

			// Trip endpoints
			r.Post("/trips", tripHandler.CreateTrip)
			r.Get("/trips", tripHandler.ListTrips)
			r.Get("/trips/{tripID}", tripHandler.GetTrip)
			r.Put("/trips/{tripID}", tripHandler.UpdateTrip)
			r.Delete("/trips/{tripID}", tripHandler.DeleteTrip)

			// Trip item endpoints
			r.Post("/trips/{tripID}/items", tripHandler.AddItem)
			r.Get("/trips/{tripID}/items", tripHandler.ListItems)
			r.Put("/trips/{tripID}/items/{itemID}", tripHandler.UpdateItem)
			r.Delete("/trips/{tripID}/items/{itemID}", tripHandler.RemoveItem)

			// Trip party membership
			r.Post("/trips/{tripID}/members", tripHandler.InviteMember)
			r.Get("/trips/{tripID}/members", tripHandler.ListMembers)
			r.Delete("/trips/{tripID}/members/{memberID}", tripHandler.RemoveMember)

			// Trip chat history
			r.Get("/trips/{tripID}/messages", tripHandler.ListMessages)

			// Geofence endpoints
			r.Post("/geofences", geofenceHandler.CreateGeofence)
			r.Get("/geofences", geofenceHandler.ListGeofences)
			r.Get("/geofences/{fenceID}", geofenceHandler.GetGeofence)
			r.Put("/geofences/{fenceID}", geofenceHandler.UpdateGeofence)
			r.Delete("/geofences/{fenceID}", geofenceHandler.DeleteGeofence)
			r.Post("/geofences/check", geofenceHandler.CheckPosition)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
