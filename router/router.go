package router

import (
	"github.com/gofiber/fiber/v2"

	"railway-reservation/handlers"
	"railway-reservation/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler) {
	api := app.Group("/", middleware.RequestLogger(h.Log))
	api.Get("/health", handlers.Health)

	//Login
	api.Post("/login", h.Login)

	desk := api.Group("/api", middleware.Authorize(h.Auth.Sign))

	//Trains
	desk.Get("/trains", h.GetTrains)
	desk.Post("/trains", h.CreateTrain)

	//Bookings
	desk.Get("/bookings", h.GetBookings)
	desk.Post("/bookings", h.CreateBooking)
	desk.Post("/bookings/cancel", h.CancelBooking)
}
