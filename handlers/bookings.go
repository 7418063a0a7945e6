package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"railway-reservation/errors"
)

type bookingRequest struct {
	TrainNumber   int    `json:"train_number"`
	PassengerName string `json:"passenger_name"`
	PassengerAge  int    `json:"passenger_age"`
}

type cancelRequest struct {
	PassengerName string `json:"passenger_name"`
	PassengerAge  int    `json:"passenger_age"`
	Reason        string `json:"reason"`
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	return success(c, "bookings", collect(h.Ledger.Bookings()))
}

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	req := new(bookingRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for booking parameters: %v", err))
	}
	req.PassengerName = strings.TrimSpace(req.PassengerName)

	if err := passengerValidation(req.PassengerName, req.PassengerAge); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for booking parameters: %v", err))
	}

	booking, err := h.Ledger.BookTicket(c.UserContext(), req.TrainNumber, req.PassengerName, req.PassengerAge)
	if err != nil {
		return errors.RaiseLedgerError(c, err)
	}

	h.Log.Info("ticket booked over api",
		zap.String("operator", operator(c)),
		zap.Int("train_number", booking.TrainNumber))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Ticket booked successfully!",
		"data":    booking})
}

func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	req := new(cancelRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for cancellation parameters: %v", err))
	}
	req.PassengerName = strings.TrimSpace(req.PassengerName)
	req.Reason = strings.TrimSpace(req.Reason)

	if err := passengerValidation(req.PassengerName, req.PassengerAge); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for cancellation parameters: %v", err))
	}

	cancelled, err := h.Ledger.CancelTicket(c.UserContext(), req.PassengerName, req.PassengerAge, req.Reason)
	if err != nil {
		return errors.RaiseLedgerError(c, err)
	}

	h.Log.Info("tickets cancelled over api",
		zap.String("operator", operator(c)),
		zap.Int("count", len(cancelled)))

	return success(c, "Ticket cancelled.", cancelled)
}

func passengerValidation(name string, age int) error {
	if name == "" {
		return fmt.Errorf("passenger name is missing")
	}
	if age <= 0 {
		return fmt.Errorf("passenger age must be positive")
	}
	return nil
}
