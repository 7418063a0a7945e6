package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"railway-reservation/errors"
)

type trainRequest struct {
	Number int    `json:"train_number"`
	Name   string `json:"train_name"`
	Seats  int    `json:"seats"`
}

func (h *Handler) GetTrains(c *fiber.Ctx) error {
	return success(c, "trains", collect(h.Ledger.Trains()))
}

func (h *Handler) CreateTrain(c *fiber.Ctx) error {
	req := new(trainRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable train parameters: %v", err))
	}
	req.Name = strings.TrimSpace(req.Name)

	if err := validateTrainRequest(*req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("incorrect input for train parameters: %v", err))
	}

	train, err := h.Ledger.AddTrain(c.UserContext(), req.Number, req.Name, req.Seats)
	if err != nil {
		return errors.RaiseLedgerError(c, err)
	}

	h.Log.Info("train created over api",
		zap.String("operator", operator(c)),
		zap.Int("train_number", train.Number))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Train added successfully.",
		"data":    train})
}

func validateTrainRequest(req trainRequest) error {
	if req.Number <= 0 {
		return fmt.Errorf("train number must be positive")
	}
	if req.Name == "" {
		return fmt.Errorf("train name is missing")
	}
	if req.Seats <= 0 {
		return fmt.Errorf("train cannot have zero seats for booking")
	}
	return nil
}
