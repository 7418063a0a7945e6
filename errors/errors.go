package errors

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	"railway-reservation/ledger"
)

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	return context.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
		"data":    data})
}

func RaisePermissionsError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusUnauthorized, "lack of permissions", data)
}

func RaiseInternalServerError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusInternalServerError, "internal error", data)
}

func RaiseBadRequestError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusBadRequest, "bad request", data)
}

func RaiseNotFoundError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusNotFound, "resource not found", data)
}

func RaiseConflictError(context *fiber.Ctx, data string) error {
	return RaiseError(context, fiber.StatusConflict, "conflict", data)
}

// RaiseLedgerError maps a ledger failure onto the matching status code.
func RaiseLedgerError(context *fiber.Ctx, err error) error {
	switch {
	case ledger.IsNotFoundError(err):
		return RaiseNotFoundError(context, err.Error())
	case stderrors.Is(err, ledger.ErrNoSeatsAvailable):
		return RaiseConflictError(context, err.Error())
	case stderrors.Is(err, ledger.ErrInvalidInput):
		return RaiseBadRequestError(context, err.Error())
	default:
		return RaiseInternalServerError(context, err.Error())
	}
}
