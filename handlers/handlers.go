package handlers

import (
	"iter"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"railway-reservation/ledger"
	"railway-reservation/middleware"
)

type AuthConfig struct {
	Login        string
	PasswordHash string
	Sign         string
	TokenTTL     time.Duration
}

// Handler serves the desk API on top of one shared ledger.
type Handler struct {
	Ledger *ledger.Ledger
	Auth   AuthConfig
	Log    *zap.Logger
}

func New(l *ledger.Ledger, auth AuthConfig, log *zap.Logger) *Handler {
	return &Handler{Ledger: l, Auth: auth, Log: log}
}

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "healthy",
		"data":    time.Now().Format(time.RFC3339)})
}

func success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data})
}

func operator(c *fiber.Ctx) string {
	token, ok := c.Locals(middleware.IdentityKey).(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	name, _ := claims["username"].(string)
	return name
}

// collect drains seq into a non-nil slice so empty lists encode as [].
func collect[T any](seq iter.Seq[T]) []T {
	out := []T{}
	for v := range seq {
		out = append(out, v)
	}
	return out
}
