package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"railway-reservation/errors"
)

const OperatorRole = "operator"

func isPasswordHashCorrect(dbHash, pass string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(dbHash), []byte(pass))
	return err == nil
}

func (h *Handler) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	var creds = new(Credentials)

	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("cannot parse credentials: %v", err))
	}

	if creds.Login != h.Auth.Login || !isPasswordHashCorrect(h.Auth.PasswordHash, creds.Password) {
		h.Log.Warn("rejected operator login", zap.String("login", creds.Login))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid login or password",
			"data":    nil})
	}

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = creds.Login
	claims["role"] = OperatorRole
	claims["jti"] = uuid.NewString()
	claims["exp"] = time.Now().Add(h.Auth.TokenTTL).Unix()

	t, err := token.SignedString([]byte(h.Auth.Sign))
	if err != nil {
		return errors.RaiseInternalServerError(c, fmt.Sprintf("cannot sign token: %v", err))
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "data": t})
}
