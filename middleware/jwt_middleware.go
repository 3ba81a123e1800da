package middleware

import (
	"office-admin-backend/config"
	apimodels "office-admin-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
)

// AuthorizationRequired токен из заголовка, для /ws из query (браузер не передает заголовки при upgrade)
func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
		TokenLookup: "header:Authorization,query:token",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			log.WithField("path", ctx.Path()).WithError(err).Debug("запрос без действующего токена")
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
