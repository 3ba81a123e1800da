package middleware

import (
	"office-admin-backend/lib/rbac"
	apimodels "office-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const rbacForbiddenCode = "RBAC_FORBIDDEN"

// RbacMiddleware маршруты без правила пропускаются, проверку выполняет обработчик
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewErrorWithCode(rbacForbiddenCode, "недостаточно прав"))
		}
		rule, found := rbac.Instance.GetRule(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !rule.Handler(userID, userRole, ctx.Path()) {
			log.
				WithField("user_id", userID).
				WithField("user_role", userRole).
				WithField("module", rule.Module).
				WithField("permission", rule.Permission).
				Info("доступ к маршруту запрещен")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewErrorWithCode(rbacForbiddenCode, "недостаточно прав"))
		}
		return ctx.Next()
	}
}
