package controllers

import (
	notificationhandler "office-admin-backend/lib/notification"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/middleware"
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан параметр %v", key)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", errors.Errorf("некорректный идентификатор %v", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError ожидаемые ошибки бизнес-логики отдаются клиенту с кодом, остальные логируются и скрываются
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	kind, ok := workflowerrors.KindOf(err)
	if !ok {
		logger.WithError(err).Error(message)
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
	}
	return ctx.Status(StatusByKind(kind)).JSON(apimodels.NewErrorWithCode(string(kind), err.Error()))
}

func StatusByKind(kind workflowerrors.Kind) int {
	switch kind {
	case workflowerrors.NotFound:
		return fiber.StatusNotFound
	case workflowerrors.AuthorizationDenied:
		return fiber.StatusForbidden
	case workflowerrors.Validation:
		return fiber.StatusBadRequest
	case workflowerrors.InvalidTransition, workflowerrors.OutOfTurn, workflowerrors.StageMismatch:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// Notify события рассылаются только после успешной фиксации изменений
func (c *BaseAPIController) Notify(events []models.NotificationData) {
	if len(events) == 0 {
		return
	}
	notificationhandler.Instance.Dispatch(events)
}
