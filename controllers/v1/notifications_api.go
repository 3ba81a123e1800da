package apiv1

import (
	"office-admin-backend/controllers"
	notificationhandler "office-admin-backend/lib/notification"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	notificationapimodels "office-admin-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationsApiController struct {
	controllers.BaseAPIController
}

func InitNotificationsApiRouters(app *fiber.App) {
	controller := notificationsApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read", controller.markRead)
		router.Put("read_all", controller.markAllRead)
	})
}

// @Summary Список уведомлений
// @Tags Уведомления
// @Description Список уведомлений текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.NotificationFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/list [post]
func (c *notificationsApiController) list(ctx *fiber.Ctx) error {
	var payload notificationapimodels.NotificationFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := notificationhandler.Instance.List(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Кол-во непрочитанных
// @Tags Уведомления
// @Description Кол-во непрочитанных уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCountView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/unread_count [get]
func (c *notificationsApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кол-ва непрочитанных уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCountView{Count: count}))
}

// @Summary Прочитать
// @Tags Уведомления
// @Description Отметить уведомления прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 notificationapimodels.MarkReadRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read [put]
func (c *notificationsApiController) markRead(ctx *fiber.Ctx) error {
	var payload notificationapimodels.MarkReadRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := notificationhandler.Instance.MarkRead(middleware.GetUserID(ctx), payload.IDs); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Прочитать все
// @Tags Уведомления
// @Description Отметить все уведомления прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read_all [put]
func (c *notificationsApiController) markAllRead(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
