package apiv1

import (
	"office-admin-backend/controllers"
	dispositionhandler "office-admin-backend/lib/disposition"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	dispositionapimodels "office-admin-backend/models/api/disposition"

	"github.com/gofiber/fiber/v2"
)

type dispositionsApiController struct {
	controllers.BaseAPIController
}

func InitDispositionsApiRouters(app *fiber.App) {
	controller := dispositionsApiController{}
	app.Route("dispositions", func(router fiber.Router) {
		router.Post("inbox", controller.inbox)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("access", controller.access)
			idRoute.Put("read", controller.read)
			idRoute.Put("in_progress", controller.inProgress)
			idRoute.Put("complete", controller.complete)
		})
	})
}

func dispositionResultView(result dispositionhandler.Result) dispositionapimodels.ResultView {
	return dispositionapimodels.ResultView{
		DispositionID: result.DispositionID,
		Status:        result.Status,
		LetterStatus:  result.LetterStatus,
	}
}

// @Summary Мои поручения
// @Tags Поручения
// @Description Поручения, адресованные текущему пользователю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dispositionapimodels.InboxFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]dispositionapimodels.DispositionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dispositions/inbox [post]
func (c *dispositionsApiController) inbox(ctx *fiber.Ctx) error {
	var payload dispositionapimodels.InboxFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := dispositionhandler.Instance.Inbox(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка поручений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Доступ к поручению
// @Tags Поручения
// @Description Является ли текущий пользователь участником цепочки поручения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=bool}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dispositions/{id}/access [get]
func (c *dispositionsApiController) access(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	ok, err := dispositionhandler.Instance.CanAccess(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки доступа к поручению")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ok))
}

// @Summary Прочитано
// @Tags Поручения
// @Description Отметка о прочтении поручения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dispositionapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dispositions/{id}/read [put]
func (c *dispositionsApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := dispositionhandler.Instance.MarkRead(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки о прочтении поручения")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dispositionResultView(result)))
}

// @Summary В работу
// @Tags Поручения
// @Description Взять поручение в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dispositionapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dispositions/{id}/in_progress [put]
func (c *dispositionsApiController) inProgress(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := dispositionhandler.Instance.MarkInProgress(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перевода поручения в работу")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dispositionResultView(result)))
}

// @Summary Исполнено
// @Tags Поручения
// @Description Отметка об исполнении поручения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dispositionapimodels.CompleteRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dispositionapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dispositions/{id}/complete [put]
func (c *dispositionsApiController) complete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dispositionapimodels.CompleteRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := dispositionhandler.Instance.Complete(id, middleware.GetUserID(ctx), payload.Response)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки об исполнении поручения")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dispositionResultView(result)))
}
