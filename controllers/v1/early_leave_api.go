package apiv1

import (
	"office-admin-backend/controllers"
	earlyleavehandler "office-admin-backend/lib/early-leave"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	earlyleaveapimodels "office-admin-backend/models/api/early-leave"

	"github.com/gofiber/fiber/v2"
)

type earlyLeaveApiController struct {
	controllers.BaseAPIController
}

func InitEarlyLeaveApiRouters(app *fiber.App) {
	controller := earlyLeaveApiController{}
	app.Route("early_leave", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("actions", controller.actions)
			idRoute.Put("approve_delegation", controller.approveDelegation) // согласование замещающим
			idRoute.Put("approve_supervisor", controller.approveSupervisor) // согласование руководителем
			idRoute.Put("approve_hr", controller.approveHR)                 // согласование отделом кадров
			idRoute.Put("sign_director", controller.signDirector)           // подпись директора
			idRoute.Put("reject", controller.reject)
		})
	})
}

func earlyLeaveResultView(result earlyleavehandler.Result) earlyleaveapimodels.ResultView {
	return earlyleaveapimodels.ResultView{
		ID:                  result.RequestID,
		Status:              result.Status,
		StatusName:          result.Status.ToHuman(),
		AutoCheckoutApplied: result.AutoCheckoutApplied,
	}
}

// @Summary Подать заявку
// @Tags Ранний уход
// @Description Подать заявку на ранний уход
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.SubmitRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave [post]
func (c *earlyLeaveApiController) submit(ctx *fiber.Ctx) error {
	var payload earlyleaveapimodels.SubmitRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.Submit(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подачи заявки на ранний уход")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}

// @Summary Список
// @Tags Ранний уход
// @Description Свои заявки или ожидающие решения текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.EarlyLeaveFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]earlyleaveapimodels.EarlyLeaveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/list [post]
func (c *earlyLeaveApiController) list(ctx *fiber.Ctx) error {
	var payload earlyleaveapimodels.EarlyLeaveFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := earlyleavehandler.Instance.List(middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Ранний уход
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.EarlyLeaveView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id} [get]
func (c *earlyLeaveApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := earlyleavehandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступные действия
// @Tags Ранний уход
// @Description Действия, доступные текущему пользователю по заявке
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ActionsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/actions [get]
func (c *earlyLeaveApiController) actions(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := earlyleavehandler.Instance.Actions(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения действий по заявке")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Согласовать (замещающий)
// @Tags Ранний уход
// @Description Согласование заявки замещающим сотрудником
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.DecisionRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/approve_delegation [put]
func (c *earlyLeaveApiController) approveDelegation(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload earlyleaveapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.ApproveDelegation(id, middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки замещающим")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}

// @Summary Согласовать (руководитель)
// @Tags Ранний уход
// @Description Согласование заявки руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.DecisionRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/approve_supervisor [put]
func (c *earlyLeaveApiController) approveSupervisor(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload earlyleaveapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.ApproveSupervisor(id, middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки руководителем")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}

// @Summary Согласовать (отдел кадров)
// @Tags Ранний уход
// @Description Согласование отделом кадров, при включенной автоотметке фиксируется уход сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.DecisionRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/approve_hr [put]
func (c *earlyLeaveApiController) approveHR(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload earlyleaveapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.ApproveHR(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования заявки отделом кадров")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}

// @Summary Подпись директора
// @Tags Ранний уход
// @Description Информационная подпись директора согласованной заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.DecisionRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/sign_director [put]
func (c *earlyLeaveApiController) signDirector(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload earlyleaveapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.SignDirector(id, middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка подписи заявки директором")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}

// @Summary Отклонить
// @Tags Ранний уход
// @Description Отклонение заявки на текущем этапе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 earlyleaveapimodels.RejectRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=earlyleaveapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/early_leave/{id}/reject [put]
func (c *earlyLeaveApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload earlyleaveapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := earlyleavehandler.Instance.Reject(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload.Reason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения заявки")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(earlyLeaveResultView(result)))
}
