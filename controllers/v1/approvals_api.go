package apiv1

import (
	"office-admin-backend/controllers"
	approvalengine "office-admin-backend/lib/approval-engine"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	approvalapimodels "office-admin-backend/models/api/approval"

	"github.com/gofiber/fiber/v2"
)

type approvalsApiController struct {
	controllers.BaseAPIController
}

func InitApprovalsApiRouters(app *fiber.App) {
	controller := approvalsApiController{}
	app.Route("approvals", func(router fiber.Router) {
		router.Get("pending", controller.pending)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("can_act", controller.canAct)
			idRoute.Post("approve", controller.approve)
			idRoute.Post("reject", controller.reject)
			idRoute.Post("reset", controller.reset) // вернуть шаг в ожидание
		})
	})
}

func approvalResultView(result approvalengine.Result) approvalapimodels.ResultView {
	return approvalapimodels.ResultView{
		StepID:         result.StepID,
		StepStatus:     result.StepStatus,
		DocumentStatus: result.DocumentStatus,
	}
}

// @Summary Ожидают моего решения
// @Tags Согласование документов
// @Description Шаги, по которым сейчас очередь текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]approvalapimodels.StepView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/pending [get]
func (c *approvalsApiController) pending(ctx *fiber.Ctx) error {
	resp, err := approvalengine.Instance.PendingForUser(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шагов согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Доступность действия
// @Tags Согласование документов
// @Description Может ли текущий пользователь принять решение по шагу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "step ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.CanActView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/can_act [get]
func (c *approvalsApiController) canAct(ctx *fiber.Ctx) error {
	stepID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	canAct, err := approvalengine.Instance.CanAct(stepID, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки шага согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(approvalapimodels.CanActView{CanAct: canAct}))
}

// @Summary Согласовать
// @Tags Согласование документов
// @Description Согласовать (подписать) шаг
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.ApproveRequest	true	"request body"
// @Param   id          		path    string  				    	true         "step ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/approve [post]
func (c *approvalsApiController) approve(ctx *fiber.Ctx) error {
	stepID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApproveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalengine.Instance.Approve(stepID, middleware.GetUserID(ctx), payload.Notes, payload.Signature)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(approvalResultView(result)))
}

// @Summary Отклонить
// @Tags Согласование документов
// @Description Отклонить шаг, документ переходит в статус отклонен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.RejectRequest	true	"request body"
// @Param   id          		path    string  				    	true         "step ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/reject [post]
func (c *approvalsApiController) reject(ctx *fiber.Ctx) error {
	stepID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.RejectRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalengine.Instance.Reject(stepID, middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(approvalResultView(result)))
}

// @Summary Вернуть в ожидание
// @Tags Согласование документов
// @Description Сброс решения по шагу автором документа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 approvalapimodels.ApproveRequest	true	"request body"
// @Param   id          		path    string  				    	true         "step ID"
// @Success 200 {object} apimodels.Response{data=approvalapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/reset [post]
func (c *approvalsApiController) reset(ctx *fiber.Ctx) error {
	stepID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload approvalapimodels.ApproveRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalengine.Instance.ResetStep(stepID, middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сброса шага согласования")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(approvalResultView(result)))
}
