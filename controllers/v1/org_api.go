package apiv1

import (
	"office-admin-backend/controllers"
	orghandler "office-admin-backend/lib/org"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	orgapimodels "office-admin-backend/models/api/org"

	"github.com/gofiber/fiber/v2"
)

type orgApiController struct {
	controllers.BaseAPIController
}

func InitOrgApiRouters(app *fiber.App) {
	controller := orgApiController{}
	app.Route("org", func(router fiber.Router) {
		router.Get("approvers", controller.approvers)
		router.Route("units", func(units fiber.Router) {
			units.Post("", controller.createUnit)
			units.Get("tree", controller.unitTree)
			units.Put(":id/head", controller.setHead)
			units.Get(":id/employees", controller.unitEmployees)
		})
		router.Route("employees", func(employees fiber.Router) {
			employees.Post("", controller.createEmployee)
			employees.Get(":id", controller.getEmployee)
		})
	})
}

// @Summary Создание подразделения
// @Tags Оргструктура
// @Description Создание подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orgapimodels.OrgUnitData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/units [post]
func (c *orgApiController) createUnit(ctx *fiber.Ctx) error {
	var payload orgapimodels.OrgUnitData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := orghandler.Instance.CreateUnit(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Дерево подразделений
// @Tags Оргструктура
// @Description Дерево подразделений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]orgapimodels.OrgUnitView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/units/tree [get]
func (c *orgApiController) unitTree(ctx *fiber.Ctx) error {
	resp, err := orghandler.Instance.UnitTree()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения оргструктуры")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Назначить руководителя
// @Tags Оргструктура
// @Description Назначить руководителя подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orgapimodels.SetHeadRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/units/{id}/head [put]
func (c *orgApiController) setHead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload orgapimodels.SetHeadRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = orghandler.Instance.SetHead(id, payload.EmployeeID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения руководителя подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сотрудники подразделения
// @Tags Оргструктура
// @Description Сотрудники подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]orgapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/units/{id}/employees [get]
func (c *orgApiController) unitEmployees(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := orghandler.Instance.UnitEmployees(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудников подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Создание сотрудника
// @Tags Оргструктура
// @Description Создание сотрудника
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 orgapimodels.EmployeeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/employees [post]
func (c *orgApiController) createEmployee(ctx *fiber.Ctx) error {
	var payload orgapimodels.EmployeeData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := orghandler.Instance.CreateEmployee(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Сотрудник по ИД
// @Tags Оргструктура
// @Description Сотрудник по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=orgapimodels.EmployeeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/employees/{id} [get]
func (c *orgApiController) getEmployee(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := orghandler.Instance.GetEmployee(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения сотрудника")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Мои согласующие
// @Tags Оргструктура
// @Description Непосредственный руководитель и директор текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=orgapimodels.ApproversView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/org/approvers [get]
func (c *orgApiController) approvers(ctx *fiber.Ctx) error {
	resp, err := orghandler.Instance.ApproversOf(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения согласующих")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
