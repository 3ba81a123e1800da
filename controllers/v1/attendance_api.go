package apiv1

import (
	"fmt"
	"office-admin-backend/controllers"
	attendancehandler "office-admin-backend/lib/attendance"
	"office-admin-backend/middleware"
	apimodels "office-admin-backend/models/api"
	attendanceapimodels "office-admin-backend/models/api/attendance"
	"time"

	"github.com/gofiber/fiber/v2"
)

type attendanceApiController struct {
	controllers.BaseAPIController
}

func InitAttendanceApiRouters(app *fiber.App) {
	controller := attendanceApiController{}
	app.Route("attendance", func(router fiber.Router) {
		router.Put("clock_in", controller.clockIn)
		router.Put("clock_out", controller.clockOut)
		router.Get("today", controller.today)
		router.Post("history", controller.history)
		router.Put("report", controller.report)
	})
}

// @Summary Отметить приход
// @Tags Учет рабочего времени
// @Description Отметить приход
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.ClockRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/clock_in [put]
func (c *attendanceApiController) clockIn(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.ClockRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := attendancehandler.Instance.ClockIn(middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки прихода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отметить уход
// @Tags Учет рабочего времени
// @Description Отметить уход
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.ClockRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/clock_out [put]
func (c *attendanceApiController) clockOut(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.ClockRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := attendancehandler.Instance.ClockOut(middleware.GetUserID(ctx), payload.Notes)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отметки ухода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отметка за сегодня
// @Tags Учет рабочего времени
// @Description Отметка за сегодня, data пустая если прихода еще не было
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=attendanceapimodels.AttendanceView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/today [get]
func (c *attendanceApiController) today(ctx *fiber.Ctx) error {
	resp, err := attendancehandler.Instance.Today(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения отметки за сегодня")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary История отметок
// @Tags Учет рабочего времени
// @Description История отметок за период
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.HistoryFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]attendanceapimodels.AttendanceView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/history [post]
func (c *attendanceApiController) history(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.HistoryFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	from, to, err := payload.Period(attendancehandler.ScheduleFromConfig().Location)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := attendancehandler.Instance.History(middleware.GetUserID(ctx), from, to)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории отметок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Табель посещаемости. Выгрузить в Excel
// @Tags Учет рабочего времени
// @Description Табель посещаемости за период. Выгрузить в Excel
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 attendanceapimodels.ReportFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/attendance/report [put]
func (c *attendanceApiController) report(ctx *fiber.Ctx) error {
	var payload attendanceapimodels.ReportFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	from, to, err := payload.Period(attendancehandler.ScheduleFromConfig().Location)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data, err := attendancehandler.Instance.Report(from, to, payload.OrgUnitID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки табеля посещаемости в Excel")
	}
	fileName := fmt.Sprintf("attendance-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
