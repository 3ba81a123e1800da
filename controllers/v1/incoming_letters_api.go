package apiv1

import (
	"fmt"
	"net/url"
	"office-admin-backend/controllers"
	dispositionhandler "office-admin-backend/lib/disposition"
	filestorage "office-admin-backend/lib/file-storage"
	incomingletterhandler "office-admin-backend/lib/incoming-letter"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/middleware"
	"office-admin-backend/models"
	apimodels "office-admin-backend/models/api"
	dispositionapimodels "office-admin-backend/models/api/disposition"
	incomingletterapimodels "office-admin-backend/models/api/incoming-letter"
	dbmodels "office-admin-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type incomingLettersApiController struct {
	controllers.BaseAPIController
}

func InitIncomingLettersApiRouters(app *fiber.App) {
	controller := incomingLettersApiController{}
	app.Route("incoming_letters", func(router fiber.Router) {
		router.Post("", controller.register)
		router.Post("list", controller.list)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("archive", controller.archive)
			idRoute.Put("recompute_status", controller.recomputeStatus)
			idRoute.Get("dispositions", controller.tree)
			idRoute.Post("dispose", controller.dispose) // поручение верхнего уровня
			idRoute.Post("forward", controller.forward) // переадресация полученного поручения
			idRoute.Route("attachments", func(fileRoute fiber.Router) {
				fileRoute.Post("", controller.uploadAttachment)
				fileRoute.Get("", controller.listAttachments)
				fileRoute.Get(":file_id", controller.downloadAttachment)
				fileRoute.Delete(":file_id", controller.deleteAttachment)
			})
		})
	})
}

// @Summary Регистрация входящего письма
// @Tags Входящие письма
// @Description Регистрация входящего письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 incomingletterapimodels.RegisterRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters [post]
func (c *incomingLettersApiController) register(ctx *fiber.Ctx) error {
	var payload incomingletterapimodels.RegisterRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := incomingletterhandler.Instance.Register(middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации входящего письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Входящие письма
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 incomingletterapimodels.IncomingLetterFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]incomingletterapimodels.IncomingLetterView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/list [post]
func (c *incomingLettersApiController) list(ctx *fiber.Ctx) error {
	var payload incomingletterapimodels.IncomingLetterFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := incomingletterhandler.Instance.List(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка входящих писем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Входящие письма
// @Description Доступно регистратору, сотрудникам подразделения-адресата и участникам цепочки поручений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=incomingletterapimodels.IncomingLetterView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id} [get]
func (c *incomingLettersApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.checkLetterAccess(ctx, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки доступа к письму")
	}
	resp, err := incomingletterhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения входящего письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary В архив
// @Tags Входящие письма
// @Description В архив передается только исполненное письмо
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/archive [put]
func (c *incomingLettersApiController) archive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = incomingletterhandler.Instance.Archive(id, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка передачи письма в архив")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Пересчитать статус
// @Tags Входящие письма
// @Description Пересчет статуса письма по текущему состоянию поручений
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/recompute_status [put]
func (c *incomingLettersApiController) recomputeStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	status, err := dispositionhandler.Instance.RecomputeLetterStatus(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка пересчета статуса письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(status))
}

// @Summary Дерево поручений
// @Tags Входящие письма
// @Description Дерево поручений по письму
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]dispositionapimodels.TreeNode}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/dispositions [get]
func (c *incomingLettersApiController) tree(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := dispositionhandler.Instance.Tree(id, middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения поручений по письму")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Поручение по письму
// @Tags Входящие письма
// @Description Поручение верхнего уровня, доступно директору и делопроизводителю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dispositionapimodels.ForwardRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dispositionapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/dispose [post]
func (c *incomingLettersApiController) dispose(ctx *fiber.Ctx) error {
	return c.sendForward(ctx, false)
}

// @Summary Переадресация поручения
// @Tags Входящие письма
// @Description Переадресация полученного поручения, parent_disposition_id обязателен
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dispositionapimodels.ForwardRequest	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dispositionapimodels.ResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/forward [post]
func (c *incomingLettersApiController) forward(ctx *fiber.Ctx) error {
	return c.sendForward(ctx, true)
}

func (c *incomingLettersApiController) sendForward(ctx *fiber.Ctx, withParent bool) error {
	letterID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dispositionapimodels.ForwardRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if !withParent {
		payload.ParentDispositionID = nil
	} else if payload.ParentDispositionID == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указано переадресуемое поручение"))
	}
	result, err := dispositionhandler.Instance.Forward(letterID, middleware.GetUserID(ctx), middleware.GetUserRole(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания поручения")
	}
	c.Notify(result.Events)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(dispositionResultView(result)))
}

func (c *incomingLettersApiController) checkLetterAccess(ctx *fiber.Ctx, letterID string) error {
	ok, err := dispositionhandler.Instance.CanAccessLetter(letterID, middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return err
	}
	if !ok {
		return workflowerrors.NewAuthorizationDenied("нет доступа к письму")
	}
	return nil
}

// @Summary Загрузить вложение
// @Tags Входящие письма
// @Description Загрузить скан или приложение к входящему письму
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file		formData	file 	true 	"file to upload"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/attachments [post]
func (c *incomingLettersApiController) uploadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if _, err = incomingletterhandler.Instance.Get(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения входящего письма")
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		c.GetLogger(ctx).WithError(err).Error("Ошибка при получении файла вложения")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()

	fileID, err := filestorage.Instance.Upload(ctx.UserContext(), dbmodels.UploadFileInfo{
		DocumentKind: models.IncomingLetterKind,
		DocumentID:   id,
		FileName:     file.Filename,
		ContentType:  file.Header.Get(fiber.HeaderContentType),
		Size:         file.Size,
		UploadedBy:   middleware.GetUserID(ctx),
	}, buffer)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fileID))
}

// @Summary Список вложений
// @Tags Входящие письма
// @Description Список вложений входящего письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]filesapimodels.FileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/attachments [get]
func (c *incomingLettersApiController) listAttachments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.checkLetterAccess(ctx, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки доступа к письму")
	}
	resp, err := filestorage.Instance.List(models.IncomingLetterKind, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка вложений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачать вложение
// @Tags Входящие письма
// @Description Скачать вложение входящего письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file_id        		path    string  				    	true         "ID вложения"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/attachments/{file_id} [get]
func (c *incomingLettersApiController) downloadAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := c.GetIDByKey(ctx, "file_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = c.checkLetterAccess(ctx, id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка проверки доступа к письму")
	}
	view, body, err := filestorage.Instance.Download(ctx.UserContext(), models.IncomingLetterKind, id, fileID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения вложения")
	}
	ctx.Set(fiber.HeaderContentType, view.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(view.Name)))
	return ctx.SendStream(body, int(view.Size))
}

// @Summary Удалить вложение
// @Tags Входящие письма
// @Description Удалить может загрузивший файл или администратор
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Param   file_id        		path    string  				    	true         "ID вложения"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/incoming_letters/{id}/attachments/{file_id} [delete]
func (c *incomingLettersApiController) deleteAttachment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fileID, err := c.GetIDByKey(ctx, "file_id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = filestorage.Instance.Delete(ctx.UserContext(), models.IncomingLetterKind, id, fileID, middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления вложения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
