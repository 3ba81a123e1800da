package ws

import (
	notificationhandler "office-admin-backend/lib/notification"
	wsclient "office-admin-backend/lib/ws/client"
	connectionhub "office-admin-backend/lib/ws/hub/connection-hub"
	"office-admin-backend/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(notificationsHandler))
}

// @Summary Уведомления в реальном времени
// @Tags Websocket Уведомления
// @Description Новые уведомления и количество непрочитанных
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func notificationsHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		return
	}
	client := wsclient.NewClient(userID, c, notificationhandler.Instance, connectionhub.Instance)
	sessionID := connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID, sessionID)
	}()
	client.Dispatch()
}
