package initializers

import (
	"context"
	"office-admin-backend/config"
	"office-admin-backend/fiberlog"
	approvalengine "office-admin-backend/lib/approval-engine"
	attendancehandler "office-admin-backend/lib/attendance"
	dispositionhandler "office-admin-backend/lib/disposition"
	dispositiondeadlineworker "office-admin-backend/lib/disposition/deadline-worker"
	earlyleavehandler "office-admin-backend/lib/early-leave"
	filestorage "office-admin-backend/lib/file-storage"
	incomingletterhandler "office-admin-backend/lib/incoming-letter"
	letterhandler "office-admin-backend/lib/letter"
	notificationhandler "office-admin-backend/lib/notification"
	orghandler "office-admin-backend/lib/org"
	outgoingletterhandler "office-admin-backend/lib/outgoing-letter"
	"office-admin-backend/lib/rbac"
	usershandler "office-admin-backend/lib/users"
	connectionhub "office-admin-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

// InitAllServices порядок важен: обработчики проверяют свои зависимости через initchecker
func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	rbac.NewHandler()
	filestorage.NewHandler()
	notificationhandler.NewHandler()
	usershandler.NewHandler()
	orghandler.NewHandler()
	attendancehandler.NewHandler()
	approvalengine.NewHandler()
	letterhandler.NewHandler()
	outgoingletterhandler.NewHandler()
	incomingletterhandler.NewHandler()
	dispositionhandler.NewHandler()
	earlyleavehandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача уведомления исполнителей о просроченных диспозициях
	dispositiondeadlineworker.StartWorker(ctx)
}
