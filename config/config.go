package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"office-admin" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"secret" env:"JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Admin struct {
		Email     string `default:"" env:"ADMIN_EMAIL"`
		Password  string `default:"" env:"ADMIN_PASSWORD"`
		FirstName string `default:"Администратор" env:"ADMIN_FIRST_NAME"`
		LastName  string `default:"" env:"ADMIN_LAST_NAME"`
	}
	Workflow struct {
		// максимальная глубина цепочки диспозиций
		MaxDispositionDepth    int `default:"32" env:"WORKFLOW_MAX_DISPOSITION_DEPTH"`
		DeadlineCheckPeriodMin int `default:"15" env:"WORKFLOW_DEADLINE_CHECK_PERIOD_MIN"`
	}
	S3 struct {
		Endpoint        string `default:"" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"office-admin" env:"S3_BUCKET_NAME"`
		MaxFileSizeMb   int    `default:"20" env:"S3_MAX_FILE_SIZE_MB"`
	}
	Smtp struct {
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"587" env:"SMTP_PORT"`
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		From       string `default:"" env:"SMTP_FROM"`
		TLSEnabled *bool  `default:"false" env:"SMTP_TLS_ENABLED"`
	}
	Notification struct {
		// дублировать уведомления на почту получателя
		EmailEnabled *bool `default:"false" env:"NOTIFICATION_EMAIL_ENABLED"`
		// адрес фронтенда для ссылок в письмах
		FrontendURL string `default:"" env:"NOTIFICATION_FRONTEND_URL"`
	}
	Attendance struct {
		WorkStart string `default:"08:00" env:"ATTENDANCE_WORK_START"`
		WorkEnd   string `default:"17:00" env:"ATTENDANCE_WORK_END"`
		Timezone  string `default:"Europe/Moscow" env:"ATTENDANCE_TIMEZONE"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
