package dbmodels

import (
	"fmt"
	"office-admin-backend/models"
)

// FileStorage метаданные вложения, содержимое хранится в S3 по ObjectKey
type FileStorage struct {
	BaseModel
	DocumentKind models.DocumentKind `gorm:"type:varchar(50);index:idx_file_document"`
	DocumentID   string              `gorm:"type:varchar(36);index:idx_file_document"`
	Name         string              `gorm:"type:varchar(255)"`
	ContentType  string              `gorm:"type:varchar(255)"`
	Size         int64
	UploadedBy   string `gorm:"type:varchar(36)"`
}

func (f FileStorage) ObjectKey() string {
	return fmt.Sprintf("%s/%s/%s", f.DocumentKind, f.DocumentID, f.ID)
}

type UploadFileInfo struct {
	DocumentKind models.DocumentKind
	DocumentID   string
	FileName     string
	ContentType  string
	Size         int64
	UploadedBy   string
}
