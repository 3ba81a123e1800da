package filesapimodels

import (
	dbmodels "office-admin-backend/models/db"
	"time"
)

type FileView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func FileConvert(rec dbmodels.FileStorage) FileView {
	return FileView{
		ID:          rec.ID,
		Name:        rec.Name,
		ContentType: rec.ContentType,
		Size:        rec.Size,
		UploadedBy:  rec.UploadedBy,
		CreatedAt:   rec.CreatedAt,
	}
}
