package filestorage

import (
	"context"
	"io"
	"office-admin-backend/config"
	"office-admin-backend/db"
	filestore "office-admin-backend/lib/file-storage/store"
	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	filesapimodels "office-admin-backend/models/api/files"
	dbmodels "office-admin-backend/models/db"
	s3client "office-admin-backend/s3"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ObjectStorage хранилище содержимого файлов
type ObjectStorage interface {
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, key string) error
}

type Provider interface {
	Upload(ctx context.Context, info dbmodels.UploadFileInfo, reader io.Reader) (fileID string, err error)
	List(kind models.DocumentKind, documentID string) ([]filesapimodels.FileView, error)
	// Download файл документа, чужой fileID дает NotFound
	Download(ctx context.Context, kind models.DocumentKind, documentID, fileID string) (*filesapimodels.FileView, io.ReadCloser, error)
	// Delete удалить может загрузивший файл или администратор
	Delete(ctx context.Context, kind models.DocumentKind, documentID, fileID, actorID string, role models.UserRole) error
}

var Instance Provider

func NewHandler() {
	var storage ObjectStorage
	if s3client.Instance != nil {
		storage = s3client.Instance
	}
	Instance = NewInstance(filestore.NewInstance(db.DB), storage, int64(config.Conf.S3.MaxFileSizeMb)*1024*1024)
}

// NewInstance storage может быть nil, если S3 не настроен
func NewInstance(store filestore.Provider, storage ObjectStorage, maxSize int64) Provider {
	return impl{
		store:   store,
		storage: storage,
		maxSize: maxSize,
	}
}

type impl struct {
	store   filestore.Provider
	storage ObjectStorage
	maxSize int64
}

func (i impl) getLogger(kind models.DocumentKind, documentID string) *log.Entry {
	return log.
		WithField("document_kind", kind).
		WithField("document_id", documentID)
}

func (i impl) Upload(ctx context.Context, info dbmodels.UploadFileInfo, reader io.Reader) (string, error) {
	if i.storage == nil {
		return "", errors.New("файловое хранилище не настроено")
	}
	name := strings.TrimSpace(info.FileName)
	if name == "" {
		return "", workflowerrors.NewValidation("не указано имя файла")
	}
	if info.Size <= 0 {
		return "", workflowerrors.NewValidation("файл пустой")
	}
	if i.maxSize > 0 && info.Size > i.maxSize {
		return "", workflowerrors.NewValidation("размер файла превышает %v МБ", i.maxSize/1024/1024)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	rec := dbmodels.FileStorage{
		BaseModel:    dbmodels.BaseModel{ID: uuid.NewString()},
		DocumentKind: info.DocumentKind,
		DocumentID:   info.DocumentID,
		Name:         name,
		ContentType:  contentType,
		Size:         info.Size,
		UploadedBy:   info.UploadedBy,
	}
	logger := i.getLogger(info.DocumentKind, info.DocumentID).WithField("file_id", rec.ID)
	err := i.storage.PutObject(ctx, rec.ObjectKey(), reader, info.Size, contentType)
	if err != nil {
		logger.WithError(err).Error("ошибка загрузки файла в хранилище")
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	id, err := i.store.Create(rec)
	if err != nil {
		if rmErr := i.storage.RemoveObject(ctx, rec.ObjectKey()); rmErr != nil {
			logger.WithError(rmErr).Warn("ошибка удаления файла из хранилища")
		}
		return "", errors.Wrap(err, "ошибка сохранения сведений о файле")
	}
	return id, nil
}

func (i impl) List(kind models.DocumentKind, documentID string) ([]filesapimodels.FileView, error) {
	list, err := i.store.ListByDocument(kind, documentID)
	if err != nil {
		return nil, err
	}
	result := make([]filesapimodels.FileView, 0, len(list))
	for _, rec := range list {
		result = append(result, filesapimodels.FileConvert(rec))
	}
	return result, nil
}

func (i impl) Download(ctx context.Context, kind models.DocumentKind, documentID, fileID string) (*filesapimodels.FileView, io.ReadCloser, error) {
	if i.storage == nil {
		return nil, nil, errors.New("файловое хранилище не настроено")
	}
	rec, err := i.getDocumentFile(kind, documentID, fileID)
	if err != nil {
		return nil, nil, err
	}
	body, err := i.storage.GetObject(ctx, rec.ObjectKey())
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	view := filesapimodels.FileConvert(*rec)
	return &view, body, nil
}

func (i impl) Delete(ctx context.Context, kind models.DocumentKind, documentID, fileID, actorID string, role models.UserRole) error {
	if i.storage == nil {
		return errors.New("файловое хранилище не настроено")
	}
	rec, err := i.getDocumentFile(kind, documentID, fileID)
	if err != nil {
		return err
	}
	if rec.UploadedBy != actorID && !role.IsAdmin() {
		return workflowerrors.NewAuthorizationDenied("удалить файл может только загрузивший его пользователь")
	}
	if err = i.store.Delete(rec.ID); err != nil {
		return errors.Wrap(err, "ошибка удаления сведений о файле")
	}
	if err = i.storage.RemoveObject(ctx, rec.ObjectKey()); err != nil {
		i.getLogger(kind, documentID).
			WithField("file_id", rec.ID).
			WithError(err).
			Warn("ошибка удаления файла из хранилища")
	}
	return nil
}

func (i impl) getDocumentFile(kind models.DocumentKind, documentID, fileID string) (*dbmodels.FileStorage, error) {
	rec, err := i.store.GetByID(fileID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения сведений о файле")
	}
	if rec == nil || rec.DocumentKind != kind || rec.DocumentID != documentID {
		return nil, workflowerrors.NewNotFound("файл не найден")
	}
	return rec, nil
}
