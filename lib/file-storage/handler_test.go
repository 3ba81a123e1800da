package filestorage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	workflowerrors "office-admin-backend/lib/utils/workflow-errors"
	"office-admin-backend/models"
	dbmodels "office-admin-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	files   map[string]dbmodels.FileStorage
	failAdd bool
}

func (f *fakeStore) Create(rec dbmodels.FileStorage) (string, error) {
	if f.failAdd {
		return "", errors.New("connection refused")
	}
	f.files[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.FileStorage, error) {
	rec, ok := f.files[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeStore) ListByDocument(kind models.DocumentKind, documentID string) ([]dbmodels.FileStorage, error) {
	list := []dbmodels.FileStorage{}
	for _, rec := range f.files {
		if rec.DocumentKind == kind && rec.DocumentID == documentID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (f *fakeStore) Delete(id string) error {
	delete(f.files, id)
	return nil
}

type fakeStorage struct {
	objects map[string][]byte
}

func (f *fakeStorage) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	body, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.objects[key] = body
	return nil
}

func (f *fakeStorage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (f *fakeStorage) RemoveObject(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func uploadInfo(name, content string) dbmodels.UploadFileInfo {
	return dbmodels.UploadFileInfo{
		DocumentKind: models.IncomingLetterKind,
		DocumentID:   "letter-1",
		FileName:     name,
		Size:         int64(len(content)),
		UploadedBy:   "registrar",
	}
}

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{files: map[string]dbmodels.FileStorage{}}
	storage := &fakeStorage{objects: map[string][]byte{}}
	handler := NewInstance(store, storage, 16)

	fileID, err := handler.Upload(ctx, uploadInfo("скан.pdf", "pdf-content"), strings.NewReader("pdf-content"))
	require.NoError(t, err)
	require.Len(t, storage.objects, 1)
	require.Equal(t, "application/octet-stream", store.files[fileID].ContentType)

	t.Run("validation", func(t *testing.T) {
		_, err := handler.Upload(ctx, uploadInfo(" ", "x"), strings.NewReader("x"))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
		_, err = handler.Upload(ctx, uploadInfo("empty.txt", ""), strings.NewReader(""))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
		big := strings.Repeat("x", 17)
		_, err = handler.Upload(ctx, uploadInfo("big.txt", big), strings.NewReader(big))
		require.True(t, workflowerrors.IsKind(err, workflowerrors.Validation))
	})
	t.Run("list and download", func(t *testing.T) {
		list, err := handler.List(models.IncomingLetterKind, "letter-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "скан.pdf", list[0].Name)

		view, body, err := handler.Download(ctx, models.IncomingLetterKind, "letter-1", fileID)
		require.NoError(t, err)
		defer body.Close()
		content, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "pdf-content", string(content))
		require.Equal(t, int64(11), view.Size)
	})
	t.Run("file of another document", func(t *testing.T) {
		_, _, err := handler.Download(ctx, models.IncomingLetterKind, "letter-2", fileID)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.NotFound))
	})
	t.Run("metadata failure removes object", func(t *testing.T) {
		store.failAdd = true
		defer func() { store.failAdd = false }()
		_, err := handler.Upload(ctx, uploadInfo("second.pdf", "second"), strings.NewReader("second"))
		require.Error(t, err)
		require.Len(t, storage.objects, 1)
	})
	t.Run("delete", func(t *testing.T) {
		err := handler.Delete(ctx, models.IncomingLetterKind, "letter-1", fileID, "stranger", models.StaffRole)
		require.True(t, workflowerrors.IsKind(err, workflowerrors.AuthorizationDenied))

		require.NoError(t, handler.Delete(ctx, models.IncomingLetterKind, "letter-1", fileID, "registrar", models.RegistrarRole))
		require.Empty(t, storage.objects)
		require.Empty(t, store.files)
	})
	t.Run("storage not configured", func(t *testing.T) {
		_, err := NewInstance(store, nil, 16).Upload(ctx, uploadInfo("a.txt", "a"), strings.NewReader("a"))
		require.Error(t, err)
		_, ok := workflowerrors.KindOf(err)
		require.False(t, ok)
	})
}
