package s3client

import (
	"context"
	"io"
	"office-admin-backend/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

type Provider interface {
	MakeBucket(ctx context.Context) error
	PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, key string) error
}

// Instance nil, если S3 не настроен
var Instance Provider

type s3client struct {
	minioClient *minio.Client
	bucketName  string
}

func NewClient() (Provider, error) {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &s3client{
		minioClient: minioClient,
		bucketName:  config.Conf.S3.BucketName,
	}, nil
}

func (s s3client) MakeBucket(ctx context.Context) error {
	location := "us-east-1"
	exists, err := s.minioClient.BucketExists(ctx, s.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.minioClient.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{Region: location})
}

func (s s3client) PutObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.minioClient.PutObject(ctx, s.bucketName, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s s3client) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.minioClient.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject ленивый, отсутствие объекта видно только после Stat
	if _, err = obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, errors.Wrap(err, "объект не найден в хранилище")
	}
	return obj, nil
}

func (s s3client) RemoveObject(ctx context.Context, key string) error {
	return s.minioClient.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
}
