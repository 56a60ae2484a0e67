package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
	"github.com/piyushjha0409/DockAI/pkg/errors"
	"github.com/piyushjha0409/DockAI/pkg/types/common"
)

// ObjectAPI is the subset of minio.Client the store uses, with GetObject
// flattened to io.ReadCloser so tests can substitute fakes.
type ObjectAPI interface {
	PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error
}

type minioAPI struct {
	c *minio.Client
}

func (a minioAPI) PutObject(ctx context.Context, bucket, object string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return a.c.PutObject(ctx, bucket, object, r, size, opts)
}

func (a minioAPI) GetObject(ctx context.Context, bucket, object string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return a.c.GetObject(ctx, bucket, object, opts)
}

func (a minioAPI) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	return a.c.RemoveObject(ctx, bucket, object, opts)
}

// UploadStore persists raw upload files under
// <prefix><analysis-id>/<filename>.
type UploadStore struct {
	api    ObjectAPI
	bucket string
	prefix string
	log    logging.Logger
}

// NewUploadStore constructs an UploadStore backed by a live MinIO client.
func NewUploadStore(client *minio.Client, bucket, prefix string, log logging.Logger) *UploadStore {
	return newUploadStore(minioAPI{c: client}, bucket, prefix, log)
}

func newUploadStore(api ObjectAPI, bucket, prefix string, log logging.Logger) *UploadStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &UploadStore{api: api, bucket: bucket, prefix: prefix, log: log.Named("upload-store")}
}

// sanitizeFilename strips directory components and path traversal from a
// client-supplied filename.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

// ObjectKey returns the object key a file of the given analysis is stored
// under.
func (s *UploadStore) ObjectKey(id common.ID, filename string) string {
	return s.prefix + string(id) + "/" + sanitizeFilename(filename)
}

// Put stores one raw upload file and returns its object key.
func (s *UploadStore) Put(ctx context.Context, id common.ID, filename string, data []byte) (string, error) {
	key := s.ObjectKey(id, filename)
	_, err := s.api.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStorageError, "failed to store upload").WithDetail(key)
	}
	s.log.Debug("upload stored", logging.String("key", key), logging.Int("bytes", len(data)))
	return key, nil
}

// Fetch reads back a stored upload by its object key.
func (s *UploadStore) Fetch(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to open stored upload").WithDetail(key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageError, "failed to read stored upload").WithDetail(key)
	}
	return data, nil
}

// Remove deletes a stored upload by its object key.
func (s *UploadStore) Remove(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeStorageError, "failed to remove stored upload").WithDetail(key)
	}
	return nil
}
