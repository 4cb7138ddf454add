package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

const (
	mimePrefixImage = "image/"
	sniffLen        = 3072
)

var (
	ErrFileNotSupported = errors.New("only image files can be uploaded")
	ErrEmptyFile        = errors.New("file is empty")
	ErrFileTooLarge     = errors.New("file exceeds the upload size limit")
)

// Upload 待上传的文件
type Upload struct {
	Name   string
	Reader io.Reader
	Size   int64
}

// AssetStore 资源存储，上传返回可公开访问的 URL
type AssetStore interface {
	Upload(ctx context.Context, file Upload) (string, error)
	Remove(ctx context.Context, url string) error
}

// Store 基于单个共享存储桶的 AssetStore
type Store struct {
	client     *minio.Client
	bucket     string
	publicBase string
	maxBytes   int64
}

// NewStore maxBytes <= 0 表示不限制大小
func NewStore(client *minio.Client, bucket, publicBase string, maxBytes int64) *Store {
	return &Store{client: client, bucket: bucket, publicBase: publicBase, maxBytes: maxBytes}
}

// Upload 上传文件到MinIO
func (s *Store) Upload(ctx context.Context, file Upload) (string, error) {
	if file.Reader == nil || file.Size == 0 {
		return "", ErrEmptyFile
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	head = head[:n]
	if n == 0 {
		return "", ErrEmptyFile
	}

	contentType := mimetype.Detect(head).String()
	if !strings.HasPrefix(contentType, mimePrefixImage) {
		return "", ErrFileNotSupported
	}

	key := ObjectKey(file.Name, time.Now())
	size := file.Size
	if size <= 0 {
		size = -1
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, io.MultiReader(bytes.NewReader(head), file.Reader), size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	log.InfoContext(ctx, "asset uploaded", "key", key, "mime", contentType)
	return s.PublicURL(key), nil
}

// Remove 根据公开 URL 删除对象，无法从 URL 解析出 key 时直接跳过
func (s *Store) Remove(ctx context.Context, url string) error {
	key, ok := KeyFromURL(url, s.bucket)
	if !ok {
		log.DebugContext(ctx, "asset url outside bucket, skip removal", "url", url)
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// List 列出桶内全部对象 key
func (s *Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// Bucket 返回存储桶名称
func (s *Store) Bucket() string {
	return s.bucket
}

// PublicURL 获取文件的公共访问URL
func (s *Store) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBase, s.bucket, key)
}

// ObjectKey 生成 日期前缀 + uuid + 原扩展名 形式的对象 key，并发上传互不冲突
func ObjectKey(fileName string, now time.Time) string {
	ext := strings.ToLower(path.Ext(fileName))
	return now.Format("2006/01/02/") + uuid.NewString() + ext
}

// KeyFromURL 取出 URL 中 "<bucket>/" 之后的部分作为对象 key
func KeyFromURL(url, bucket string) (string, bool) {
	marker := bucket + "/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", false
	}
	key := url[idx+len(marker):]
	if q := strings.IndexAny(key, "?#"); q >= 0 {
		key = key[:q]
	}
	if key == "" {
		return "", false
	}
	return key, true
}
