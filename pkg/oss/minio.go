package oss

import (
	"context"
	"fmt"
	"strings"

	"VideoTube.com/config"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const location = "us-east-1" // MinIO默认区域

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// 每个目录允许的媒体类型前缀
var folderTypes = map[string]string{
	FolderVideo:     "video/",
	FolderThumbnail: "image/",
	FolderAvatar:    "image/",
	FolderCover:     "image/",
}

type MinioHost struct {
	client    *minio.Client
	bucket    string
	publicURL string
	probe     func(path string) (float64, error)
}

var _ MediaHost = (*MinioHost)(nil)

func NewMinioHost(ctx context.Context, c *config.Config) (*MinioHost, error) {
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", c.Minio.Endpoint, c.Minio.AccessKey)
	client, err := minio.New(c.Minio.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.Minio.AccessKey, c.Minio.SecretKey, ""),
		Secure: c.Minio.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client failed")
	}

	publicURL := c.Minio.PublicURL
	if publicURL == "" {
		scheme := "http"
		if c.Minio.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + c.Minio.Endpoint
	}
	m := &MinioHost{
		client:    client,
		bucket:    c.Minio.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		probe:     utils.ProbeDuration,
	}
	if err = m.ensureBucket(ctx); err != nil {
		return nil, err
	}
	hlog.Info("Connect Minio Success")
	return m, nil
}

// 检查存储桶是否存在，不存在则创建并设置为公共可读
func (m *MinioHost) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket error")
	}
	if exists {
		return nil
	}
	if err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return errors.Wrap(err, "create bucket error")
	}
	if err = m.client.SetBucketPolicy(ctx, m.bucket, fmt.Sprintf(publicReadPolicy, m.bucket)); err != nil {
		return errors.Wrap(err, "set bucket policy error")
	}
	return nil
}

func (m *MinioHost) Upload(ctx context.Context, localPath, folder string) (res *UploadResult, err error) {
	defer Cleanup(localPath)
	defer func() {
		metrics.MediaUploadsTotal.WithLabelValues(folder, metrics.Result(err)).Inc()
	}()

	mt, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, errno.ParamErr.WithMessage("cannot read uploaded file")
	}
	if prefix, ok := folderTypes[folder]; ok && !strings.HasPrefix(mt.String(), prefix) {
		return nil, errno.ParamErr.WithMessage(fmt.Sprintf("unsupported media type %s for %s", mt.String(), folder))
	}

	res = &UploadResult{
		PublicID:    uuid.NewString(),
		ContentType: mt.String(),
	}
	if strings.HasPrefix(mt.String(), "video/") && m.probe != nil {
		if res.Duration, err = m.probe(localPath); err != nil {
			hlog.CtxWarnf(ctx, "probe duration of %s failed: %v", localPath, err)
		}
	}

	objectName := folder + "/" + res.PublicID + mt.Extension()
	if _, err = m.client.FPutObject(ctx, m.bucket, objectName, localPath, minio.PutObjectOptions{ContentType: mt.String()}); err != nil {
		hlog.CtxErrorf(ctx, "upload %s to minio failed: %v", objectName, err)
		return nil, errno.DependencyErr.WithMessage("media upload failed")
	}
	res.URL = fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
	return res, nil
}

func (m *MinioHost) Delete(ctx context.Context, assetURL string) error {
	objectName, ok := m.objectName(assetURL)
	if !ok {
		return errno.ParamErr.WithMessage("asset does not belong to this media host")
	}
	if err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		hlog.CtxErrorf(ctx, "remove %s from minio failed: %v", objectName, err)
		return errno.DependencyErr.WithMessage("media delete failed")
	}
	return nil
}

// objectName 由URL还原对象名
func (m *MinioHost) objectName(assetURL string) (string, bool) {
	prefix := m.publicURL + "/" + m.bucket + "/"
	if !strings.HasPrefix(assetURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(assetURL, prefix)
	return name, name != ""
}
