package storage

import (
	"context"
	"time"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/util/log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type IObjectStorage interface {
	// PresignPut 生成上传用的加签url
	PresignPut(ctx context.Context, key string) (string, error)
}

type S3Storage struct {
	client *s3.S3
	bucket string
	expire time.Duration
}

// NewS3Storage 未配置 bucket 时返回的实例拒绝所有请求
func NewS3Storage(config *config.Config) *S3Storage {
	c := config.S3
	if c.Bucket == "" {
		log.Info("NewS3Storage bucket not configured, uploads disabled")
		return &S3Storage{}
	}
	awsConf := aws.NewConfig().WithRegion(c.Region)
	if c.Endpoint != "" {
		awsConf = awsConf.WithEndpoint(c.Endpoint).WithS3ForcePathStyle(true)
	}
	if c.AccessKeyID != "" {
		awsConf = awsConf.WithCredentials(credentials.NewStaticCredentials(c.AccessKeyID, c.SecretAccessKey, ""))
	}
	sess := session.Must(session.NewSession(awsConf))
	return &S3Storage{
		client: s3.New(sess),
		bucket: c.Bucket,
		expire: time.Duration(c.PresignExpire) * time.Second,
	}
}

func (s *S3Storage) PresignPut(ctx context.Context, key string) (string, error) {
	if s.client == nil {
		return "", consts.ErrUploadNotConfigured
	}
	req, _ := s.client.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	req.SetContext(ctx)
	url, err := req.Presign(s.expire)
	if err != nil {
		log.CtxError(ctx, "presign %s failed: %v", key, err)
		return "", err
	}
	return url, nil
}
