package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Config S3（或兼容服务）连接参数
type S3Config struct {
	Region    string
	Endpoint  string // 兼容服务才需要
	AccessKey string
	SecretKey string
	// Prefix 对象 key 前缀，同一个物理 bucket 下区分分区
	Prefix        string
	PublicURL     string
	SSEEncryption string
}

// S3Bucket S3 上的一个分区
type S3Bucket struct {
	name     string
	bucket   string
	cfg      S3Config
	s3Client *s3.S3
	uploader *s3manager.Uploader
}

func NewS3Bucket(name, bucket string, cfg S3Config) (*S3Bucket, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	client := s3.New(sess)
	if cfg.PublicURL == "" {
		cfg.PublicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, cfg.Region)
	}
	return &S3Bucket{
		name:     name,
		bucket:   bucket,
		cfg:      cfg,
		s3Client: client,
		uploader: s3manager.NewUploaderWithClient(client),
	}, nil
}

func (s *S3Bucket) Name() string { return s.name }

func (s *S3Bucket) remotePath(key string) string {
	if s.cfg.Prefix == "" {
		return key
	}
	return joinURL(s.cfg.Prefix, key)
}

func (s *S3Bucket) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	input := s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.remotePath(key)),
		ContentType: aws.String(contentType),
		Body:        r,
	}
	if s.cfg.SSEEncryption != "" {
		input.ServerSideEncryption = aws.String(s.cfg.SSEEncryption)
	}
	if _, err := s.uploader.UploadWithContext(ctx, &input); err != nil {
		return "", fmt.Errorf("failed to upload to s3: %w", err)
	}
	return joinURL(s.cfg.PublicURL, s.remotePath(key)), nil
}

func (s *S3Bucket) Delete(ctx context.Context, key string) error {
	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.remotePath(key)),
	})
	return err
}
