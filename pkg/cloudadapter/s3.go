package cloudadapter

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service is the subset of the S3 API the orchestrator needs: the
// control group's shared bucket is where userdata and certificate material
// for every descendant jurisdiction is staged.
type S3Service interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error)
}

type s3Service struct {
	svc *s3.Client
}

func NewS3Service(cfg aws.Config) S3Service {
	return &s3Service{svc: s3.NewFromConfig(cfg)}
}

func (c *s3Service) PutObject(ctx context.Context, input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	return c.svc.PutObject(ctx, input)
}

func (c *s3Service) GetObject(ctx context.Context, input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	return c.svc.GetObject(ctx, input)
}

func (c *s3Service) DeleteObject(ctx context.Context, input *s3.DeleteObjectInput) (*s3.DeleteObjectOutput, error) {
	return c.svc.DeleteObject(ctx, input)
}

func (c *s3Service) ListObjectsV2(ctx context.Context, input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	return c.svc.ListObjectsV2(ctx, input)
}

// PutBytes is the convenience call the orchestrator actually uses: upload a
// rendered document to bucket/key.
func PutBytes(ctx context.Context, svc S3Service, bucket, key string, body []byte) error {
	_, err := svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	return err
}
