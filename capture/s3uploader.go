package capture

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AWSUploader implements S3Uploader against a real S3 bucket (or any
// S3-compatible endpoint reachable through the default AWS config
// chain — environment variables, shared config file, or an assumed
// role).
type AWSUploader struct {
	client *s3.Client
}

// NewAWSUploader loads the default AWS configuration and returns an
// uploader bound to it.
func NewAWSUploader(ctx context.Context) (*AWSUploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &AWSUploader{client: s3.NewFromConfig(cfg)}, nil
}

// NewAWSUploaderWithStaticCredentials builds an uploader against a
// fixed access key pair instead of the ambient credential chain, for
// self-hosted S3-compatible archival targets (e.g. MinIO) that don't
// participate in the AWS environment/shared-config/role chain.
func NewAWSUploaderWithStaticCredentials(ctx context.Context, accessKeyID, secretAccessKey string) (*AWSUploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &AWSUploader{client: s3.NewFromConfig(cfg)}, nil
}

// PutObject uploads body to bucket/key.
func (u *AWSUploader) PutObject(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("s3 put object s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
