// utils/archive.go
package utils

import (
	"bytes"
	"context"
	"fmt"

	appconfig "progression-service/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveClient uploads progression snapshot exports to an R2/S3 bucket for
// audit and backup. The blob store in Postgres stays authoritative; the
// archive is write-only from the service's point of view.
type ArchiveClient struct {
	client *s3.Client
	bucket string
}

// NewArchiveClient builds an R2-pointed S3 client from the service config.
func NewArchiveClient(cfg *appconfig.Config) (*ArchiveClient, error) {
	if cfg.R2BucketName == "" {
		return nil, fmt.Errorf("R2_BUCKET_NAME not configured")
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2AccessKeyID, cfg.R2AccessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.CloudflareAccountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return &ArchiveClient{client: s3.NewFromConfig(awsCfg), bucket: cfg.R2BucketName}, nil
}

// Upload stores one snapshot document under the given object key.
func (a *ArchiveClient) Upload(ctx context.Context, key string, data []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot to R2: %w", err)
	}
	return nil
}
