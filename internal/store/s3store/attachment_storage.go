// Package s3store implements attachment URL issuance against S3.
package s3store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignAPI is the subset of the S3 presign client used here.
// Declared so tests can substitute a fake for *s3.PresignClient.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// AttachmentStorage issues presigned upload URLs and stable retrieval
// URLs for attachment identifiers kept in a single S3 bucket.
type AttachmentStorage struct {
	presigner    PresignAPI
	bucket       string
	region       string
	uploadExpiry time.Duration
}

// NewAttachmentStorage creates a new S3-backed attachment storage instance.
func NewAttachmentStorage(presigner PresignAPI, bucket, region string, uploadExpiry time.Duration) *AttachmentStorage {
	return &AttachmentStorage{
		presigner:    presigner,
		bucket:       bucket,
		region:       region,
		uploadExpiry: uploadExpiry,
	}
}

// GenerateUploadURL returns a presigned PUT URL for the attachment,
// valid for the configured expiry.
func (s *AttachmentStorage) GenerateUploadURL(ctx context.Context, attachmentID string) (string, error) {
	result, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(attachmentID),
	}, s3.WithPresignExpires(s.uploadExpiry))
	if err != nil {
		return "", fmt.Errorf("presign upload for attachment %s: %w", attachmentID, err)
	}
	return result.URL, nil
}

// ObjectURL returns the stable retrieval URL for an attachment. The
// object becomes readable once the client completes its upload.
func (s *AttachmentStorage) ObjectURL(attachmentID string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, attachmentID)
}
