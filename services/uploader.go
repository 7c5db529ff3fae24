package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/config"
	"github.com/vho0811/blogpost-backend/errs"
)

// allowed featured-image content types
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageUploader stores featured images in S3 and hands back a public URL
// suitable for a post's featured_image_url field.
type ImageUploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewImageUploader builds an uploader from S3_BUCKET, S3_REGION and the
// optional S3_PUBLIC_BASE_URL override. Returns nil without error when no
// bucket is configured; the upload endpoint is then disabled.
func NewImageUploader(ctx context.Context, cfg map[string]string) (*ImageUploader, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, nil
	}

	region := config.GetString(cfg, "S3_REGION", "us-east-1")
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	publicBaseURL := config.GetString(cfg, "S3_PUBLIC_BASE_URL", "")
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &ImageUploader{
		client:        s3.NewFromConfig(awsCfg),
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// UploadImage stores the image under a collision-free key and returns its
// public URL. The content type must be one of the allowed image types.
func (u *ImageUploader) UploadImage(ctx context.Context, body io.Reader, contentType string) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", errs.NewInvalidFieldError("file", fmt.Sprintf("unsupported image type %q", contentType))
	}

	key := path.Join("featured-images",
		time.Now().UTC().Format("2006/01"),
		uuid.New().String()+ext)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", u.bucket).Str("key", key).Msg("Failed to upload image")
		return "", errs.NewUploadFailedError(err)
	}

	return u.publicBaseURL + "/" + key, nil
}
