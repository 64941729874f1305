package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"dipsport/config"
	"dipsport/infras/otel"
	"dipsport/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
)

// S3 stores venue images in a single bucket and serves them from the public domain.
type S3 interface {
	Upload(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error)
	UploadBytes(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
	Remove(ctx context.Context, url string) error
	ObjectKey(url string) string
}

type s3Impl struct {
	client *s3.Client
	bucket string
	domain string
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		cfg.External.S3.AccessKeyID,
		cfg.External.S3.SecretAccessKey,
		"",
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.External.S3.APIEndpoint)
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &s3Impl{
		client: client,
		bucket: cfg.External.S3.BucketName,
		domain: strings.TrimSuffix(cfg.External.S3.PublicDomain, "/"),
		otel:   otel,
	}
}

// Upload stores the file under directory with a random name that keeps the original extension.
func (svc *s3Impl) Upload(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	data, err := io.ReadAll(file)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get(constant.RequestHeaderContentType)

	return svc.put(ctx, path.Join(directory, fileName), contentType, data)
}

func (svc *s3Impl) UploadBytes(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadBytes")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return svc.put(ctx, path.Join(directory, fileName), contentType, data)
}

// Remove deletes the object behind url. URLs outside the bucket's public domain are ignored.
func (svc *s3Impl) Remove(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := svc.ObjectKey(url)
	if key == constant.Empty {
		return nil
	}

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

func (svc *s3Impl) ObjectKey(url string) string {
	if svc.domain == constant.Empty {
		return constant.Empty
	}

	key, found := strings.CutPrefix(url, svc.domain+"/")
	if !found {
		return constant.Empty
	}

	return key
}

func (svc *s3Impl) put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".put")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.bucket,
	})

	_, err := svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", svc.domain, key), nil
}
