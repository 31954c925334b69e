package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"hotelbooking/config"
	"hotelbooking/infras/otel"
	"hotelbooking/shared/constant"

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
	defaultRegion     = "auto"
)

type S3 interface {
	UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error)
	DeleteFile(ctx context.Context, url string) error
	ObjectKeyFromURL(url string) (objectKey string)
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

// UploadFile stores the file under directory with a generated name and returns its public URL.
func (svc *s3Impl) UploadFile(ctx context.Context, directory string, file multipart.File, fileHeader *multipart.FileHeader) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bucket := svc.config.External.S3.BucketName
	objectKey := path.Join(directory, uuid.NewString()+strings.ToLower(filepath.Ext(fileHeader.Filename)))

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind file: %w", err)
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(objectKey),
		Body:          file,
		ContentType:   aws.String(fileHeader.Header.Get(constant.RequestHeaderContentType)),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/") + "/" + objectKey, nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, url string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.ObjectKeyFromURL(url)
	if objectKey == constant.Empty {
		return fmt.Errorf("url %q does not belong to bucket", url)
	}

	bucket := svc.config.External.S3.BucketName

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// ObjectKeyFromURL accepts URLs on the public domain or the path-style API endpoint.
func (svc *s3Impl) ObjectKeyFromURL(url string) string {
	return ObjectKeyFromURL(svc.config, url)
}

func ObjectKeyFromURL(cfg *config.Config, url string) string {
	s3Cfg := cfg.External.S3

	prefixes := []string{}
	if s3Cfg.PublicDomain != "" {
		prefixes = append(prefixes, strings.TrimSuffix(s3Cfg.PublicDomain, "/")+"/")
	}

	if s3Cfg.APIEndpoint != "" {
		prefixes = append(prefixes, fmt.Sprintf("%s/%s/", strings.TrimSuffix(s3Cfg.APIEndpoint, "/"), s3Cfg.BucketName))
	}

	for _, prefix := range prefixes {
		if key, found := strings.CutPrefix(url, prefix); found && key != "" {
			return key
		}
	}

	return constant.Empty
}

func New(config *config.Config, otel otel.Otel) S3 {
	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		constant.Empty,
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(defaultRegion),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.External.S3.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(config.External.S3.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		config: config,
		otel:   otel,
	}
}
