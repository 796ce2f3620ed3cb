package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	appconfig "github.com/GoArmGo/ShopApp/internal/config"
)

// Префикс ключей изображений товаров в бакете.
const keyPrefix = "product-images/"

// Client реализует ports.FileStorage поверх MinIO (S3-совместимого хранилища).
// Выбирается конфигурацией STORAGE_BACKEND=s3.
type Client struct {
	s3Client   *s3.Client
	uploader   *manager.Uploader
	bucketName string
	endpoint   string
	logger     *slog.Logger
}

// NewClient создает и инициализирует новый S3/MinIO клиент,
// используя переданную конфигурацию.
func NewClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, cfg.MinioEndpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.MinioAccessKeyID, cfg.MinioSecretAccessKey, "")),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:    endpointURL,
					Source: aws.EndpointSourceCustom,
				}, nil
			})),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for MinIO: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	uploader := manager.NewUploader(s3Client)

	// Проверяем существование бакета, создаем при отсутствии
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(cfg.MinioBucketName),
	})
	if err != nil {
		logger.Info("bucket not found, creating", "bucket", cfg.MinioBucketName)

		_, createErr := s3Client.CreateBucket(context.TODO(), &s3.CreateBucketInput{
			Bucket: aws.String(cfg.MinioBucketName),
			// Для MinIO может потребоваться явное указание региона
			CreateBucketConfiguration: &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(cfg.MinioRegion),
			},
		})
		if createErr != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.MinioBucketName, createErr)
		}

		waiter := s3.NewBucketExistsWaiter(s3Client)
		if err := waiter.Wait(context.TODO(), &s3.HeadBucketInput{
			Bucket: aws.String(cfg.MinioBucketName),
		}, 30*time.Second); err != nil {
			return nil, fmt.Errorf("failed waiting for bucket '%s' to be created: %w", cfg.MinioBucketName, err)
		}

		logger.Info("bucket created successfully", "bucket", cfg.MinioBucketName)
	}

	return &Client{
		s3Client:   s3Client,
		uploader:   uploader,
		bucketName: cfg.MinioBucketName,
		endpoint:   endpointURL,
		logger:     logger,
	}, nil
}

// SaveUpload загружает файл в бакет под случайным ключом,
// сохраняя расширение оригинала, и возвращает URL объекта.
func (c *Client) SaveUpload(ctx context.Context, originalName string, reader io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	objectKey := keyPrefix + uuid.New().String() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	out, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file %s to bucket %s: %w", objectKey, c.bucketName, err)
	}

	c.logger.Info("image uploaded to bucket", "key", objectKey, "location", out.Location)
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, objectKey), nil
}

// Delete удаляет объект из бакета по его URL
func (c *Client) Delete(ctx context.Context, imageURL string) error {
	prefix := fmt.Sprintf("%s/%s/", c.endpoint, c.bucketName)
	objectKey := strings.TrimPrefix(imageURL, prefix)
	if objectKey == "" || objectKey == imageURL {
		// URL не из нашего бакета, удалять нечего
		return nil
	}

	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s from bucket %s: %w", objectKey, c.bucketName, err)
	}

	c.logger.Info("image deleted from bucket", "key", objectKey)
	return nil
}
