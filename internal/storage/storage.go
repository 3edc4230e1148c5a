// Package storage persists uploaded files (payment proofs, complaint photos,
// identity documents) on local disk or an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appconfig "pg-backend/internal/config"
	"pg-backend/internal/timeutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// FileStore saves an uploaded file under a category prefix and returns the
// URL it will be served from.
type FileStore interface {
	Save(ctx context.Context, category, filename string, data io.Reader) (string, error)
}

// New picks the backend from config: S3 when configured, local disk otherwise
func New(cfg *appconfig.Config) (FileStore, error) {
	if cfg.Upload.Backend == "s3" {
		return NewS3Store(cfg)
	}
	return NewLocalStore(cfg.Upload.Dir)
}

// uniqueName prefixes the cleaned filename with a timestamp so repeat uploads
// never collide.
func uniqueName(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d_%s", timeutil.Now().UnixNano(), base)
}

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, category, filename string, data io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.dir, category), 0o755); err != nil {
		return "", err
	}

	name := uniqueName(filename)
	path := filepath.Join(s.dir, category, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		os.Remove(path)
		return "", err
	}

	return "/uploads/" + category + "/" + name, nil
}

type S3Store struct {
	client *s3.Client
	bucket string
	base   string
}

func NewS3Store(cfg *appconfig.Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Upload.S3.AccessKey,
			cfg.Upload.S3.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Upload.S3.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Upload.S3.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Upload.S3.Endpoint)
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Upload.S3.Bucket,
		base:   strings.TrimSuffix(cfg.Upload.S3.Endpoint, "/"),
	}, nil
}

func (s *S3Store) Save(ctx context.Context, category, filename string, data io.Reader) (string, error) {
	key := category + "/" + uniqueName(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   data,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.base, s.bucket, key), nil
}
