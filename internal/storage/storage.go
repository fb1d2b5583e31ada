package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// Uploader puts a file into object storage and returns its public URL under
// the raw storage domain. Callers pass the result through a Rewriter before
// it is ever persisted or served.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Config drives the S3-compatible object store connection. PublicBaseURL is
// the URL prefix uploaded objects become reachable under.
type Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional, for S3-compatible providers
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type ObjectStore struct {
	client  *s3.Client
	bucket  string
	baseURL *url.URL
}

func NewObjectStore(ctx context.Context, cfg Config) (*ObjectStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	base, err := parseBase(cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ObjectStore{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

func (s *ObjectStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", err
	}

	u := *s.baseURL
	u.Path = path.Join(u.Path, key)
	return u.String(), nil
}

// ObjectKey builds a collision-free storage key, keeping the original file
// extension so content types stay guessable downstream.
func ObjectKey(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString()+filepath.Ext(filename))
}
