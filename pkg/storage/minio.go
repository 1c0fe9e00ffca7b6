package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"

	"github.com/nikogura/portfolio-cv/pkg/config"
)

// bucketCheckTimeout bounds the bucket probe at construction.
const bucketCheckTimeout = 5 * time.Second

// MinIOStore uploads documents to an S3-compatible bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIOStore connects to the configured endpoint and creates the bucket
// if it does not exist yet.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (s *MinIOStore, err error) {
	var client *minio.Client
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to init minio client")
		return s, err
	}

	ctx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()

	var exists bool
	exists, err = client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		err = errors.Wrapf(err, "failed to check bucket %q", cfg.Bucket)
		return s, err
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			err = errors.Wrapf(err, "failed to make bucket %q", cfg.Bucket)
			return s, err
		}
	}

	s = &MinIOStore{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}
	return s, err
}

// Put uploads data as prefix+key and returns "bucket/object".
func (s *MinIOStore) Put(ctx context.Context, key string, data []byte, contentType string) (location string, err error) {
	err = validateKey(key)
	if err != nil {
		return location, err
	}

	object := s.prefix + key
	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "no-cache",
	}
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		err = errors.Wrapf(err, "failed to put object %q", object)
		return location, err
	}

	location = s.bucket + "/" + object
	return location, err
}
