package s3Storage

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/ocr/awsRegion"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store implements objectStorage.ObjectStore on S3.
type Store struct {
	configs *awsRegion.ConfigCache
	optFns  []func(*s3.Options)

	mu      sync.RWMutex
	clients map[string]*s3.Client
}

func NewStore(configs *awsRegion.ConfigCache, optFns ...func(*s3.Options)) *Store {
	return &Store{
		configs: configs,
		optFns:  optFns,
		clients: make(map[string]*s3.Client),
	}
}

func (s *Store) forRegion(ctx context.Context, region string) (*s3.Client, error) {
	s.mu.RLock()
	client, exists := s.clients[region]
	s.mu.RUnlock()
	if exists {
		return client, nil
	}

	cfg, err := s.configs.Get(ctx, region)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if client, exists = s.clients[region]; exists {
		return client, nil
	}
	client = s3.NewFromConfig(cfg, s.optFns...)
	s.clients[region] = client
	return client, nil
}

func (s *Store) PutObject(ctx context.Context, region, bucket, key string, body []byte, contentType string) error {
	client, err := s.forRegion(ctx, region)
	if err != nil {
		return err
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) DeleteObject(ctx context.Context, region, bucket, key string) error {
	client, err := s.forRegion(ctx, region)
	if err != nil {
		return err
	}
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", bucket, key, err)
	}
	return nil
}
