package objectStorage

import "context"

type ObjectStore interface {
	PutObject(ctx context.Context, region, bucket, key string, body []byte, contentType string) error
	DeleteObject(ctx context.Context, region, bucket, key string) error
}
