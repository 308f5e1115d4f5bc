package awsRegion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

var ErrNoRegion = errors.New("aws region is not configured")

// ConfigCache builds one aws.Config per region and reuses it. The region is
// only known per call, so clients are created lazily.
type ConfigCache struct {
	httpClient *http.Client
	mu         sync.RWMutex
	configs    map[string]aws.Config
	load       Loader
}

type Loader func(ctx context.Context, region string, httpClient *http.Client) (aws.Config, error)

func NewConfigCache(httpClient *http.Client) *ConfigCache {
	return NewConfigCacheWithLoader(httpClient, loadDefault)
}

func NewConfigCacheWithLoader(httpClient *http.Client, load Loader) *ConfigCache {
	return &ConfigCache{
		httpClient: httpClient,
		configs:    make(map[string]aws.Config),
		load:       load,
	}
}

func (c *ConfigCache) Get(ctx context.Context, region string) (aws.Config, error) {
	if region == "" {
		return aws.Config{}, ErrNoRegion
	}

	c.mu.RLock()
	cfg, exists := c.configs[region]
	c.mu.RUnlock()
	if exists {
		return cfg, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg, exists = c.configs[region]; exists {
		return cfg, nil
	}

	cfg, err := c.load(ctx, region, c.httpClient)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading aws config for %s: %w", region, err)
	}
	c.configs[region] = cfg
	return cfg, nil
}

func loadDefault(ctx context.Context, region string, httpClient *http.Client) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if httpClient != nil {
		opts = append(opts, awsconfig.WithHTTPClient(httpClient))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
