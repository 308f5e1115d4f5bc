package customHttpClient

import (
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

var (
	clients = make(map[time.Duration]*http.Client)
	mu      sync.Mutex
)

// GetClient returns a pooled client whose requests never outlive timeout.
// Clients with the same timeout share one instance.
func GetClient(timeout time.Duration) *http.Client {
	mu.Lock()
	defer mu.Unlock()

	if c, ok := clients[timeout]; ok {
		return c
	}
	c := &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
	clients[timeout] = c
	return c
}
