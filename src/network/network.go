package network

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"market-climber/src/helpers"
	"market-climber/src/interfaces"
	"market-climber/src/logger"
	"market-climber/src/models"
)

// maxBodyBytes caps how much of a provider response is read
const maxBodyBytes = 4 << 20

type NetworkManager struct {
	Config       *models.MConfig
	ProxyManager interfaces.IProxyManager
	Logger       *logger.Logger

	mu     sync.Mutex
	client *http.Client
}

// -----------------------------------------------------------------------------

func NewNetworkManager(cfg *models.MConfig, log *logger.Logger) *NetworkManager {
	var proxies []string
	if cfg.Network.Enabled {
		proxies = cfg.Network.Proxies
	}

	nm := &NetworkManager{
		Config:       cfg,
		ProxyManager: helpers.NewProxyManager(proxies, cfg.Network.UserAgent, log),
		Logger:       log,
	}
	nm.client = nm.createClient()
	return nm
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) createClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if nm.ProxyManager.HasProxies() {
		proxyStr, err := nm.ProxyManager.GetCurrentProxy()
		if err == nil && proxyStr != "" {
			if proxyURL, err := url.Parse(proxyStr); err == nil {
				transport.Proxy = http.ProxyURL(proxyURL)
			}
		}
	}

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(nm.Config.Network.RequestTimeout) * time.Second,
	}
}

// -----------------------------------------------------------------------------

func (nm *NetworkManager) rotateProxy() {
	if !nm.ProxyManager.HasProxies() {
		return
	}

	nm.ProxyManager.RotateProxy()
	client := nm.createClient()

	nm.mu.Lock()
	nm.client = client
	nm.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Get performs one GET request. There are no retries: a failed call is
// reported to the caller, and a 429/403 switches proxy for the next call.
func (nm *NetworkManager) Get(ctx context.Context, urlStr string, params map[string]string) ([]byte, error) {
	// 1. Build the URL
	reqURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewNetworkError(err, "invalid url %q", urlStr)
	}
	q := reqURL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, helpers.NewNetworkError(err, "build request")
	}
	req.Header.Set("User-Agent", nm.ProxyManager.GetUserAgent())
	req.Header.Set("Accept", "application/json")

	// 2. Send it
	nm.mu.Lock()
	client := nm.client
	nm.mu.Unlock()

	resp, err := client.Do(req)
	if err != nil {
		nm.Logger.Warning("Request to %s failed: %v", reqURL.Host, err)
		return nil, helpers.NewNetworkError(err, "request to %s failed", reqURL.Host)
	}
	defer resp.Body.Close()

	// 3. Check the status
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden {
		nm.Logger.Warning("Request blocked (%d). Rotating proxy.", resp.StatusCode)
		nm.rotateProxy()
		return nil, helpers.NewStatusError(resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		nm.Logger.Warning("Bad status %d from %s", resp.StatusCode, reqURL.Host)
		return nil, helpers.NewStatusError(resp.StatusCode)
	}

	// 4. Read the body
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, helpers.NewNetworkError(err, "read body from %s", reqURL.Host)
	}

	return body, nil
}
