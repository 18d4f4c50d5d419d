package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.elections.kalshi.com"
	apiPrefix      = "/trade-api/v2"

	maxRetries     = 3
	baseRetryWait  = 250 * time.Millisecond
	maxRetryJitter = 150 * time.Millisecond
)

// Client es el HTTP client autenticado de Kalshi, con firma RSA-PSS por
// request, rate limiting global y retries acotados ante 429.
type Client struct {
	http      *http.Client
	baseURL   string
	accessKey string
	signer    *signer
	limiter   *rateLimiter

	// sleep y jitter son inyectables para testear el backoff sin esperas reales.
	sleep  func(ctx context.Context, d time.Duration)
	jitter func() time.Duration
	now    func() time.Time
}

// NewClient crea un Client autenticado. accessKeyID es el identificador de
// la API key y privateKeyPEM la clave RSA en PEM (PKCS#1 o PKCS#8).
// Si baseURL está vacío usa el URL de producción.
func NewClient(baseURL, accessKeyID, privateKeyPEM string) (*Client, error) {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if accessKeyID == "" || privateKeyPEM == "" {
		return nil, ErrMissingCredentials
	}

	s, err := newSigner(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   baseURL,
		accessKey: accessKeyID,
		signer:    s,
		limiter:   sharedLimiter,
		sleep:     sleepCtx,
		jitter:    func() time.Duration { return time.Duration(rand.Int63n(int64(maxRetryJitter))) },
		now:       time.Now,
	}, nil
}

// get hace un GET firmado con rate limiting y retries ante 429.
// La firma cubre solo el path (sin query string); el slot del limiter y el
// timestamp se renuevan en cada intento, incluidos los retries.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path
	if enc := params.Encode(); enc != "" {
		fullURL += "?" + enc
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.acquire(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		ts := strconv.FormatInt(c.now().UnixMilli(), 10)
		sig, err := c.signer.sign(ts, http.MethodGet, path)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("new request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("KALSHI-ACCESS-KEY", c.accessKey)
		req.Header.Set("KALSHI-ACCESS-TIMESTAMP", ts)
		req.Header.Set("KALSHI-ACCESS-SIGNATURE", sig)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			if out == nil {
				return nil
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt >= maxRetries {
				return &ThrottledError{Path: path, Retries: maxRetries}
			}
			wait := baseRetryWait<<attempt + c.jitter()
			slog.Warn("kalshi rate limited, backing off",
				"path", path,
				"attempt", attempt+1,
				"wait", wait,
			)
			c.sleep(ctx, wait)
			continue
		}

		// Cualquier otro status no-2xx falla inmediatamente, incluidos 5xx.
		return &UpstreamError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}
}

// sleepCtx espera la duración dada respetando el contexto.
func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
