// Package staticdata reads the JSON resources the storefront serves from.
package staticdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 16 << 20
	errBodyLimit   = 512
)

// Loader fetches a JSON resource from a local path or an http(s) URL.
type Loader struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures optional loader behavior.
type Option func(*Loader)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		if client != nil {
			l.httpClient = client
		}
	}
}

// WithTimeout bounds each Load call.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.timeout = timeout
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load decodes the resource at source into dest.
func (l *Loader) Load(ctx context.Context, source string, dest any) error {
	source = strings.TrimSpace(source)
	if source == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "static data source is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	if isRemote(source) {
		return l.loadRemote(ctx, source, dest)
	}
	return l.loadFile(ctx, source, dest)
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (l *Loader) loadRemote(ctx context.Context, source string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build static data request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch static data")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "static data request failed")
	}
	return decode(resp.Body, dest)
}

func (l *Loader) loadFile(ctx context.Context, path string, dest any) error {
	if err := ctx.Err(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read static data")
	}
	f, err := os.Open(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open static data file")
	}
	defer func() { _ = f.Close() }()
	return decode(f, dest)
}

func decode(r io.Reader, dest any) error {
	if err := json.NewDecoder(io.LimitReader(r, maxBodyBytes)).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode static data")
	}
	return nil
}
