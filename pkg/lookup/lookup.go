// Package lookup answers whether a package version is already published to a
// package registry. It backs the is_it_deployed gate.
package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/precheck/internal/version"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
)

// Supported package managers.
const (
	NPM       = "npm"
	PyPI      = "pypi"
	RubyGems  = "rubygems"
	Maven     = "maven"
	CocoaPods = "cocoapods"
)

// maxResponseBytes bounds how much of a registry response is read (10 MB).
const maxResponseBytes = 10 << 20

var defaultBaseURLs = map[string]string{
	NPM:       "https://registry.npmjs.org",
	PyPI:      "https://pypi.org",
	RubyGems:  "https://rubygems.org",
	Maven:     "https://repo1.maven.org/maven2",
	CocoaPods: "https://trunk.cocoapods.org",
}

type (
	// Query identifies one package version in one registry.
	Query struct {
		PackageManager string
		PackageName    string
		PackageVersion string
	}

	// Lookup reports whether a package version is already published.
	Lookup interface {
		IsDeployed(ctx context.Context, q Query) (bool, error)
	}

	// Client is a Lookup backed by the public registry HTTP APIs.
	Client struct {
		httpClient *http.Client
		baseURLs   map[string]string
		userAgent  string
	}

	// ClientOption configures a Client during construction.
	ClientOption func(*Client)

	source func(ctx context.Context, c *Client, q Query) (bool, error)
)

var sources = map[string]source{
	NPM:       npmIsDeployed,
	PyPI:      pypiIsDeployed,
	RubyGems:  rubygemsIsDeployed,
	Maven:     mavenIsDeployed,
	CocoaPods: cocoapodsIsDeployed,
}

// WithHTTPClient sets a custom HTTP client, useful for tests or proxy configurations.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the registry URL of one package manager, primarily
// for private registries and test servers.
func WithBaseURL(manager, base string) ClientOption {
	return func(c *Client) {
		c.baseURLs[strings.ToLower(manager)] = strings.TrimRight(base, "/")
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client using the public registries and a 30s timeout.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURLs:   make(map[string]string, len(defaultBaseURLs)),
		userAgent:  "precheck/" + version.Version,
	}
	for manager, base := range defaultBaseURLs {
		c.baseURLs[manager] = base
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SupportedManagers lists the package managers IsDeployed understands.
func SupportedManagers() []string {
	managers := make([]string, 0, len(sources))
	for m := range sources {
		managers = append(managers, m)
	}
	sort.Strings(managers)
	return managers
}

// IsDeployed implements Lookup. An unsupported package manager, a transport
// failure or an unexpected registry response is an ErrRegistryLookup error.
func (c *Client) IsDeployed(ctx context.Context, q Query) (bool, error) {
	logger := logging.GetLogger("lookup")

	manager := strings.ToLower(q.PackageManager)
	src, ok := sources[manager]
	if !ok {
		return false, errors.Newf(errors.ErrRegistryLookup, "unsupported package manager %q (supported: %s)",
			q.PackageManager, strings.Join(SupportedManagers(), ", ")).
			WithDetail(errors.DetailRegistry, q.PackageManager)
	}

	deployed, err := src(ctx, c, q)
	if err != nil {
		return false, err
	}

	logger.Debug().
		Str("registry", manager).
		Str("package", q.PackageName).
		Str("version", q.PackageVersion).
		Bool("deployed", deployed).
		Msg("Registry lookup completed")
	return deployed, nil
}

// get fetches url and returns the status code and a bounded body.
func (c *Client) get(ctx context.Context, q Query, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, lookupError(err, q, "failed to build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, lookupError(err, q, "request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, lookupError(err, q, "failed to read response")
	}
	return resp.StatusCode, body, nil
}

// found maps the status of a version endpoint to found / not found.
func found(q Query, url string, status int) (bool, error) {
	switch {
	case status == http.StatusOK:
		return true, nil
	case status == http.StatusNotFound:
		return false, nil
	}
	return false, lookupError(fmt.Errorf("GET %s: unexpected status %d", url, status), q, "unexpected registry response")
}

func (c *Client) baseURL(manager string) string {
	return c.baseURLs[manager]
}

func lookupError(err error, q Query, msg string) error {
	return errors.Wrapf(err, errors.ErrRegistryLookup, "%s for %s in %s", msg, q.PackageName, q.PackageManager).
		WithDetail(errors.DetailRegistry, q.PackageManager).
		WithDetail(errors.DetailVersion, q.PackageVersion)
}
