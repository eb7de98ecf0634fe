package regionapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/appengine-ltd/worldmap/internal/auth"
	"github.com/appengine-ltd/worldmap/internal/logging"
	"github.com/appengine-ltd/worldmap/internal/region"
)

const (
	collectionPath = "regions/"

	defaultTimeout = 20 * time.Second
	maxErrorBody   = 4096
	devPort        = 3000
)

var ErrEmptyID = errors.New("region id is empty")

// Filter selects a page of regions, optionally narrowed by name and type.
// Empty Name or Type are left out of the query entirely.
type Filter struct {
	PageNum   int
	PageLimit int
	Name      string
	Type      region.Type
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenSource
	log     *logging.Logger
	now     func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New expects baseURL to point at the API root, e.g. http://host:3000/api/.
func New(baseURL string, tokens auth.TokenSource, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url has no host: %q", baseURL)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if tokens == nil {
		tokens = auth.StaticToken("")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL builds the API root from the host the viewer talks to. Outside
// production the API listens on the dev port.
func BaseURL(protocol, host string, production bool, port int) string {
	protocol = strings.TrimSuffix(strings.TrimSpace(protocol), ":")
	if protocol == "" {
		protocol = "http"
	}
	hostPart := strings.TrimSpace(host)
	if !production {
		if port <= 0 {
			port = devPort
		}
		hostPart += ":" + strconv.Itoa(port)
	}
	return protocol + "://" + hostPart + "/api/"
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Create(ctx context.Context) (region.Region, error) {
	var out region.Region
	err := c.do(ctx, http.MethodPost, collectionPath, nil, struct{}{}, &out)
	return out, err
}

func (c *Client) ListAll(ctx context.Context) ([]region.Region, error) {
	var out []region.Region
	err := c.do(ctx, http.MethodGet, collectionPath, nil, nil, &out)
	return out, err
}

func (c *Client) ListPage(ctx context.Context, pageNum, pageLimit int) ([]region.Region, error) {
	q := url.Values{}
	q.Set("pageNum", strconv.Itoa(pageNum))
	q.Set("pageLimit", strconv.Itoa(pageLimit))
	var out []region.Region
	err := c.do(ctx, http.MethodGet, collectionPath, q, nil, &out)
	return out, err
}

// ListChunk returns the regions the server considers within rng of (x, y).
func (c *Client) ListChunk(ctx context.Context, x, y, rng int) ([]region.Region, error) {
	q := url.Values{}
	q.Set("x", strconv.Itoa(x))
	q.Set("y", strconv.Itoa(y))
	q.Set("range", strconv.Itoa(rng))
	var out []region.Region
	err := c.do(ctx, http.MethodGet, collectionPath, q, nil, &out)
	return out, err
}

func (c *Client) ListByFilter(ctx context.Context, f Filter) ([]region.Region, error) {
	var out []region.Region
	err := c.do(ctx, http.MethodGet, collectionPath, filterQuery(f), nil, &out)
	return out, err
}

// filterQuery sends name and type as given; only empty values are left out.
func filterQuery(f Filter) url.Values {
	q := url.Values{}
	q.Set("pageNum", strconv.Itoa(f.PageNum))
	q.Set("pageLimit", strconv.Itoa(f.PageLimit))
	if f.Name != "" {
		q.Set("regionName", f.Name)
	}
	if f.Type != "" {
		q.Set("regionType", string(f.Type))
	}
	return q
}

func (c *Client) GetByID(ctx context.Context, id string) (region.Region, error) {
	var out region.Region
	path, err := itemPath(id)
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodGet, path, nil, nil, &out)
	return out, err
}

func (c *Client) Update(ctx context.Context, r region.Region, id string) (region.Region, error) {
	var out region.Region
	path, err := itemPath(id)
	if err != nil {
		return out, err
	}
	body := struct {
		Region region.Region `json:"region"`
	}{Region: r}
	err = c.do(ctx, http.MethodPut, path, nil, body, &out)
	return out, err
}

func (c *Client) DeleteByID(ctx context.Context, id string) error {
	path, err := itemPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) DeleteAll(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, collectionPath, nil, nil, nil)
}

func itemPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return collectionPath + url.PathEscape(id), nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return err
	}
	if auth.Expired(token, c.now()) {
		c.log.Warnf("api token expired; %s %s will likely be rejected", method, path)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := c.now()
	// #nosec G107 -- endpoint is built from the configured API root.
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Errorf("%s %s failed (request %s): %v", method, endpoint, requestID, err)
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()
	c.log.Debugf("%s %s -> %s in %s (request %s)", method, endpoint, resp.Status, c.now().Sub(started), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, endpoint, err)
	}
	return nil
}
