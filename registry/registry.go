// Package registry provides a Terraform registry API client implementing
// terraformgpt.RegistryService. Provider versions come from the v1 API;
// resource documentation comes from the v2 provider-docs API, which serves
// the doc body as markdown.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/meronimo/terraformgpt"
)

// DefaultBaseURL is the public Terraform registry.
const DefaultBaseURL = "https://registry.terraform.io"

// DefaultTimeout is the default timeout for registry requests.
const DefaultTimeout = 15 * time.Second

// Ensure Client implements terraformgpt.RegistryService at compile time.
var _ terraformgpt.RegistryService = (*Client)(nil)

// Client talks to a Terraform registry.
type Client struct {
	baseURL string
	client  *http.Client
	limiter terraformgpt.DomainLimiter

	mu         sync.Mutex
	versionIDs map[string]string // "ns/provider/version" -> provider-version ID
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the registry base URL. Used for tests and private
// registries.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithLimiter sets a rate limiter applied before each request.
func WithLimiter(limiter terraformgpt.DomainLimiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// NewClient creates a new registry client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		versionIDs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: DefaultTimeout}
	}
	return c
}

// ListVersions returns the published versions for a provider, unordered.
func (c *Client) ListVersions(ctx context.Context, namespace, provider string) ([]string, error) {
	if namespace == "" || provider == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "provider namespace and name required")
	}

	var body struct {
		Versions []struct {
			Version string `json:"version"`
		} `json:"versions"`
	}
	path := fmt.Sprintf("/v1/providers/%s/%s/versions", url.PathEscape(namespace), url.PathEscape(provider))
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(body.Versions))
	for _, v := range body.Versions {
		versions = append(versions, v.Version)
	}
	return versions, nil
}

// ListResourceDocs enumerates the resource doc slugs for a provider version.
func (c *Client) ListResourceDocs(ctx context.Context, namespace, provider, version string) ([]string, error) {
	versionID, err := c.providerVersionID(ctx, namespace, provider, version)
	if err != nil {
		return nil, err
	}

	var slugs []string
	page := 1
	for {
		var body struct {
			Data []struct {
				Attributes struct {
					Slug string `json:"slug"`
				} `json:"attributes"`
			} `json:"data"`
			Meta struct {
				Pagination struct {
					NextPage *int `json:"next-page"`
				} `json:"pagination"`
			} `json:"meta"`
		}
		path := fmt.Sprintf(
			"/v2/provider-docs?filter[provider-version]=%s&filter[category]=resources&filter[language]=hcl&page[size]=100&page[number]=%d",
			url.QueryEscape(versionID), page)
		if err := c.getJSON(ctx, path, &body); err != nil {
			return nil, err
		}

		for _, d := range body.Data {
			slugs = append(slugs, d.Attributes.Slug)
		}

		if body.Meta.Pagination.NextPage == nil {
			break
		}
		page = *body.Meta.Pagination.NextPage
	}

	sort.Strings(slugs)
	return slugs, nil
}

// ResourceDoc fetches the documentation markdown for a single resource.
func (c *Client) ResourceDoc(ctx context.Context, namespace, provider, version, resource string) (*terraformgpt.ResourceDoc, error) {
	if resource == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "resource name required")
	}

	versionID, err := c.providerVersionID(ctx, namespace, provider, version)
	if err != nil {
		return nil, err
	}

	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	path := fmt.Sprintf(
		"/v2/provider-docs?filter[provider-version]=%s&filter[category]=resources&filter[slug]=%s&filter[language]=hcl",
		url.QueryEscape(versionID), url.QueryEscape(resource))
	if err := c.getJSON(ctx, path, &list); err != nil {
		return nil, err
	}
	if len(list.Data) == 0 {
		return nil, terraformgpt.Errorf(terraformgpt.ENOTFOUND,
			"no documentation for resource %q in %s/%s %s", resource, namespace, provider, version)
	}

	var doc struct {
		Data struct {
			Attributes struct {
				Slug    string `json:"slug"`
				Content string `json:"content"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "/v2/provider-docs/"+url.PathEscape(list.Data[0].ID), &doc); err != nil {
		return nil, err
	}

	return &terraformgpt.ResourceDoc{
		Provider: provider,
		Name:     doc.Data.Attributes.Slug,
		Version:  version,
		URL: fmt.Sprintf("%s/providers/%s/%s/%s/docs/resources/%s",
			c.baseURL, namespace, provider, version, doc.Data.Attributes.Slug),
		Markdown: doc.Data.Attributes.Content,
	}, nil
}

// providerVersionID resolves the registry's internal ID for a provider
// version. IDs are stable, so resolutions are cached per client.
func (c *Client) providerVersionID(ctx context.Context, namespace, provider, version string) (string, error) {
	if namespace == "" || provider == "" || version == "" {
		return "", terraformgpt.Errorf(terraformgpt.EINVALID, "provider namespace, name, and version required")
	}

	key := namespace + "/" + provider + "/" + version
	c.mu.Lock()
	id, ok := c.versionIDs[key]
	c.mu.Unlock()
	if ok {
		return id, nil
	}

	var body struct {
		Included []struct {
			ID         string `json:"id"`
			Attributes struct {
				Version string `json:"version"`
			} `json:"attributes"`
		} `json:"included"`
	}
	path := fmt.Sprintf("/v2/providers/%s/%s?include=provider-versions",
		url.PathEscape(namespace), url.PathEscape(provider))
	if err := c.getJSON(ctx, path, &body); err != nil {
		return "", err
	}

	for _, inc := range body.Included {
		if inc.Attributes.Version == version {
			c.mu.Lock()
			c.versionIDs[key] = inc.ID
			c.mu.Unlock()
			return inc.ID, nil
		}
	}

	return "", terraformgpt.Errorf(terraformgpt.ENOTFOUND,
		"version %q not found for provider %s/%s", version, namespace, provider)
}

// getJSON performs a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	fullURL := c.baseURL + path

	if c.limiter != nil {
		u, err := url.Parse(fullURL)
		if err != nil {
			return terraformgpt.Errorf(terraformgpt.EINVALID, "invalid registry URL: %v", err)
		}
		if err := c.limiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return terraformgpt.Errorf(terraformgpt.ENOTFOUND, "registry returned 404 for %s", path)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", resp.StatusCode, fullURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding registry response: %w", err)
	}
	return nil
}
