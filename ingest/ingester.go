// Package ingest orchestrates the ingestion of provider resource
// documentation. Docs come either from the registry API (markdown) or from
// documentation sites (HTML, via fetch, extract, and convert), and end up as
// structured resources and attributes in the store.
package ingest

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultNamespace is the registry namespace used when none is configured.
// The major providers (azurerm, aws, google) all live under hashicorp.
const DefaultNamespace = "hashicorp"

// DefaultConcurrency is the number of resources processed in parallel
// during bulk ingests.
const DefaultConcurrency = 5

// resourcePathPattern matches doc site URLs that describe resources, as
// opposed to data sources, guides, or release notes.
var resourcePathPattern = regexp.MustCompile(`/resources/`)

// Ingester coordinates fetching, parsing, and storing resource docs.
type Ingester struct {
	Registry   terraformgpt.RegistryService
	Resources  terraformgpt.ResourceService
	Attributes terraformgpt.AttributeService
	Parser     terraformgpt.DocParser

	// HTML pipeline, used for page and site ingestion.
	Fetcher   terraformgpt.Fetcher
	Extractor terraformgpt.Extractor
	Converter terraformgpt.Converter
	Sitemaps  terraformgpt.SitemapService
	Limiter   terraformgpt.DomainLimiter

	// Namespace is the registry namespace (e.g. "hashicorp").
	Namespace string

	Concurrency int

	// Force replaces already ingested resources instead of failing
	// with a conflict.
	Force bool

	RetryDelays []time.Duration

	Progress terraformgpt.IngestProgressFunc
}

// Result holds the outcome of a bulk ingest.
type Result struct {
	Ingested int
	Skipped  int
	Failed   int
}

// IngestResource ingests the documentation for a single resource from the
// registry. The provider qualifies the name: "storage_account" with
// provider "azurerm" and "azurerm_storage_account" ingest the same
// resource. Without a provider the name's prefix is used. Version may be
// empty or "latest" to resolve the newest published version.
func (i *Ingester) IngestResource(ctx context.Context, name, provider, version string) (*terraformgpt.Resource, error) {
	provider, bare, err := qualifyResourceName(name, provider)
	if err != nil {
		return nil, err
	}

	version, err = i.resolveVersion(ctx, provider, version)
	if err != nil {
		return nil, err
	}

	doc, err := i.Registry.ResourceDoc(ctx, i.namespace(), provider, version, bare)
	if err != nil {
		return nil, err
	}

	return i.ingestDoc(ctx, doc)
}

// IngestAll ingests the documentation for every resource a provider version
// publishes. Individual resource failures are counted, not fatal.
func (i *Ingester) IngestAll(ctx context.Context, provider, version string) (*Result, error) {
	version, err := i.resolveVersion(ctx, provider, version)
	if err != nil {
		return nil, err
	}

	slugs, err := i.Registry.ListResourceDocs(ctx, i.namespace(), provider, version)
	if err != nil {
		return nil, err
	}

	seen := bloom.NewFilter(uint(len(slugs))+1024, 0.01)
	queue := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if seen.Test(slug) {
			continue
		}
		seen.Add(slug)
		queue = append(queue, slug)
	}

	var result Result
	var mu sync.Mutex
	var completed atomic.Int64
	total := len(queue)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency())

	for _, slug := range queue {
		slug := slug
		g.Go(func() error {
			doc, err := i.Registry.ResourceDoc(gctx, i.namespace(), provider, version, slug)
			if err == nil {
				_, err = i.ingestDoc(gctx, doc)
			}

			done := int(completed.Add(1))

			mu.Lock()
			switch {
			case err == nil:
				result.Ingested++
			case terraformgpt.ErrorCode(err) == terraformgpt.ECONFLICT:
				result.Skipped++
				err = nil
			default:
				result.Failed++
			}
			mu.Unlock()

			i.report(terraformgpt.IngestProgress{
				Resource:  provider + "_" + slug,
				Completed: done,
				Total:     total,
				Error:     err,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// IngestPage ingests a single documentation page by URL. The page is
// fetched as HTML, reduced to its main content, and converted to markdown
// before parsing. Provider may be empty, in which case it is derived from
// the page title.
func (i *Ingester) IngestPage(ctx context.Context, pageURL, provider, version string) (*terraformgpt.Resource, error) {
	if !terraformgpt.ValidVersion(version) {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID,
			"a valid provider version is required when ingesting from a URL")
	}

	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "invalid page URL %q", pageURL)
	}

	if i.Limiter != nil {
		if err := i.Limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := i.fetchWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	extracted, err := i.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := i.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	provider, bare, err := resourceNameFromPage(extracted.Title, u, provider)
	if err != nil {
		return nil, err
	}

	return i.ingestDoc(ctx, &terraformgpt.ResourceDoc{
		Provider: provider,
		Name:     bare,
		Version:  version,
		URL:      pageURL,
		Markdown: markdown,
	})
}

// IngestSite discovers resource doc pages under a base URL via its sitemap
// and ingests each one. Pages outside the resources section are skipped.
func (i *Ingester) IngestSite(ctx context.Context, baseURL, provider, version string) (*Result, error) {
	if !terraformgpt.ValidVersion(version) {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID,
			"a valid provider version is required when ingesting from a site")
	}

	filter := &terraformgpt.URLFilter{
		Include: []*regexp.Regexp{resourcePathPattern},
	}
	urls, err := i.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, fmt.Errorf("sitemap discovery: %w", err)
	}

	seen := bloom.NewFilter(uint(len(urls))+1024, 0.01)
	queue := make([]string, 0, len(urls))
	for _, pageURL := range urls {
		if seen.Test(pageURL) {
			continue
		}
		seen.Add(pageURL)
		queue = append(queue, pageURL)
	}

	var result Result
	var mu sync.Mutex
	var completed atomic.Int64
	total := len(queue)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency())

	for _, pageURL := range queue {
		pageURL := pageURL
		g.Go(func() error {
			_, err := i.IngestPage(gctx, pageURL, provider, version)

			done := int(completed.Add(1))

			mu.Lock()
			switch {
			case err == nil:
				result.Ingested++
			case terraformgpt.ErrorCode(err) == terraformgpt.ECONFLICT:
				result.Skipped++
				err = nil
			default:
				result.Failed++
			}
			mu.Unlock()

			i.report(terraformgpt.IngestProgress{
				Resource:  pageURL,
				Completed: done,
				Total:     total,
				Error:     err,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &result, nil
}

// ingestDoc parses a resource doc and stores the resource with its
// attributes. Existing resources fail with ECONFLICT unless Force is set,
// in which case their attributes are replaced. Unchanged content is left
// alone even under Force.
func (i *Ingester) ingestDoc(ctx context.Context, doc *terraformgpt.ResourceDoc) (*terraformgpt.Resource, error) {
	parsed, err := i.Parser.Parse(doc.Markdown)
	if err != nil {
		return nil, err
	}

	hash := hashContent(doc.Markdown)

	existing, err := i.Resources.FindResources(ctx, terraformgpt.ResourceFilter{
		Provider: &doc.Provider,
		Name:     &doc.Name,
		Version:  &doc.Version,
		Limit:    1,
	})
	if err != nil {
		return nil, err
	}

	if len(existing) > 0 {
		res := existing[0]
		if !i.Force {
			return nil, terraformgpt.Errorf(terraformgpt.ECONFLICT,
				"resource %q version %q already ingested", doc.Provider+"_"+doc.Name, doc.Version)
		}
		if res.ContentHash == hash {
			return res, nil
		}

		if err := i.Attributes.DeleteAttributesByResource(ctx, res.ID); err != nil {
			return nil, err
		}
		res, err = i.Resources.UpdateResource(ctx, res.ID, terraformgpt.ResourceUpdate{
			DocURL:      &doc.URL,
			ContentHash: &hash,
		})
		if err != nil {
			return nil, err
		}
		if err := i.Attributes.CreateAttributes(ctx, buildAttributes(res.ID, doc.Version, parsed)); err != nil {
			return nil, err
		}
		return res, nil
	}

	res := &terraformgpt.Resource{
		Provider:    doc.Provider,
		Name:        doc.Name,
		Version:     doc.Version,
		DocURL:      doc.URL,
		ContentHash: hash,
	}
	if err := i.Resources.CreateResource(ctx, res); err != nil {
		return nil, err
	}
	if err := i.Attributes.CreateAttributes(ctx, buildAttributes(res.ID, doc.Version, parsed)); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveVersion turns an empty or "latest" version into the newest
// published version for the provider, and validates explicit versions.
func (i *Ingester) resolveVersion(ctx context.Context, provider, version string) (string, error) {
	if version != "" && version != "latest" {
		if !terraformgpt.ValidVersion(version) {
			return "", terraformgpt.Errorf(terraformgpt.EINVALID, "invalid provider version %q", version)
		}
		return version, nil
	}

	versions, err := i.Registry.ListVersions(ctx, i.namespace(), provider)
	if err != nil {
		return "", err
	}
	return terraformgpt.LatestVersion(versions)
}

func (i *Ingester) namespace() string {
	if i.Namespace == "" {
		return DefaultNamespace
	}
	return i.Namespace
}

func (i *Ingester) concurrency() int {
	if i.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return i.Concurrency
}

func (i *Ingester) report(p terraformgpt.IngestProgress) {
	if i.Progress != nil {
		i.Progress(p)
	}
}

// buildAttributes converts parsed attributes into storable ones. Document
// order is preserved in Position, and the resource version is recorded as
// the version the attribute was first seen in.
func buildAttributes(resourceID, version string, parsed *terraformgpt.ParsedDoc) []*terraformgpt.Attribute {
	attrs := make([]*terraformgpt.Attribute, 0, len(parsed.Attributes))
	for pos, pa := range parsed.Attributes {
		attrs = append(attrs, &terraformgpt.Attribute{
			ResourceID:   resourceID,
			Name:         pa.Name,
			Description:  pa.Description,
			Required:     pa.Required,
			Type:         pa.Type,
			VersionAdded: version,
			DocAnchor:    pa.DocAnchor,
			Position:     pos,
		})
	}
	return attrs
}

// qualifyResourceName resolves a resource name against an optional
// provider. When a provider is given it is authoritative: a matching
// "<provider>_" prefix is stripped and anything else is taken as a bare
// name under that provider. Without a provider the name must carry a
// prefix of its own.
func qualifyResourceName(name, provider string) (string, string, error) {
	if name == "" {
		return "", "", terraformgpt.Errorf(terraformgpt.EINVALID, "a resource name is required")
	}
	if provider != "" {
		return provider, strings.TrimPrefix(name, provider+"_"), nil
	}
	p, bare := terraformgpt.SplitResourceName(name)
	if p == "" || bare == "" {
		return "", "", terraformgpt.Errorf(terraformgpt.EINVALID,
			"resource name %q has no provider prefix; pass the provider explicitly", name)
	}
	return p, bare, nil
}

// resourceNameFromPage derives the provider and bare resource name from a
// doc page. The page title usually contains the fully-qualified name
// ("azurerm_storage_account"); the URL's last path segment is the fallback.
func resourceNameFromPage(title string, u *url.URL, provider string) (string, string, error) {
	if provider != "" {
		prefix := provider + "_"
		for _, token := range strings.Fields(title) {
			token = strings.Trim(token, "`:,.")
			if strings.HasPrefix(token, prefix) {
				return provider, strings.TrimPrefix(token, prefix), nil
			}
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		if last := segments[len(segments)-1]; last != "" {
			return provider, strings.TrimPrefix(last, prefix), nil
		}
		return "", "", terraformgpt.Errorf(terraformgpt.EINVALID,
			"could not derive resource name from page %q", u.String())
	}

	for _, token := range strings.Fields(title) {
		token = strings.Trim(token, "`:,.")
		if p, bare := terraformgpt.SplitResourceName(token); p != "" && bare != "" {
			return p, bare, nil
		}
	}
	return "", "", terraformgpt.Errorf(terraformgpt.EINVALID,
		"could not derive provider from page title %q; pass the provider explicitly", title)
}

// hashContent computes a content hash of the doc markdown using xxhash.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
