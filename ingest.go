package terraformgpt

import "context"

// ResourceDoc is the raw documentation for a single resource, ready for
// parsing. Markdown is the doc body as served by the registry or produced
// by the HTML conversion pipeline.
type ResourceDoc struct {
	Provider string
	Name     string
	Version  string
	URL      string
	Markdown string
}

// RegistryService provides access to a Terraform provider registry.
type RegistryService interface {
	// ListVersions returns the published versions for a provider, unordered.
	ListVersions(ctx context.Context, namespace, provider string) ([]string, error)

	// ListResourceDocs enumerates the resource doc slugs available for a
	// provider version (e.g. "storage_account").
	ListResourceDocs(ctx context.Context, namespace, provider, version string) ([]string, error)

	// ResourceDoc fetches the documentation markdown for a single resource.
	// The resource is the bare doc slug without the provider prefix.
	// Returns ENOTFOUND if the registry has no doc for the resource at
	// that version.
	ResourceDoc(ctx context.Context, namespace, provider, version, resource string) (*ResourceDoc, error)
}

// Fetcher retrieves HTML content from URLs.
type Fetcher interface {
	// Fetch retrieves the HTML content at the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// ExtractResult holds the extracted content from an HTML doc page.
type ExtractResult struct {
	// Title is the page title.
	Title string

	// ContentHTML is the main documentation content as clean HTML,
	// with site chrome (nav, footer, sidebar) removed.
	ContentHTML string
}

// Extractor extracts the main documentation content from an HTML page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	Convert(html string) (string, error)
}

// ParsedAttribute is a single attribute parsed from doc markdown.
type ParsedAttribute struct {
	Name        string
	Description string
	Required    bool
	Type        string
	DocAnchor   string

	// ReadOnly marks exported attributes from the attributes reference
	// section, as opposed to configurable arguments.
	ReadOnly bool
}

// ParsedDoc is the structured result of parsing a resource doc.
type ParsedDoc struct {
	Title      string
	Attributes []ParsedAttribute
}

// DocParser parses provider resource documentation markdown into attributes.
type DocParser interface {
	Parse(markdown string) (*ParsedDoc, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// IngestProgress reports progress during a bulk ingest.
type IngestProgress struct {
	Resource  string
	Completed int
	Total     int
	Error     error
}

// IngestProgressFunc is called as resources are processed.
type IngestProgressFunc func(IngestProgress)
