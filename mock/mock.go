// Package mock provides mock implementations of terraformgpt services for testing.
package mock

import (
	"context"

	"github.com/meronimo/terraformgpt"
)

var _ terraformgpt.ResourceService = (*ResourceService)(nil)

// ResourceService is a mock implementation of terraformgpt.ResourceService.
type ResourceService struct {
	CreateResourceFn   func(ctx context.Context, res *terraformgpt.Resource) error
	FindResourceByIDFn func(ctx context.Context, id string) (*terraformgpt.Resource, error)
	FindResourcesFn    func(ctx context.Context, filter terraformgpt.ResourceFilter) ([]*terraformgpt.Resource, error)
	UpdateResourceFn   func(ctx context.Context, id string, upd terraformgpt.ResourceUpdate) (*terraformgpt.Resource, error)
	DeleteResourceFn   func(ctx context.Context, id string) error
}

func (s *ResourceService) CreateResource(ctx context.Context, res *terraformgpt.Resource) error {
	return s.CreateResourceFn(ctx, res)
}

func (s *ResourceService) FindResourceByID(ctx context.Context, id string) (*terraformgpt.Resource, error) {
	return s.FindResourceByIDFn(ctx, id)
}

func (s *ResourceService) FindResources(ctx context.Context, filter terraformgpt.ResourceFilter) ([]*terraformgpt.Resource, error) {
	return s.FindResourcesFn(ctx, filter)
}

func (s *ResourceService) UpdateResource(ctx context.Context, id string, upd terraformgpt.ResourceUpdate) (*terraformgpt.Resource, error) {
	return s.UpdateResourceFn(ctx, id, upd)
}

func (s *ResourceService) DeleteResource(ctx context.Context, id string) error {
	return s.DeleteResourceFn(ctx, id)
}

var _ terraformgpt.AttributeService = (*AttributeService)(nil)

// AttributeService is a mock implementation of terraformgpt.AttributeService.
type AttributeService struct {
	CreateAttributeFn            func(ctx context.Context, attr *terraformgpt.Attribute) error
	CreateAttributesFn           func(ctx context.Context, attrs []*terraformgpt.Attribute) error
	FindAttributeByIDFn          func(ctx context.Context, id string) (*terraformgpt.Attribute, error)
	FindAttributesFn             func(ctx context.Context, filter terraformgpt.AttributeFilter) ([]*terraformgpt.Attribute, error)
	DeleteAttributesByResourceFn func(ctx context.Context, resourceID string) error
}

func (s *AttributeService) CreateAttribute(ctx context.Context, attr *terraformgpt.Attribute) error {
	return s.CreateAttributeFn(ctx, attr)
}

func (s *AttributeService) CreateAttributes(ctx context.Context, attrs []*terraformgpt.Attribute) error {
	return s.CreateAttributesFn(ctx, attrs)
}

func (s *AttributeService) FindAttributeByID(ctx context.Context, id string) (*terraformgpt.Attribute, error) {
	return s.FindAttributeByIDFn(ctx, id)
}

func (s *AttributeService) FindAttributes(ctx context.Context, filter terraformgpt.AttributeFilter) ([]*terraformgpt.Attribute, error) {
	return s.FindAttributesFn(ctx, filter)
}

func (s *AttributeService) DeleteAttributesByResource(ctx context.Context, resourceID string) error {
	return s.DeleteAttributesByResourceFn(ctx, resourceID)
}

var _ terraformgpt.Explainer = (*Explainer)(nil)

// Explainer is a mock implementation of terraformgpt.Explainer.
type Explainer struct {
	ExplainFn func(ctx context.Context, resourceID string, language string) (string, error)
}

func (e *Explainer) Explain(ctx context.Context, resourceID string, language string) (string, error) {
	return e.ExplainFn(ctx, resourceID, language)
}

var _ terraformgpt.RegistryService = (*RegistryService)(nil)

// RegistryService is a mock implementation of terraformgpt.RegistryService.
type RegistryService struct {
	ListVersionsFn     func(ctx context.Context, namespace, provider string) ([]string, error)
	ListResourceDocsFn func(ctx context.Context, namespace, provider, version string) ([]string, error)
	ResourceDocFn      func(ctx context.Context, namespace, provider, version, resource string) (*terraformgpt.ResourceDoc, error)
}

func (s *RegistryService) ListVersions(ctx context.Context, namespace, provider string) ([]string, error) {
	return s.ListVersionsFn(ctx, namespace, provider)
}

func (s *RegistryService) ListResourceDocs(ctx context.Context, namespace, provider, version string) ([]string, error) {
	return s.ListResourceDocsFn(ctx, namespace, provider, version)
}

func (s *RegistryService) ResourceDoc(ctx context.Context, namespace, provider, version, resource string) (*terraformgpt.ResourceDoc, error) {
	return s.ResourceDocFn(ctx, namespace, provider, version, resource)
}

var _ terraformgpt.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of terraformgpt.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ terraformgpt.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of terraformgpt.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*terraformgpt.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*terraformgpt.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ terraformgpt.Converter = (*Converter)(nil)

// Converter is a mock implementation of terraformgpt.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ terraformgpt.DocParser = (*DocParser)(nil)

// DocParser is a mock implementation of terraformgpt.DocParser.
type DocParser struct {
	ParseFn func(markdown string) (*terraformgpt.ParsedDoc, error)
}

func (p *DocParser) Parse(markdown string) (*terraformgpt.ParsedDoc, error) {
	return p.ParseFn(markdown)
}

var _ terraformgpt.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of terraformgpt.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *terraformgpt.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *terraformgpt.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ terraformgpt.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of terraformgpt.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}

var _ terraformgpt.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of terraformgpt.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
