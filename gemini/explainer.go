// Package gemini implements terraformgpt.Explainer using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/meronimo/terraformgpt"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// maxContextTokens caps the prompt size. Resources with very large docs
// (storage_account has hundreds of attributes) must still fit comfortably
// under the model's context window.
const maxContextTokens = 200_000

// Ensure Explainer implements terraformgpt.Explainer at compile time.
var _ terraformgpt.Explainer = (*Explainer)(nil)

// Explainer generates explanations of stored resources using Gemini.
type Explainer struct {
	client     *genai.Client
	resources  terraformgpt.ResourceService
	attributes terraformgpt.AttributeService
	model      string
	tokens     terraformgpt.TokenCounter
}

// Option configures an Explainer.
type Option func(*Explainer)

// WithTokenCounter enables prompt-size checking before calling the model.
func WithTokenCounter(tc terraformgpt.TokenCounter) Option {
	return func(e *Explainer) {
		e.tokens = tc
	}
}

// NewExplainer creates a new Explainer.
func NewExplainer(client *genai.Client, resources terraformgpt.ResourceService, attributes terraformgpt.AttributeService, model string, opts ...Option) *Explainer {
	if model == "" {
		model = DefaultModel
	}
	e := &Explainer{
		client:     client,
		resources:  resources,
		attributes: attributes,
		model:      model,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explain describes a resource and its attributes in the given language.
func (e *Explainer) Explain(ctx context.Context, resourceID string, language string) (string, error) {
	if resourceID == "" {
		return "", terraformgpt.Errorf(terraformgpt.EINVALID, "resource ID required")
	}

	res, err := e.resources.FindResourceByID(ctx, resourceID)
	if err != nil {
		return "", err
	}

	attrs, err := e.attributes.FindAttributes(ctx, terraformgpt.AttributeFilter{
		ResourceID: &resourceID,
		SortBy:     terraformgpt.SortByPosition,
	})
	if err != nil {
		return "", err
	}

	contextText := terraformgpt.FormatResource(res, attrs)

	if e.tokens != nil {
		count, err := e.tokens.CountTokens(ctx, contextText)
		if err != nil {
			return "", err
		}
		if count > maxContextTokens {
			return "", terraformgpt.Errorf(terraformgpt.EINVALID,
				"resource documentation too large (%d tokens)", count)
		}
	}

	prompt := BuildUserPrompt(res, contextText, language)
	config := BuildConfig(res.Provider)

	result, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", terraformgpt.Errorf(terraformgpt.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig(provider string) *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: fmt.Sprintf("You are an expert Terraform assistant specializing in the %s provider. "+
					"You receive structured documentation about a specific resource and its attributes "+
					"for a given provider version. Explain the resource and its attributes clearly and "+
					"accurately, without inventing attributes or versions that are not in the provided "+
					"context. If something is not present in the context, say that you don't have that "+
					"information. Highlight whether attributes are required or optional, mention from "+
					"which version they are available if given, and reference the provided documentation URL.",
					provider),
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the documentation context
// and the explanation request.
func BuildUserPrompt(res *terraformgpt.Resource, contextText, language string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain the Terraform resource '%s' for provider version '%s' in %s.\n\n",
		res.Name, res.Version, terraformgpt.LanguageName(language))
	sb.WriteString("Use the following documentation as your only source of truth:\n\n")
	sb.WriteString("<documentation>\n")
	sb.WriteString(contextText)
	sb.WriteString("</documentation>\n\n")
	sb.WriteString("Do not invent additional attributes or options. If you are unsure about " +
		"something because it is not in the context, say so explicitly.")
	return sb.String()
}
