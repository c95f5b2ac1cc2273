package main

import (
	"context"
	"fmt"
	"io"

	"github.com/meronimo/terraformgpt"
	"github.com/meronimo/terraformgpt/ingest"
	"github.com/meronimo/terraformgpt/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	Resources  terraformgpt.ResourceService
	Attributes terraformgpt.AttributeService
	Registry   terraformgpt.RegistryService
	Explainer  terraformgpt.Explainer
	Ingester   *ingest.Ingester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Ingest   IngestCmd   `cmd:"" help:"Ingest provider resource documentation"`
	Attrs    AttrsCmd    `cmd:"" help:"Show stored attributes for a resource"`
	Explain  ExplainCmd  `cmd:"" help:"Explain a resource using the stored documentation"`
	List     ListCmd     `cmd:"" help:"List stored resources"`
	Versions VersionsCmd `cmd:"" help:"List published provider versions"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a stored resource"`

	Verbose bool `short:"v" help:"Log requests to stderr"`
}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Resource    string `short:"r" help:"Resource name (e.g. azurerm_storage_account)"`
	All         bool   `help:"Ingest every resource the provider version publishes"`
	URL         string `help:"Ingest a single documentation page by URL"`
	Site        string `help:"Discover and ingest resource pages from a doc site"`
	Provider    string `short:"p" default:"azurerm" help:"Provider name"`
	Namespace   string `default:"hashicorp" help:"Registry namespace"`
	Version     string `short:"V" default:"latest" help:"Provider version"`
	Force       bool   `short:"f" help:"Replace already ingested resources"`
	Concurrency int    `short:"c" default:"5" help:"Concurrent ingest limit"`
}

// AttrsCmd is the "attrs" subcommand.
type AttrsCmd struct {
	Resource string `short:"r" required:"" help:"Resource name (e.g. azurerm_storage_account)"`
	Version  string `short:"V" help:"Provider version (defaults to newest stored)"`
}

// ExplainCmd is the "explain" subcommand.
type ExplainCmd struct {
	Resource string `short:"r" required:"" help:"Resource name (e.g. azurerm_storage_account)"`
	Version  string `short:"V" help:"Provider version (defaults to newest stored)"`
	Language string `short:"l" default:"en" help:"Language code for the explanation (e.g. en, de)"`
	Model    string `help:"Gemini model to use"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Provider string `short:"p" help:"Only show resources for this provider"`
}

// VersionsCmd is the "versions" subcommand.
type VersionsCmd struct {
	Provider  string `short:"p" default:"azurerm" help:"Provider name"`
	Namespace string `default:"hashicorp" help:"Registry namespace"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Resource string `short:"r" required:"" help:"Resource name (e.g. azurerm_storage_account)"`
	Version  string `short:"V" help:"Provider version (defaults to newest stored)"`
	Force    bool   `help:"Confirm deletion"`
}

// findStoredResource looks up a stored resource by its fully-qualified name.
// An empty version resolves to the newest stored version for the resource.
func findStoredResource(deps *Dependencies, name, version string) (*terraformgpt.Resource, error) {
	provider, bare := terraformgpt.SplitResourceName(name)
	if provider == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID,
			"resource name %q must include a provider prefix (e.g. azurerm_storage_account)", name)
	}

	filter := terraformgpt.ResourceFilter{Provider: &provider, Name: &bare}
	if version != "" {
		filter.Version = &version
	}

	resources, err := deps.Resources.FindResources(deps.Ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		if version != "" {
			return nil, terraformgpt.Errorf(terraformgpt.ENOTFOUND,
				"resource %q version %q not found. Use 'terraformgpt ingest' to ingest it.", name, version)
		}
		return nil, terraformgpt.Errorf(terraformgpt.ENOTFOUND,
			"resource %q not found. Use 'terraformgpt ingest' to ingest it.", name)
	}
	if version != "" {
		return resources[0], nil
	}

	versions := make([]string, 0, len(resources))
	byVersion := make(map[string]*terraformgpt.Resource, len(resources))
	for _, res := range resources {
		versions = append(versions, res.Version)
		byVersion[res.Version] = res
	}
	latest, err := terraformgpt.LatestVersion(versions)
	if err != nil {
		return nil, err
	}
	return byVersion[latest], nil
}

// printError writes a user-facing error message to stderr.
func printError(deps *Dependencies, err error) {
	fmt.Fprintf(deps.Stderr, "error: %s\n", terraformgpt.ErrorMessage(err))
}
