package main

import (
	"fmt"

	"github.com/meronimo/terraformgpt"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	ing := deps.Ingester
	ing.Progress = func(p terraformgpt.IngestProgress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n",
				p.Completed, p.Total, p.Resource, terraformgpt.ErrorMessage(p.Error))
			return
		}
		fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", p.Completed, p.Total, p.Resource)
	}

	switch {
	case c.All:
		result, err := ing.IngestAll(deps.Ctx, c.Provider, c.Version)
		if err != nil {
			printError(deps, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Ingested %d resources (%d skipped, %d failed)\n",
			result.Ingested, result.Skipped, result.Failed)
		return nil

	case c.Site != "":
		result, err := ing.IngestSite(deps.Ctx, c.Site, c.Provider, c.Version)
		if err != nil {
			printError(deps, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Ingested %d resources (%d skipped, %d failed)\n",
			result.Ingested, result.Skipped, result.Failed)
		return nil

	case c.URL != "":
		res, err := ing.IngestPage(deps.Ctx, c.URL, c.Provider, c.Version)
		if err != nil {
			printError(deps, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Ingested %s_%s version %s\n", res.Provider, res.Name, res.Version)
		return nil

	case c.Resource != "":
		res, err := ing.IngestResource(deps.Ctx, c.Resource, c.Provider, c.Version)
		if err != nil {
			printError(deps, err)
			return err
		}
		fmt.Fprintf(deps.Stdout, "Ingested %s_%s version %s\n", res.Provider, res.Name, res.Version)
		return nil

	default:
		err := terraformgpt.Errorf(terraformgpt.EINVALID,
			"specify --resource, --all, --url, or --site")
		printError(deps, err)
		return err
	}
}
