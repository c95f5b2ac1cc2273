package main

import (
	"fmt"

	"github.com/meronimo/terraformgpt"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := terraformgpt.ResourceFilter{}
	if c.Provider != "" {
		filter.Provider = &c.Provider
	}

	resources, err := deps.Resources.FindResources(deps.Ctx, filter)
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(resources) == 0 {
		fmt.Fprintln(deps.Stdout, "No resources stored. Use 'terraformgpt ingest' to add one.")
		return nil
	}

	for _, res := range resources {
		fmt.Fprintf(deps.Stdout, "%s  %s_%s  %s  %s\n",
			res.ID, res.Provider, res.Name, res.Version, res.DocURL)
	}

	return nil
}
