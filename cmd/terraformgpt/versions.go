package main

import (
	"fmt"

	"github.com/meronimo/terraformgpt"
)

// Run executes the versions command.
func (c *VersionsCmd) Run(deps *Dependencies) error {
	versions, err := deps.Registry.ListVersions(deps.Ctx, c.Namespace, c.Provider)
	if err != nil {
		printError(deps, err)
		return err
	}

	if len(versions) == 0 {
		fmt.Fprintf(deps.Stdout, "No published versions for %s/%s\n", c.Namespace, c.Provider)
		return nil
	}

	for _, v := range terraformgpt.SortVersions(versions) {
		fmt.Fprintln(deps.Stdout, v)
	}

	return nil
}
