package main

import (
	"fmt"

	"github.com/meronimo/terraformgpt"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		err := terraformgpt.Errorf(terraformgpt.EINVALID, "use --force to confirm deletion")
		printError(deps, err)
		return err
	}

	res, err := findStoredResource(deps, c.Resource, c.Version)
	if err != nil {
		printError(deps, err)
		return err
	}

	if err := deps.Resources.DeleteResource(deps.Ctx, res.ID); err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s_%s version %s\n", res.Provider, res.Name, res.Version)
	return nil
}
