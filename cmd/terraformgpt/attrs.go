package main

import (
	"fmt"

	"github.com/meronimo/terraformgpt"
)

// Run executes the attrs command.
func (c *AttrsCmd) Run(deps *Dependencies) error {
	res, err := findStoredResource(deps, c.Resource, c.Version)
	if err != nil {
		printError(deps, err)
		return err
	}

	attrs, err := deps.Attributes.FindAttributes(deps.Ctx, terraformgpt.AttributeFilter{
		ResourceID: &res.ID,
		SortBy:     terraformgpt.SortByPosition,
	})
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprint(deps.Stdout, terraformgpt.FormatResource(res, attrs))
	return nil
}
