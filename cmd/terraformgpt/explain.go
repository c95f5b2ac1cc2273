package main

import "fmt"

// Run executes the explain command.
func (c *ExplainCmd) Run(deps *Dependencies) error {
	res, err := findStoredResource(deps, c.Resource, c.Version)
	if err != nil {
		printError(deps, err)
		return err
	}

	answer, err := deps.Explainer.Explain(deps.Ctx, res.ID, c.Language)
	if err != nil {
		printError(deps, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, answer)
	return nil
}
