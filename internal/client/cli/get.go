package cli

import (
	"context"
)

func (c *Cli) runGet(ctx context.Context, args []string) error {
	id, err := parseID(args, "jobtracker get <id>")
	if err != nil {
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	app, err := c.api.GetApplication(ctx, id)
	if err != nil {
		return c.apiError(ctx, "get application", err)
	}

	c.io.Println("=== Application Details ===")
	c.io.Println()
	printApplication(c.io, app)
	return nil
}
