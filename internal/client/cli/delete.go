package cli

import (
	"context"
	"errors"
	"flag"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	fs := c.newFlagSet("delete")
	yes := fs.Bool("yes", false, "delete without confirmation")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	id, err := parseID(fs.Args(), "jobtracker delete [-yes] <id>")
	if err != nil {
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	// Сначала получаем отклик для показа информации
	app, err := c.api.GetApplication(ctx, id)
	if err != nil {
		return c.apiError(ctx, "get application", err)
	}

	if !*yes {
		c.io.Println("About to delete:")
		c.io.Printf("  %s at %s (%s)\n", app.JobTitle, app.CompanyName, app.Status)
		c.io.Println()

		ok, err := c.confirm("Are you sure you want to delete this application and its history?")
		if err != nil {
			return err
		}
		if !ok {
			c.io.Println("Deletion cancelled.")
			return nil
		}
	}

	if err := c.api.DeleteApplication(ctx, id); err != nil {
		return c.apiError(ctx, "delete application", err)
	}

	c.io.Println("✓ Application deleted successfully!")
	return nil
}
