package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	var status string
	if len(args) > 0 {
		status = args[0]
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	apps, err := c.api.ListApplications(ctx, status)
	if err != nil {
		return c.apiError(ctx, "list applications", err)
	}

	if len(apps) == 0 {
		if status != "" {
			c.io.Printf("No applications with status %q.\n", status)
			return nil
		}
		c.io.Println("No applications found.")
		c.io.Println()
		c.io.Println("Use 'jobtracker add' to add your first application.")
		return nil
	}

	c.io.Printf("Found %d application(s):\n", len(apps))
	c.io.Println()

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tDATE\tSTATUS\tCOMPANY\tTITLE")
	for _, app := range apps {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			app.ID, app.ApplicationDate.Local().Format(dateLayout), app.Status, app.CompanyName, app.JobTitle)
	}
	return w.Flush()
}
