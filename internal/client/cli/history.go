package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/iudanet/jobtracker/internal/models"
	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

func (c *Cli) runSetStatus(ctx context.Context, args []string) error {
	const usage = "jobtracker set-status <id> <status> [notes]"

	id, err := parseID(args, usage)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("missing status. Usage: %s", usage)
	}
	// Проверяем статус до обращения к серверу
	status, err := models.ParseStatus(args[1])
	if err != nil {
		return err
	}

	req := pkgapi.StatusUpdateRequest{Status: string(status)}
	if len(args) > 2 {
		req.Notes = optional(strings.Join(args[2:], " "))
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	app, err := c.api.UpdateStatus(ctx, id, req)
	if err != nil {
		return c.apiError(ctx, "update status", err)
	}

	c.io.Printf("✓ Application %d (%s at %s) is now %s\n", app.ID, app.JobTitle, app.CompanyName, app.Status)
	return nil
}

func (c *Cli) runHistory(ctx context.Context, args []string) error {
	id, err := parseID(args, "jobtracker history <id>")
	if err != nil {
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	history, err := c.api.GetHistory(ctx, id)
	if err != nil {
		return c.apiError(ctx, "get history", err)
	}

	c.io.Printf("=== Status History of Application %d ===\n", id)
	c.io.Println()

	w := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CHANGED AT\tSTATUS\tNOTES")
	for _, entry := range history {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
			entry.ChangedAt.Local().Format(dateLayout), entry.Status, deref(entry.Notes))
	}
	return w.Flush()
}
