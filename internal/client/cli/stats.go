package cli

import (
	"context"

	"github.com/iudanet/jobtracker/internal/models"
)

func (c *Cli) runStats(ctx context.Context) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	stats, err := c.api.GetStats(ctx)
	if err != nil {
		return c.apiError(ctx, "get stats", err)
	}

	c.io.Println("=== Application Statistics ===")
	c.io.Println()
	c.io.Printf("Total applications: %d\n", stats.Total)
	c.io.Printf("This month:         %d\n", stats.ThisMonth)
	c.io.Printf("Response rate:      %.1f%%\n", stats.ResponseRate)

	if len(stats.StatusBreakdown) == 0 {
		return nil
	}

	c.io.Println()
	c.io.Println("By status:")
	// Фиксированный порядок статусов вместо порядка обхода map
	for _, status := range models.AllStatuses {
		if n, ok := stats.StatusBreakdown[string(status)]; ok {
			c.io.Printf("  %-13s %d\n", status, n)
		}
	}
	return nil
}
