package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/jobtracker/internal/client/api"
	"github.com/iudanet/jobtracker/internal/client/auth"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	authData, err := c.session.Stored(ctx)
	switch {
	case errors.Is(err, auth.ErrNotAuthenticated):
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'jobtracker login' to authenticate.")
	case err != nil:
		return fmt.Errorf("failed to get auth data: %w", err)
	default:
		expiresAt := time.Unix(authData.ExpiresAt, 0)
		remaining := time.Until(expiresAt)

		c.io.Println("Status: Authenticated")
		c.io.Printf("Email: %s\n", authData.Email)
		c.io.Printf("Server: %s\n", authData.ServerURL)
		c.io.Printf("Session expires: %s\n", expiresAt.Format(time.RFC3339))
		if remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
			c.checkServerSession(ctx)
		} else {
			c.io.Println("⚠️  Session has expired. Please login again.")
		}
	}

	c.io.Println()
	// Недоступность сервера не ошибка команды status
	health, err := c.api.Health(ctx)
	if err != nil {
		c.io.Printf("Server: unavailable (%v)\n", err)
		return nil
	}
	c.io.Printf("Server: %s", health.Status)
	if health.Version != "" {
		c.io.Printf(" (version %s)", health.Version)
	}
	c.io.Println()

	return nil
}

// checkServerSession сверяет локальную сессию с сервером.
// Отозванная сессия удаляется локально
func (c *Cli) checkServerSession(ctx context.Context) {
	if _, err := c.session.Current(ctx); err != nil {
		return
	}
	me, err := c.api.Me(ctx)
	switch {
	case api.IsUnauthorized(err):
		_ = c.session.Forget(ctx)
		c.io.Println("⚠️  Session was revoked on the server. Please login again.")
	case err != nil:
		c.io.Printf("Session check: unavailable (%v)\n", err)
	default:
		c.io.Printf("Session check: confirmed for user #%d\n", me.ID)
	}
}
