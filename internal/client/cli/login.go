package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.argOrInput(args, "Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, _, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	auth, err := c.session.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email: %s\n", auth.Email)
	c.io.Printf("Session expires: %s\n", time.Unix(auth.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}
