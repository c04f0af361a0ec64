package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.argOrInput(args, "Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email = strings.ToLower(strings.TrimSpace(email))

	// Проверяем доступность email до ввода остальных данных
	availability, err := c.api.CheckEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if !availability.Available {
		return fmt.Errorf("email %s is already registered", email)
	}

	firstName, err := c.io.ReadInput("First name: ")
	if err != nil {
		return fmt.Errorf("failed to read first name: %w", err)
	}
	lastName, err := c.io.ReadInput("Last name: ")
	if err != nil {
		return fmt.Errorf("failed to read last name: %w", err)
	}

	password, interactive, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}
	if interactive {
		confirmation, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		if confirmation != password {
			return fmt.Errorf("passwords do not match")
		}
	}

	c.io.Println()
	c.io.Println("Registering...")

	auth, err := c.session.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Email: %s\n", auth.Email)
	c.io.Printf("Session expires: %s\n", time.Unix(auth.ExpiresAt, 0).Format(time.RFC3339))

	return nil
}

// argOrInput берет значение из первого аргумента или запрашивает его
func (c *Cli) argOrInput(args []string, prompt string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return c.io.ReadInput(prompt)
}
