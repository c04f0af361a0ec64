package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	var f applicationFlags
	fs := c.newFlagSet("add")
	f.bind(fs, true)
	if err := f.parse(fs, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	// Обязательные поля запрашиваем интерактивно, если они не заданы флагами
	var err error
	if f.title == "" {
		if f.title, err = c.io.ReadInput("Job title: "); err != nil {
			return fmt.Errorf("failed to read job title: %w", err)
		}
	}
	if f.company == "" {
		if f.company, err = c.io.ReadInput("Company: "); err != nil {
			return fmt.Errorf("failed to read company: %w", err)
		}
	}

	app, err := c.api.CreateApplication(ctx, f.createRequest())
	if err != nil {
		return c.apiError(ctx, "create application", err)
	}

	c.io.Println("✓ Application added!")
	c.io.Println()
	printApplication(c.io, app)
	return nil
}

func (c *Cli) runEdit(ctx context.Context, args []string) error {
	const usage = "jobtracker edit <id> [-title ...] [-company ...] [-notes ...]"

	id, err := parseID(args, usage)
	if err != nil {
		return err
	}

	var f applicationFlags
	fs := c.newFlagSet("edit")
	f.bind(fs, false)
	if err := f.parse(fs, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	req, err := f.updateRequest()
	if err != nil {
		return err
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	app, err := c.api.UpdateApplication(ctx, id, req)
	if err != nil {
		return c.apiError(ctx, "update application", err)
	}

	c.io.Println("✓ Application updated!")
	c.io.Println()
	printApplication(c.io, app)
	return nil
}
