package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	pkgapi "github.com/iudanet/jobtracker/pkg/api"
)

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "show":
		return c.runProfileShow(ctx)
	case "set":
		return c.runProfileSet(ctx, args)
	case "delete-account":
		return c.runDeleteAccount(ctx)
	default:
		return fmt.Errorf("unknown profile command: %s. Use: show, set, or delete-account", sub)
	}
}

func (c *Cli) runProfileShow(ctx context.Context) error {
	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	user, err := c.api.GetProfile(ctx)
	if err != nil {
		return c.apiError(ctx, "get profile", err)
	}

	c.io.Println("=== Profile ===")
	c.io.Println()
	printUser(c.io, user)
	return nil
}

func (c *Cli) runProfileSet(ctx context.Context, args []string) error {
	fs := c.newFlagSet("profile set")
	phone := fs.String("phone", "", "phone number")
	location := fs.String("location", "", "location")
	resume := fs.String("resume", "", "path to resume")
	linkedin := fs.String("linkedin", "", "LinkedIn URL")
	portfolio := fs.String("portfolio", "", "portfolio URL")
	bio := fs.String("bio", "", "short bio")
	skills := fs.String("skills", "", "comma separated list of skills")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	var req pkgapi.ProfileUpdateRequest
	fields := map[string]**string{
		"phone":     &req.Phone,
		"location":  &req.Location,
		"resume":    &req.ResumePath,
		"linkedin":  &req.LinkedInURL,
		"portfolio": &req.PortfolioURL,
		"bio":       &req.Bio,
	}
	values := map[string]*string{
		"phone":     phone,
		"location":  location,
		"resume":    resume,
		"linkedin":  linkedin,
		"portfolio": portfolio,
		"bio":       bio,
	}

	// В запрос попадают только явно заданные флаги
	visited := 0
	fs.Visit(func(fl *flag.Flag) {
		visited++
		if fl.Name == "skills" {
			list := splitSkills(*skills)
			req.Skills = &list
			return
		}
		v := strings.TrimSpace(*values[fl.Name])
		*fields[fl.Name] = &v
	})
	if visited == 0 {
		return errors.New("nothing to update, pass at least one flag")
	}

	if _, err := c.requireSession(ctx); err != nil {
		return err
	}

	user, err := c.api.UpdateProfile(ctx, req)
	if err != nil {
		return c.apiError(ctx, "update profile", err)
	}

	c.io.Println("✓ Profile updated!")
	c.io.Println()
	printUser(c.io, user)
	return nil
}

func splitSkills(raw string) []string {
	skills := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func (c *Cli) runDeleteAccount(ctx context.Context) error {
	authData, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("Account %s will be deactivated and all sessions revoked.\n", authData.Email)
	ok, err := c.confirm("Are you sure?")
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.api.DeleteAccount(ctx); err != nil {
		return c.apiError(ctx, "delete account", err)
	}
	// Сервер уже отозвал все сессии
	if err := c.session.Forget(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Account deactivated.")
	return nil
}
