package cli

import (
	"context"
	"fmt"
)

// Run выполняет команду и возвращает ошибку для вывода пользователю
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx, args)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "edit":
		return c.runEdit(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "set-status":
		return c.runSetStatus(ctx, args)
	case "history":
		return c.runHistory(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "stats":
		return c.runStats(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
