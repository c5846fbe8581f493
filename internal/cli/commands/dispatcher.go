package commands

import (
	"CatalogBot/internal/config"
	"context"
	"errors"
	"fmt"
)

// Dispatch выполняет команду из args и возвращает код завершения процесса.
// Пустой вызов, help и неизвестные команды печатают справку.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitUsage
	}

	switch args[0] {
	case "help", "-h", "--help":
		return help(args[1:])
	}

	c, ok := lookup(args[0])
	if !ok {
		return unknown(args[0])
	}

	err := c.Run(ctx, cfg, args[1:])
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrUsage) {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return ExitUsage
	}
	fmt.Fprintf(Out, "%s error: %v\n", c.Name(), err)
	return ExitFailure
}

// help обрабатывает "catalogctl help [command]".
func help(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return ExitOK
	}
	c, ok := lookup(args[0])
	if !ok {
		return unknown(args[0])
	}
	fmt.Fprintf(Out, "Usage: %s\n%s\n", c.Usage(), c.Description())
	return ExitOK
}

func unknown(name string) int {
	fmt.Fprintf(Out, "Unknown command: %s\n\n%s", name, FormatGlobalUsage())
	return ExitUsage
}
