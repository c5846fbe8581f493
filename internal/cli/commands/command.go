package commands

import (
	"CatalogBot/internal/config"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
)

// ErrUsage возвращается командой при неверных аргументах; диспетчер печатает её usage.
var ErrUsage = errors.New("usage")

// Коды завершения catalogctl.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Command описывает подкоманду операторского CLI.
type Command interface {
	// Name: имя, которое набирает оператор, например "grant".
	Name() string
	Description() string
	// Usage: строка вызова вместе с аргументами, например "grant <user_id> <role>".
	Usage() string
	// Run получает аргументы без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out: writer для вывода CLI, в тестах подменяется.
var Out io.Writer = os.Stdout

// RegisterCmd регистрирует команду; вызывается из init() файла команды.
// Имена регистронезависимы.
func RegisterCmd(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
}

func lookup(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

func sortedCommands() []Command {
	cmds := make([]Command, 0, len(registry))
	for _, c := range registry {
		cmds = append(cmds, c)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

// FormatGlobalUsage возвращает общую справку со списком команд.
func FormatGlobalUsage() string {
	var b strings.Builder
	b.WriteString("Catalog admin CLI\n\n")
	b.WriteString("Usage:\n  catalogctl [-d <dsn>] [-upload-dir <dir>] <command> [args]\n\n")
	b.WriteString("Commands:\n")

	tw := tabwriter.NewWriter(&b, 0, 4, 3, ' ', 0)
	for _, c := range sortedCommands() {
		_, _ = io.WriteString(tw, "  "+c.Usage()+"\t"+c.Description()+"\n")
	}
	_ = tw.Flush()
	return b.String()
}
