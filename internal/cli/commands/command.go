package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command represents a CLI subcommand.
type Command interface {
	// Name returns the command name as typed by the user, e.g. "login".
	Name() string
	// Description is a short human-readable description shown in help.
	Description() string
	// Usage returns the exact usage string, e.g. "login <username> <password> [role]".
	Usage() string
	// Path — маршрут экрана, на котором живёт команда ("/admin/users").
	// Пустая строка: команда доступна без проверки роли.
	Path() string
	// Run executes the command with provided args (without the command name).
	Run(ctx context.Context, env *Env, args []string) error
}

// registry holds available commands by name.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// In — источник ввода для подтверждений и интерактивного чата.
var In io.Reader = os.Stdin

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get returns a command by name.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List returns all registered commands sorted by name.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage builds a help text for all commands.
func FormatGlobalUsage() string {
	lines := []string{
		"PolicyDesk CLI",
		"",
		"Usage:",
		"  pdcli [--api-base <host:port>|URL] [--yes] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		usage := strings.Split(c.Usage(), "\n")
		lines = append(lines, fmt.Sprintf("  %-44s %s", usage[0], c.Description()))
		for _, u := range usage[1:] {
			lines = append(lines, "  "+u)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
