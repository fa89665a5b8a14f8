package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"PolicyDesk/internal/cli/panels"
	"PolicyDesk/internal/cli/router"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, env *Env, args []string) int {
	// If user passed global --help after flags parsing, show global usage
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" { // pdcli help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	if !guard(c, env) {
		return 1
	}

	err := c.Run(ctx, env, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	case errors.Is(err, panels.ErrNotConfirmed):
		fmt.Fprintln(Out, "Cancelled")
		return 1
	default:
		fmt.Fprintf(Out, "%s error: %s\n", name, strings.TrimPrefix(panels.Message(err, "request failed"), "Error: "))
		return 1
	}
}

// guard разрешает маршрут команды для текущей личности.
// Путь "/" означает «домашний экран любой роли»: нужна только аутентификация.
func guard(c Command, env *Env) bool {
	path := c.Path()
	if path == "" {
		return true
	}
	d := router.Resolve(path, env.Identity())
	env.View = d.View
	switch {
	case path == router.PathRoot && d.View != router.ViewLogin:
		return true
	case !d.Redirected:
		return true
	case d.View == router.ViewLogin:
		fmt.Fprintf(Out, "Not allowed at %s: redirected to %s (login required)\n", path, d.Path)
	default:
		fmt.Fprintf(Out, "Not allowed at %s: redirected to %s\n", path, d.Path)
	}
	return false
}
