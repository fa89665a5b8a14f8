package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/status"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show backend readiness (database, model)" }
func (statusCmd) Usage() string       { return "status" }
func (statusCmd) Path() string        { return "" }

func (statusCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	m := status.NewMonitor(env.API)
	if err := m.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(Out, m.Line())
	if d := m.Duration(); d != "" {
		fmt.Fprintf(Out, "Checked in %s\n", d)
	}
	return nil
}

func init() {
	RegisterCmd(statusCmd{})
}
