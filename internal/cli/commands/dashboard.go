package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/panels"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Summary of departments, users, collections and models" }
func (dashboardCmd) Usage() string       { return "dashboard" }
func (dashboardCmd) Path() string        { return "/admin/dashboard" }

func (dashboardCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	s := panels.NewDashboard(env.API, env.User().ID, env.panelOptions()).Load(ctx)
	fmt.Fprintf(Out, "Departments: %d\nUsers: %d\nCollections: %d\nModels: %d\n",
		len(s.Departments), s.TotalUsers(), len(s.Collections), len(s.Models))
	rows := make([][]string, 0, len(s.Departments))
	for _, d := range s.Departments {
		rows = append(rows, []string{d.Department.Name, fmt.Sprint(len(d.Users))})
	}
	if len(rows) > 0 {
		fmt.Fprintln(Out)
		table([]string{"DEPARTMENT", "USERS"}, rows)
	}
	for _, e := range s.Errors {
		fmt.Fprintf(Out, "warning: %s\n", e)
	}
	return nil
}

func init() {
	RegisterCmd(dashboardCmd{})
}
