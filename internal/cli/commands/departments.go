package commands

import (
	"context"
	"fmt"
	"strings"

	"PolicyDesk/internal/cli/panels"
)

type departmentsCmd struct{}

func (departmentsCmd) Name() string        { return "departments" }
func (departmentsCmd) Description() string { return "Manage departments" }
func (departmentsCmd) Usage() string {
	return "departments list\n" +
		"departments add <name> [description]\n" +
		"departments rename <id> <name>\n" +
		"departments delete <id>"
}
func (departmentsCmd) Path() string { return "/admin/departments" }

func (departmentsCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest, err := sub(args)
	if err != nil {
		return err
	}
	p := panels.NewDepartments(env.API, env.panelOptions())
	switch op {
	case "list":
		if err := p.Load(ctx); err != nil {
			return err
		}
		rows := [][]string{}
		for _, d := range p.Items() {
			rows = append(rows, []string{itoa(d.ID), d.Name, d.Description})
		}
		table([]string{"ID", "NAME", "DESCRIPTION"}, rows)
	case "add":
		if len(rest) < 1 {
			return ErrUsage
		}
		id, err := p.Create(ctx, rest[0], strings.Join(rest[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Department created: %d\n", id)
	case "rename":
		if len(rest) < 2 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		if err := p.Update(ctx, id, strings.Join(rest[1:], " ")); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Department updated")
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		if err := p.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Department deleted")
	default:
		return ErrUsage
	}
	return nil
}

func init() {
	RegisterCmd(departmentsCmd{})
}
