package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/panels"
)

type usersCmd struct{}

func (usersCmd) Name() string        { return "users" }
func (usersCmd) Description() string { return "Manage users" }
func (usersCmd) Usage() string {
	return "users list\n" +
		"users add <username> <password> <staff|admin> <department_id> <grade_id>\n" +
		"users update <id> <username> [role] [department_id] [grade_id]\n" +
		"users delete <id>"
}
func (usersCmd) Path() string { return "/admin/users" }

func (usersCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest, err := sub(args)
	if err != nil {
		return err
	}
	p := panels.NewUsers(env.API, env.panelOptions())
	switch op {
	case "list":
		if err := p.Load(ctx); err != nil {
			return err
		}
		rows := [][]string{}
		for _, u := range p.Items() {
			rows = append(rows, []string{itoa(u.ID), u.Username, u.Role, u.DepartmentName, u.GradeName})
		}
		table([]string{"ID", "USERNAME", "ROLE", "DEPARTMENT", "GRADE"}, rows)
	case "add":
		if len(rest) != 5 {
			return ErrUsage
		}
		dep, err := parseID(rest[3])
		if err != nil {
			return err
		}
		grade, err := parseID(rest[4])
		if err != nil {
			return err
		}
		if err := p.Load(ctx); err != nil {
			env.Logger.Debugw("users panel preload failed", "error", err)
		}
		id, err := p.Create(ctx, model.NewUser{
			Username: rest[0], Password: rest[1], Role: rest[2], DepartmentID: dep, GradeID: grade,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "User created: %d\n", id)
	case "update":
		if len(rest) < 2 || len(rest) > 5 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		u := model.UserUpdate{Username: rest[1]}
		if len(rest) > 2 {
			u.Role = rest[2]
		}
		if len(rest) > 3 {
			if u.DepartmentID, err = parseID(rest[3]); err != nil {
				return err
			}
		}
		if len(rest) > 4 {
			if u.GradeID, err = parseID(rest[4]); err != nil {
				return err
			}
		}
		if err := p.Update(ctx, id, u); err != nil {
			return err
		}
		fmt.Fprintln(Out, "User updated")
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
		fmt.Fprintln(Out, "User deleted")
	default:
		return ErrUsage
	}
	return nil
}

func init() {
	RegisterCmd(usersCmd{})
}
