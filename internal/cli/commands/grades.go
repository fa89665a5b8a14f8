package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/panels"
)

type gradesCmd struct{}

func (gradesCmd) Name() string        { return "grades" }
func (gradesCmd) Description() string { return "Manage grades" }
func (gradesCmd) Usage() string {
	return "grades list\n" +
		"grades add <name> <level> [description]\n" +
		"grades update <id> <name> <level> [description]\n" +
		"grades delete <id>"
}
func (gradesCmd) Path() string { return "/admin/grades" }

// gradeArgs разбирает <name> <level> [description].
func gradeArgs(args []string) (model.Grade, error) {
	if len(args) < 2 {
		return model.Grade{}, ErrUsage
	}
	level, err := strconv.Atoi(args[1])
	if err != nil {
		return model.Grade{}, ErrUsage
	}
	return model.Grade{Name: args[0], Level: level, Description: strings.Join(args[2:], " ")}, nil
}

func (gradesCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest, err := sub(args)
	if err != nil {
		return err
	}
	p := panels.NewGrades(env.API, env.panelOptions())
	switch op {
	case "list":
		if err := p.Load(ctx); err != nil {
			return err
		}
		rows := [][]string{}
		for _, g := range p.Items() {
			used := ""
			if p.InUse(g.ID) {
				used = "yes"
			}
			rows = append(rows, []string{itoa(g.ID), g.Name, strconv.Itoa(g.Level), used, g.Description})
		}
		table([]string{"ID", "NAME", "LEVEL", "IN USE", "DESCRIPTION"}, rows)
	case "add":
		g, err := gradeArgs(rest)
		if err != nil {
			return err
		}
		id, err := p.Create(ctx, g)
		if err != nil {
			return err
		}
		fmt.Fprintf(Out, "Grade created: %d\n", id)
	case "update":
		if len(rest) < 3 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		g, err := gradeArgs(rest[1:])
		if err != nil {
			return err
		}
		if err := p.Update(ctx, id, g); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Grade updated")
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		// список пользователей нужен для проверки «грейд назначен»
		if err := p.Load(ctx); err != nil {
			return err
		}
		if err := p.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Grade deleted")
	default:
		return ErrUsage
	}
	return nil
}

func init() {
	RegisterCmd(gradesCmd{})
}
