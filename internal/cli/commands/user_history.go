package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/panels"
)

type userHistoryCmd struct{}

func (userHistoryCmd) Name() string        { return "user-history" }
func (userHistoryCmd) Description() string { return "Browse chat history of users by department" }
func (userHistoryCmd) Usage() string       { return "user-history [department_id [user_id]]" }
func (userHistoryCmd) Path() string        { return "/admin/users-history" }

func (userHistoryCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) > 2 {
		return ErrUsage
	}
	p := panels.NewUserHistory(env.API, env.panelOptions())
	if err := p.Load(ctx); err != nil {
		return err
	}
	if len(args) == 0 {
		rows := [][]string{}
		for _, d := range p.Departments() {
			rows = append(rows, []string{itoa(d.ID), d.Name, fmt.Sprint(len(p.UsersIn(d.ID)))})
		}
		table([]string{"ID", "DEPARTMENT", "USERS"}, rows)
		return nil
	}
	dep, err := parseID(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		rows := [][]string{}
		for _, u := range p.UsersIn(dep) {
			rows = append(rows, []string{itoa(u.ID), u.Username, u.Role, u.GradeName})
		}
		table([]string{"ID", "USERNAME", "ROLE", "GRADE"}, rows)
		return nil
	}
	userID, err := parseID(args[1])
	if err != nil {
		return err
	}
	list, err := p.Select(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No chat history")
		return nil
	}
	printEntries(list)
	return nil
}

// printEntries печатает записи истории полностью.
func printEntries(list []model.HistoryEntry) {
	for _, h := range list {
		fmt.Fprintf(Out, "#%d %s", h.ID, h.Timestamp)
		if src := h.Source(); src != "" {
			fmt.Fprintf(Out, " [%s]", src)
		}
		fmt.Fprintf(Out, "\nQ: %s\nA: %s\n\n", h.UserMessage, h.AIResponse)
	}
}

func init() {
	RegisterCmd(userHistoryCmd{})
}
