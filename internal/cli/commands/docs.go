package commands

import (
	"context"
	"fmt"
	"strings"

	"PolicyDesk/internal/cli/panels"
)

type docsCmd struct{}

func (docsCmd) Name() string        { return "docs" }
func (docsCmd) Description() string { return "Manage document collections" }
func (docsCmd) Usage() string {
	return "docs list\n" +
		"docs upload <collection> <file>...\n" +
		"docs rm-file <collection> <file>\n" +
		"docs rm-collection <collection>"
}
func (docsCmd) Path() string { return "/admin/documents" }

func (docsCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest, err := sub(args)
	if err != nil {
		return err
	}
	p := panels.NewCollections(env.API, env.User().ID, env.panelOptions())
	switch op {
	case "list":
		if err := p.Load(ctx); err != nil {
			return err
		}
		rows := [][]string{}
		for _, c := range p.Items() {
			rows = append(rows, []string{itoa(c.ID), c.Name, fmt.Sprint(len(c.Files)), strings.Join(c.Files, ", ")})
		}
		table([]string{"ID", "COLLECTION", "FILES", "NAMES"}, rows)
	case "upload":
		if len(rest) < 2 {
			return ErrUsage
		}
		res, err := p.Upload(ctx, rest[0], rest[1:])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, res.Message)
	case "rm-file":
		if len(rest) != 2 {
			return ErrUsage
		}
		msg, err := p.DeleteFile(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, msg)
	case "rm-collection":
		if len(rest) != 1 {
			return ErrUsage
		}
		msg, err := p.DeleteCollection(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, msg)
	default:
		return ErrUsage
	}
	return nil
}

func init() {
	RegisterCmd(docsCmd{})
}
