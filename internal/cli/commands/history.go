package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/chat"
	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/panels"
	"PolicyDesk/internal/cli/router"
)

type historyCmd struct{}

func (historyCmd) Name() string        { return "history" }
func (historyCmd) Description() string { return "Your chat history" }
func (historyCmd) Usage() string       { return "history [list|show <id>|delete <id>]" }
func (historyCmd) Path() string        { return router.PathRoot }

// chatScope выбирает адресацию чата по экрану роли.
func chatScope(v router.View) chat.Scope {
	if v == router.ViewAdmin {
		return chat.ScopeModel
	}
	return chat.ScopeCollection
}

func (historyCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest := "list", args
	if len(args) > 0 {
		op, rest = args[0], args[1:]
	}
	ctl := chat.New(chat.Config{Client: env.API, User: env.User(), Scope: chatScope(env.View), Logger: env.Logger})
	if err := ctl.RefreshHistory(ctx); err != nil {
		return err
	}
	switch op {
	case "list":
		if len(rest) != 0 {
			return ErrUsage
		}
		list := ctl.History()
		if len(list) == 0 {
			fmt.Fprintln(Out, "No chat history")
			return nil
		}
		rows := make([][]string, 0, len(list))
		for _, h := range list {
			rows = append(rows, []string{itoa(h.ID), h.Timestamp, h.Source(), preview(h.UserMessage, 60)})
		}
		table([]string{"ID", "TIME", "SOURCE", "QUESTION"}, rows)
		if d := ctl.HistoryDuration(); d != "" {
			fmt.Fprintf(Out, "Loaded in %s\n", d)
		}
	case "show":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		if !ctl.Select(id) {
			return fmt.Errorf("history entry %d not found", id)
		}
		h, _ := ctl.Selected()
		printEntries([]model.HistoryEntry{h})
	case "delete":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		if !env.Confirmer().Confirm("Are you sure you want to delete this conversation?") {
			return panels.ErrNotConfirmed
		}
		if err := ctl.DeleteHistory(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(Out, "Conversation deleted")
	default:
		return ErrUsage
	}
	return nil
}

// preview обрезает текст до n рун.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func init() {
	RegisterCmd(historyCmd{})
}
