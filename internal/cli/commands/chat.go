package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PolicyDesk/internal/cli/chat"
	"PolicyDesk/internal/cli/router"
	"PolicyDesk/internal/cli/shell"
)

type chatCmd struct{}

func (chatCmd) Name() string        { return "chat" }
func (chatCmd) Description() string { return "Interactive chat with the policy assistant" }
func (chatCmd) Usage() string       { return "chat" }
func (chatCmd) Path() string        { return router.PathRoot }

const chatHelp = `Commands:
  /targets      list models or collections
  /use <id>     select a model or collection
  /status       show readiness
  /history      show recent questions
  /quit         leave the chat
Anything else is sent as a question.`

func (chatCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	var view *shell.ChatView
	if env.View == router.ViewAdmin {
		view = shell.NewAdminChat(ctx, env.ShellConfig())
	} else {
		view = shell.NewStaff(ctx, env.ShellConfig())
	}
	view.Start()
	defer view.Close()
	// первая проверка статуса до приглашения ввода
	if err := view.Monitor.Refresh(ctx); err != nil {
		env.Logger.Debugw("initial status check failed", "error", err)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		for {
			line, err := env.ReadLine()
			if err != nil {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintf(Out, "Chat as %s. Type /help for commands.\n", env.User().Username)
	printTargets(view.Chat)
	for {
		fmt.Fprint(Out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(Out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(Out)
				return nil
			}
			line = strings.TrimSpace(l)
		}
		if line == "" {
			continue
		}
		if quit := chatLine(ctx, view, line); quit {
			return nil
		}
	}
}

// chatLine обрабатывает одну строку ввода; true — выйти из чата.
func chatLine(ctx context.Context, view *shell.ChatView, line string) bool {
	ctl := view.Chat
	if strings.HasPrefix(line, "/") {
		fields := strings.Fields(line)
		switch fields[0] {
		case "/quit", "/exit":
			return true
		case "/help":
			fmt.Fprintln(Out, chatHelp)
		case "/targets":
			printTargets(ctl)
		case "/use":
			if len(fields) != 2 {
				fmt.Fprintln(Out, "Usage: /use <id>")
				break
			}
			id, err := parseID(fields[1])
			if err != nil {
				fmt.Fprintln(Out, "Usage: /use <id>")
				break
			}
			ctl.SetTarget(id)
			fmt.Fprintf(Out, "Selected %d\n", id)
		case "/status":
			if view.Monitor.Checked() {
				fmt.Fprintln(Out, view.Monitor.Line())
			} else {
				fmt.Fprintln(Out, "Status not checked yet")
			}
		case "/history":
			for _, h := range ctl.History() {
				fmt.Fprintf(Out, "#%d %s %s\n", h.ID, h.Timestamp, preview(h.UserMessage, 60))
			}
		default:
			fmt.Fprintf(Out, "Unknown chat command: %s\n", fields[0])
		}
		return false
	}

	msg, err := ctl.Send(ctx, line)
	switch {
	case errors.Is(err, chat.ErrNotReady):
		fmt.Fprintf(Out, "System is not ready yet (%s)\n", view.Monitor.Line())
		return false
	case err != nil:
		fmt.Fprintln(Out, err)
		return false
	}
	fmt.Fprintln(Out, msg.Text)
	if d := ctl.LastDuration(); d != "" && msg.Sender == chat.SenderAI {
		fmt.Fprintf(Out, "(%s)\n", d)
	}
	return false
}

func printTargets(ctl *chat.Controller) {
	targets := ctl.Targets()
	if len(targets) == 0 {
		fmt.Fprintln(Out, "No models or collections available")
		return
	}
	selected := ctl.Target()
	for _, t := range targets {
		mark := " "
		if t.ID == selected {
			mark = "*"
		}
		fmt.Fprintf(Out, "%s %d %s\n", mark, t.ID, t.Name)
	}
}

func init() {
	RegisterCmd(chatCmd{})
}
