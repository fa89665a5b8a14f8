package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"PolicyDesk/internal/cli/panels"
)

type modelsCmd struct{}

func (modelsCmd) Name() string        { return "models" }
func (modelsCmd) Description() string { return "List, create and load model configurations" }
func (modelsCmd) Usage() string {
	return "models list\n" +
		"models create -collection <id> -prompt <text> [-path <gguf>] [-ctx N] [-threads N] [-temp F]\n" +
		"models load <id>"
}
func (modelsCmd) Path() string { return "/admin/models" }

// parseModelForm разбирает флаги формы поверх значений по умолчанию.
func parseModelForm(args []string) (panels.ModelForm, error) {
	f := panels.DefaultModelForm()
	fs := flag.NewFlagSet("models create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.ModelPath, "path", f.ModelPath, "path to the GGUF model")
	fs.Int64Var(&f.CollectionID, "collection", 0, "collection id")
	fs.StringVar(&f.CustomPrompt, "prompt", "", "custom prompt")
	fs.IntVar(&f.ContextSize, "ctx", f.ContextSize, "max context tokens")
	fs.IntVar(&f.Threads, "threads", f.Threads, "threads")
	fs.Float64Var(&f.Temperature, "temp", f.Temperature, "temperature")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return f, ErrUsage
	}
	return f, nil
}

func (modelsCmd) Run(ctx context.Context, env *Env, args []string) error {
	op, rest, err := sub(args)
	if err != nil {
		return err
	}
	p := panels.NewModels(env.API, env.User().ID, env.panelOptions())
	switch op {
	case "list":
		if err := p.Load(ctx); err != nil {
			return err
		}
		rows := [][]string{}
		for _, m := range p.Items() {
			rows = append(rows, []string{itoa(m.ID), m.Name, panels.StatusOf(m), m.ModelPath, fmt.Sprint(m.MaxContextTokens), fmt.Sprint(m.Temperature)})
		}
		table([]string{"ID", "NAME", "STATUS", "PATH", "CTX", "TEMP"}, rows)
	case "create":
		form, err := parseModelForm(rest)
		if err != nil {
			return err
		}
		// коллекции нужны для пути хранилища
		if err := p.Load(ctx); err != nil {
			return err
		}
		msg, err := p.Create(ctx, form)
		if err != nil {
			return err
		}
		fmt.Fprintln(Out, msg)
	case "load":
		if len(rest) != 1 {
			return ErrUsage
		}
		id, err := parseID(rest[0])
		if err != nil {
			return err
		}
		msg, err := p.LoadModel(ctx, id)
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
	RegisterCmd(modelsCmd{})
}
