package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/model"
	"PolicyDesk/internal/cli/panels"
)

type assignCmd struct{}

func (assignCmd) Name() string        { return "assign" }
func (assignCmd) Description() string { return "Assign a model to a user, department or grade" }
func (assignCmd) Usage() string {
	return "assign <user|department|grade> <target_id> <model_id> [default]"
}
func (assignCmd) Path() string { return "/admin/assignments" }

func (assignCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return ErrUsage
	}
	scope := args[0]
	switch scope {
	case model.ScopeUser, model.ScopeDepartment, model.ScopeGrade:
	default:
		return ErrUsage
	}
	target, err := parseID(args[1])
	if err != nil {
		return err
	}
	modelID, err := parseID(args[2])
	if err != nil {
		return err
	}
	isDefault := false
	if len(args) == 4 {
		if args[3] != "default" {
			return ErrUsage
		}
		isDefault = true
	}
	p := panels.NewAssignments(env.API, env.User().ID, env.panelOptions())
	msg, err := p.Assign(ctx, scope, target, modelID, isDefault)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, msg)
	return nil
}

func init() {
	RegisterCmd(assignCmd{})
}
