package commands

import (
	"context"
	"fmt"

	"PolicyDesk/internal/cli/auth"
	"PolicyDesk/internal/cli/router"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Sign in as staff (default) or admin" }
func (loginCmd) Usage() string       { return "login <username> <password> [staff|admin]" }
func (loginCmd) Path() string        { return router.PathLogin }

func (loginCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	role := ""
	if len(args) == 3 {
		role = args[2]
	}
	id, err := auth.Login(ctx, env.API, env.Session, args[0], args[1], role)
	if err != nil {
		return err
	}
	env.Logger.Infow("signed in", "user_id", id.ID, "role", id.Role)
	fmt.Fprintf(Out, "Logged in as %s (%s), home %s\n", id.Username, id.Role, router.Home(id.Role))
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Sign out and forget the stored session" }
func (logoutCmd) Usage() string       { return "logout" }
func (logoutCmd) Path() string        { return "" }

func (logoutCmd) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := env.Session.Logout(ctx, env.API); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the signed-in user" }
func (whoamiCmd) Usage() string       { return "whoami" }
func (whoamiCmd) Path() string        { return "" }

func (whoamiCmd) Run(_ context.Context, env *Env, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	id := env.Identity()
	if id == nil {
		fmt.Fprintln(Out, "Not logged in")
		return nil
	}
	fmt.Fprintf(Out, "%s (id %d, %s)\n", id.Username, id.ID, id.Role)
	return nil
}

type themeCmd struct{}

func (themeCmd) Name() string        { return "theme" }
func (themeCmd) Description() string { return "Show, set or toggle the colour theme" }
func (themeCmd) Usage() string       { return "theme [light|dark|toggle]" }
func (themeCmd) Path() string        { return "" }

func (themeCmd) Run(_ context.Context, env *Env, args []string) error {
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "toggle":
		if _, err := env.Session.ToggleTheme(); err != nil {
			return err
		}
	case len(args) == 1:
		if err := env.Session.SetTheme(args[0]); err != nil {
			return err
		}
	default:
		return ErrUsage
	}
	fmt.Fprintf(Out, "Theme: %s\n", env.Session.Theme())
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(whoamiCmd{})
	RegisterCmd(themeCmd{})
}
