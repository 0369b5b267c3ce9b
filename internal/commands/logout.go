package commands

import (
	"context"
	"fmt"

	"fooddesk/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Clear the stored session" }
func (logoutCmd) Usage() string       { return "logout" }
func (logoutCmd) Protected() bool     { return false }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	redirect, err := newSession(cfg).Logout()
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out.")
	// the store reports where to go next instead of navigating itself
	fmt.Fprintf(Out, "→ fdadmin %s <email>\n", redirect)
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
