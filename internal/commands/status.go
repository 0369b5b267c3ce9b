package commands

import (
	"context"
	"fmt"
	"time"

	"fooddesk/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the current session" }
func (statusCmd) Usage() string       { return "status" }
func (statusCmd) Protected() bool     { return false }

func (statusCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess := newSession(cfg)
	if !sess.IsLoggedIn() {
		fmt.Fprintln(Out, "Not logged in.")
		return nil
	}
	fmt.Fprintln(Out, "Logged in.")
	if user := sess.GetUser(); user != nil {
		fmt.Fprintf(Out, "  user:  %s", user.Str("name"))
		if email := user.Str("email"); email != "" {
			fmt.Fprintf(Out, " <%s>", email)
		}
		fmt.Fprintln(Out)
		if role := user.Str("role"); role != "" {
			fmt.Fprintf(Out, "  role:  %s\n", role)
		}
	}
	// best effort: the token is opaque, but when it happens to be a JWT the
	// expiry is worth showing
	if exp, ok := sess.TokenExpiry(); ok {
		fmt.Fprintf(Out, "  token: expires %s\n", exp.Format(time.RFC3339))
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
