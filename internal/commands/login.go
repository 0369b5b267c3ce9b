package commands

import (
	"context"
	"fmt"

	"fooddesk/internal/config"
	"fooddesk/internal/model"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Authenticate and store the session" }
func (loginCmd) Usage() string       { return "login <email>" }
func (loginCmd) Protected() bool     { return false }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	email := args[0]
	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	var resp model.LoginResponse
	client := newClient(cfg)
	if err := client.Post(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp); err != nil {
		return err
	}

	sess := newSession(cfg)
	if err := sess.SetUser(resp.User); err != nil {
		return err
	}
	if err := sess.SetLoggedIn(true); err != nil {
		return err
	}
	if err := sess.SetToken(resp.AccessToken); err != nil {
		return err
	}

	name := resp.User.Str("name")
	if name == "" {
		name = email
	}
	fmt.Fprintf(Out, "Logged in as %s\n", name)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
