package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"fooddesk/internal/api"
	"fooddesk/internal/config"
	"fooddesk/internal/resource"
)

// Dispatch is the single entry point to execute CLI commands.
// It prints help and usage messages and returns a process exit code.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	name := strings.ToLower(args[0])
	if name == "help" || name == "--help" || name == "-h" { // fdadmin help [command]
		if len(args) == 1 {
			fmt.Fprint(Out, FormatGlobalUsage())
			return 0
		}
		if c, ok := Get(args[1]); ok {
			fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
			return 0
		}
		fmt.Fprintf(Out, "Unknown command: %s\n\n", args[1])
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return 2
	}

	// the auth guard: protected commands need a live session, everything else
	// is reachable logged out
	if c.Protected() && !newSession(cfg).IsLoggedIn() {
		fmt.Fprintln(Out, "You are not logged in.")
		fmt.Fprintln(Out, "→ fdadmin login <email>")
		return 1
	}

	err := c.Run(ctx, cfg, args[1:])
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return 2
	case errors.Is(err, resource.ErrAborted):
		fmt.Fprintln(Out, "Cancelled.")
		return 0
	default:
		printFailure(name, err)
		return 1
	}
}

// printFailure renders the error taxonomy the way the screens surfaced it:
// validation and backend messages verbatim, network problems generically.
func printFailure(name string, err error) {
	var vErr *resource.ValidationError
	var reqErr *api.RequestError
	var netErr *api.NetworkError
	switch {
	case errors.As(err, &vErr):
		fmt.Fprintf(Out, "Error: %s\n", vErr.Message)
	case errors.As(err, &reqErr):
		fmt.Fprintf(Out, "Error: %s\n", reqErr.Error())
	case errors.As(err, &netErr):
		fmt.Fprintln(Out, "Error: the server could not be reached")
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
	}
}
