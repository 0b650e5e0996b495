package cli

import (
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

func (a *App) getStatus() string {
	if a.userEmail == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userEmail)
}

// Root runs the command loop. Command handlers report their own errors to
// the user; the loop stays resilient and focused on I/O.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the beswan CLI (type 'help' for commands)")

	for {
		fmt.Printf("beswan %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: apply, status, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			if err := a.Login(ctx); err != nil {
				printlnFn("Login failed:", err)
			}

		case "logout":
			a.Logout()

		case "apply":
			if err := a.requireLogin(a.Apply)(ctx); err != nil {
				printlnFn("Error:", err)
			}

		case "status":
			if err := a.requireLogin(a.Status)(ctx); err != nil {
				printlnFn("Error:", err)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) requireLogin(fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if !a.isLoggedIn() {
			return fmt.Errorf("please log in first")
		}
		return fn(ctx)
	}
}
