package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Select(ctx context.Context, path string) error
	SetType(ctx context.Context, inputType string) error
	Upload(ctx context.Context) error
	SaveDataset(ctx context.Context, fileID string) error
	ShowProfile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the intake CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//   - help              — show available commands
//   - select <path>     — pick a file for upload (validated locally)
//   - type <kind>       — override the declared input type (file|json|email)
//   - upload            — submit the selected file
//   - save [file-id]    — persist the extraction of an upload to the dataset
//   - profile           — show the user profile
//   - edit              — edit and save the user profile
//   - status            — show current view state
//   - logout            — end the session (stub)
//   - exit | quit       — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("intake %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: select <path>, type <file|json|email>, upload, save [file-id], profile, edit, status, logout, exit")

		case "select":
			if len(args) == 0 {
				printlnFn("Usage: select <path>")
				continue
			}
			_ = a.Select(ctx, args[0])

		case "type":
			if len(args) == 0 {
				printlnFn("Usage: type <file|json|email>")
				continue
			}
			_ = a.SetType(ctx, args[0])

		case "upload":
			_ = a.Upload(ctx)

		case "save":
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			_ = a.SaveDataset(ctx, id)

		case "profile":
			_ = a.ShowProfile(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "status":
			_ = a.Status(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
