package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type handler func(ctx context.Context, args []string) error

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	SignUp(ctx context.Context, args []string) error
	SignIn(ctx context.Context, args []string) error
	SignOut(ctx context.Context, args []string) error

	Clients(ctx context.Context, args []string) error
	AddClient(ctx context.Context, args []string) error
	DeleteClient(ctx context.Context, args []string) error
	SetPhoto(ctx context.Context, args []string) error
	DeletePhoto(ctx context.Context, args []string) error

	Tasks(ctx context.Context, args []string) error
	AddTask(ctx context.Context, args []string) error
	CompleteTask(ctx context.Context, args []string) error
	Overdue(ctx context.Context, args []string) error

	Reminders(ctx context.Context, args []string) error
	AddReminder(ctx context.Context, args []string) error
	DeleteReminder(ctx context.Context, args []string) error

	Jobs(ctx context.Context, args []string) error
	AddJob(ctx context.Context, args []string) error
	SetJobStatus(ctx context.Context, args []string) error

	Invoices(ctx context.Context, args []string) error
	AddInvoice(ctx context.Context, args []string) error
	MarkPaid(ctx context.Context, args []string) error
	ExportInvoice(ctx context.Context, args []string) error

	Leads(ctx context.Context, args []string) error
	AddLead(ctx context.Context, args []string) error
	SetLeadStatus(ctx context.Context, args []string) error

	Dashboard(ctx context.Context, args []string) error
	Earnings(ctx context.Context, args []string) error
}

func commands(a execIface) map[string]handler {
	return map[string]handler{
		"signup":      a.SignUp,
		"signin":      a.SignIn,
		"login":       a.SignIn,
		"signout":     a.SignOut,
		"logout":      a.SignOut,
		"clients":     a.Clients,
		"addclient":   a.AddClient,
		"delclient":   a.DeleteClient,
		"photo":       a.SetPhoto,
		"delphoto":    a.DeletePhoto,
		"tasks":       a.Tasks,
		"addtask":     a.AddTask,
		"done":        a.CompleteTask,
		"overdue":     a.Overdue,
		"reminders":   a.Reminders,
		"addreminder": a.AddReminder,
		"delreminder": a.DeleteReminder,
		"jobs":        a.Jobs,
		"addjob":      a.AddJob,
		"jobstatus":   a.SetJobStatus,
		"invoices":    a.Invoices,
		"addinvoice":  a.AddInvoice,
		"paid":        a.MarkPaid,
		"export":      a.ExportInvoice,
		"leads":       a.Leads,
		"addlead":     a.AddLead,
		"leadstatus":  a.SetLeadStatus,
		"dashboard":   a.Dashboard,
		"earnings":    a.Earnings,
	}
}

const helpData = `Data commands:
  clients | addclient | delclient <id> | photo <id> <file> | delphoto <id>
  tasks [client] | addtask | done <id> | overdue [client]
  reminders [client] | addreminder | delreminder <id>
  jobs [client] | addjob | jobstatus <id> <status>
  invoices [client] | addinvoice | paid <id> | export <id>
  leads | addlead | leadstatus <id> <status>
  dashboard | earnings | exit`

// runREPL starts a simple read–eval–print loop for the JobKeeper CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and passes the remaining tokens to its handler. Unknown commands
// are reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	cmds := commands(a)
	for {
		printlnFn(fmt.Sprintf("jk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account: signout [--wipe]")
			} else {
				printlnFn("Account: signup, signin (data is kept locally until you sign in)")
			}
			printlnFn(helpData)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		h, ok := cmds[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if err := h(ctx, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.userEmail != "" {
		s = a.userEmail + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
