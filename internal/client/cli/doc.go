// Package cli provides the interactive JobKeeper command-line client.
//
// It wires configuration, the local store, the backend client and the
// application services, and exposes them through a cobra command tree. Run
// without a subcommand it starts a REPL; the dashboard, earnings, overdue and
// export-invoice subcommands print a single report and exit.
//
// The client works the same whether the backend is reachable or not. A
// background watcher probes the backend and switches the App between online
// and offline mode; while offline every read and write goes to the local
// store.
package cli
