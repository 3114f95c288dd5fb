// Command tinysh-repl runs the shell engine on the controlling terminal.
// It switches stdin to raw mode, feeds bytes through the engine one at a
// time, and wires up persistent history and path completion.
//
// Usage:
//
//	./tinysh-repl              # config from ~/.config/tinysh/config.toml
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lowbyte-dev/tinysh"
	"github.com/lowbyte-dev/tinysh/histfile"
	"github.com/lowbyte-dev/tinysh/pathcomp"
)

// app ties the shell to its host-side services.
type app struct {
	sh   *tinysh.Shell
	out  io.Writer
	hist *histfile.File
	quit bool
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := LoadConfig()
	if err != nil {
		slog.Warn("using default config", "error", err)
		cfg = DefaultConfig()
	}
	for _, w := range ValidateConfig(cfg) {
		slog.Warn(w)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "stdin is not a terminal")
		os.Exit(1)
	}
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "raw mode: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	out := termWriter(os.Stdout)
	sh, err := tinysh.New(out, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init: %v\n", err)
		os.Exit(1)
	}
	sh.SetPrompt(cfg.Prompt)
	sh.SetEcho(*cfg.Echo)

	a := &app{sh: sh, out: out, hist: histfile.New(cfg.HistoryFile, cfg.HistoryEntries)}

	// Seed the in-memory ring from previous sessions.
	if lines, err := a.hist.Load(); err != nil {
		slog.Warn("history not loaded", "error", err)
	} else {
		for _, l := range lines {
			sh.AddHistory(l)
		}
	}

	if err := sh.LoadTable(a.commands()); err != nil {
		fmt.Fprintf(os.Stderr, "command table: %v\n", err)
		os.Exit(1)
	}

	if cfg.Login.User != "" && cfg.Login.Password != "" {
		user, pass := cfg.Login.User, cfg.Login.Password
		sh.SetLogin(func(u, p string) bool {
			return u == user && p == pass
		}, cfg.Login.Trigger[0])
	}

	if *cfg.PathCompletion {
		comp := pathcomp.NewCompleter(0)
		defer comp.Close()
		sh.SetComplete(comp.Complete)
	}

	// Ctrl-D on an empty line ends the session; otherwise the built-in
	// delete-at-cursor runs.
	sh.BindKey(tinysh.KeyCtrlD, func(s *tinysh.Shell, _ tinysh.Key, _ any) bool {
		if s.Line() != "" {
			return false
		}
		a.quit = true
		return true
	}, nil)

	var b [1]byte
	for !a.quit {
		n, err := os.Stdin.Read(b[:])
		if err != nil || n == 0 {
			break
		}
		sh.Feed(b[0])
		for sh.Run() {
		}
	}
	fmt.Fprint(os.Stdout, "\r\n")
}

// record appends an executed line to the history file.
func (a *app) record(args []string) {
	if err := a.hist.Append(strings.Join(args, " ")); err != nil {
		slog.Warn("history not saved", "error", err)
	}
}

// commands builds the command table. Output goes through the same writer as
// the shell so everything shares the raw-mode newline handling.
func (a *app) commands() []tinysh.Command {
	var table []tinysh.Command
	table = []tinysh.Command{
		{Name: "help", Desc: "list commands", Fn: func(args []string, _ any) {
			a.record(args)
			width := 0
			for _, c := range table {
				if len(c.Name) > width {
					width = len(c.Name)
				}
			}
			for _, c := range table {
				fmt.Fprintf(a.out, "  %-*s  %s\r\n", width, c.Name, c.Desc)
			}
		}},
		{Name: "echo", Desc: "print arguments", Fn: func(args []string, _ any) {
			a.record(args)
			fmt.Fprintf(a.out, "%s\r\n", strings.Join(args[1:], " "))
		}},
		{Name: "clear", Desc: "clear the screen", Fn: func(args []string, _ any) {
			a.record(args)
			a.sh.ClearScreen()
		}},
		{Name: "stats", Desc: "engine resource usage", Fn: func(args []string, _ any) {
			a.record(args)
			st := a.sh.Stats()
			fmt.Fprintf(a.out, "commands: %d\r\n", st.CommandCount)
			fmt.Fprintf(a.out, "history:  %d\r\n", st.HistoryCount)
			fmt.Fprintf(a.out, "keybinds: %d\r\n", st.KeybindCount)
			fmt.Fprintf(a.out, "trie:     %d nodes peak, overflow %v\r\n", st.MaxNodesUsed, st.TrieOverflow)
		}},
		{Name: "history", Desc: "show session history", Fn: func(args []string, _ any) {
			a.record(args)
			count := a.sh.Stats().HistoryCount
			for i := 0; i < count; i++ {
				if line, ok := a.sh.HistoryEntry(i); ok {
					fmt.Fprintf(a.out, "%3d  %s\r\n", i+1, line)
				}
			}
		}},
		{Name: "logout", Desc: "end the authenticated session", Fn: func(args []string, _ any) {
			a.record(args)
			a.sh.Logout()
		}},
		{Name: "exit", Desc: "leave the shell", Fn: func(args []string, _ any) {
			a.quit = true
		}},
	}
	return table
}
