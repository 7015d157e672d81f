package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/tintlang/tint"
)

const (
	prompt          = ">>> "
	historyFileName = ".tint_history"
)

var banner = fmt.Sprintf("Tint %s REPL\nCtrl+D exits. Type :help for commands.", tint.Version)

const helpText = `REPL commands:
  :help          Show this help
  :quit          Exit the REPL
  :env           Show global bindings
  :watch <var>   Watch a variable for changes
  :unwatch       Stop watching
`

// historyPath honors TINT_HISTORY, falling back to ~/.tint_history.
func historyPath() string {
	if p := os.Getenv("TINT_HISTORY"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFileName
	}
	return filepath.Join(home, historyFileName)
}

func runRepl() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyPath()
	if f, err := os.Open(hist); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(hist); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println(banner)

	ip := tint.NewInterp()
	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if quit := replCommand(ip, trimmed); quit {
				return nil
			}
			continue
		}

		v, err := ip.EvalSource(input)
		if err != nil {
			errColor.Fprintln(os.Stderr, tint.WrapErrorWithName(err, "<repl>", input))
			continue
		}
		if v.Tag != tint.TagNull {
			fmt.Println(v)
		}
	}
}

// replCommand handles a ":" command and reports whether the REPL should exit.
func replCommand(ip *tint.Interp, cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Print(helpText)
	case ":env":
		names := ip.Global.Names()
		keys := make([]string, 0, len(names))
		for k := range names {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", k, watchValue(names[k]))
		}
	case ":watch":
		if len(fields) != 2 {
			errColor.Println("usage: :watch <var>")
			return false
		}
		ip.SetWatch(fields[1], watchCallback)
		infoColor.Printf("Now watching: %s\n", fields[1])
	case ":unwatch":
		ip.SetWatch("", nil)
		infoColor.Println("Stopped watching")
	default:
		errColor.Printf("unknown command %s (try :help)\n", fields[0])
	}
	return false
}
