// Command tint runs Tint programs and hosts the interactive REPL.
//
// Usage:
//
//	tint run program.t               run a source file
//	tint run program.t --watch x     run and watch variable x
//	tint repl                        start the interactive REPL
//	tint version                     print the toolchain version
//
// When a watched variable is created or modified, the runner prints
//
//	[WATCH] x = 5 at line 1, column 1
//
// for every mutation, with string values quoted and booleans shown as
// TRUE/FALSE.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tintlang/tint"
)

var (
	watchColor = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed)
	infoColor  = color.New(color.FgCyan)
)

var watchVar string

func main() {
	// Optional .env for TINT_HISTORY and NO_COLOR; absence is not an error.
	_ = godotenv.Load()
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	root := &cobra.Command{
		Use:           "tint",
		Short:         "Tint language interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a Tint source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], watchVar)
		},
	}
	runCmd.Flags().StringVarP(&watchVar, "watch", "w", "", "variable name to watch for changes")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the toolchain version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(tint.Version)
		},
	}

	root.AddCommand(runCmd, replCmd, versionCmd)

	if err := root.Execute(); err != nil {
		errColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// watchValue formats a value for watch notifications: strings quoted,
// everything else in its print form.
func watchValue(v tint.Value) string {
	if v.Tag == tint.TagStr {
		return strconv.Quote(v.String())
	}
	return v.String()
}

func watchCallback(name string, v tint.Value, line, col int) {
	watchColor.Printf("[WATCH] %s = %s at line %d, column %d\n", name, watchValue(v), line, col)
}

func runFile(path, watch string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if watch != "" {
		infoColor.Printf("=== Watching variable: %s ===\n\n", watch)
	}

	ip := tint.NewInterp()
	if watch != "" {
		ip.SetWatch(watch, watchCallback)
	}
	if _, err := ip.EvalSource(string(src)); err != nil {
		return tint.WrapErrorWithName(err, path, string(src))
	}
	return nil
}
