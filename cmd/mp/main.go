// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// mp is a terminal markdown previewer.
//
// With a file argument it renders that file once, styled, to standard
// output. Without one it opens an interactive alt-screen session
// rooted at the current directory: a navigable list of the markdown
// files found under it beside a scrollable preview of the selected
// file. The ignore-related flags control which files the list shows.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/mpview/mp/lib/finder"
	"github.com/mpview/mp/lib/preview"
	"github.com/mpview/mp/lib/render"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var finderConfig finder.Config
	var width int

	flagSet := pflag.NewFlagSet("mp", pflag.ContinueOnError)
	flagSet.BoolVar(&finderConfig.Hidden, "hidden", false, "include hidden files and directories")
	flagSet.BoolVar(&finderConfig.NoIgnore, "no-ignore", false, "disable all ignore files")
	flagSet.BoolVar(&finderConfig.NoIgnoreParent, "no-ignore-parent", false, "skip ignore files in parent directories")
	flagSet.BoolVar(&finderConfig.NoGlobalIgnoreFile, "no-global-ignore-file", false, "skip the global git ignore file")
	flagSet.IntVar(&width, "width", 0, "output width (default: detect from terminal)")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	renderConfig := render.DefaultConfig()
	renderConfig.Width = width

	if flagSet.NArg() > 0 {
		return renderOnce(flagSet.Arg(0), renderConfig)
	}
	return runInteractive(finderConfig, renderConfig)
}

// renderOnce renders one file to standard output and exits.
func renderOnce(path string, renderConfig render.Config) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	renderer := render.NewRenderer(os.Stdout, nil, renderConfig)
	return renderer.RenderFile(path)
}

// runInteractive discovers markdown files under the current directory
// and starts the alt-screen session. While the session runs, log
// records are routed into the status bar instead of stderr, which the
// alt screen owns.
func runInteractive(finderConfig finder.Config, renderConfig render.Config) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}

	files, err := finder.FindMarkdownFiles(root, finderConfig)
	if err != nil {
		return fmt.Errorf("searching %s: %w", root, err)
	}

	tuiHandler := preview.NewTUILogHandler(slog.LevelWarn)
	slog.SetDefault(slog.New(tuiHandler))

	model := preview.NewModel(root, files, nil, renderConfig)
	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running interactive session: %w", err)
	}
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `mp - terminal markdown previewer

Usage:
  mp [FILE] [flags]

With FILE, render it to standard output. Without FILE, open an
interactive preview of the markdown files under the current directory.

Flags:
%s`, flagSet.FlagUsages())
}
