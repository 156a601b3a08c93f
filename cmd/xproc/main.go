package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/midbel/cli"
)

var errFail = errors.New("fail")

var (
	summary = "xproc applies xslt transformations to flexible input values"
	help    = ""
)

func main() {
	settings, err := loadSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := newLogger(os.Stderr, settings.LogLevel)

	var (
		set  = cli.NewFlagSet("xproc")
		root = prepare(settings, logger)
	)
	root.SetSummary(summary)
	root.SetHelp(help)
	if err := set.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
	}
	err = root.Execute(set.Args())
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func prepare(settings Settings, logger *slog.Logger) *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"transform"}, &TransformCmd{settings: settings, logger: logger})
	root.Register([]string{"encode"}, &EncodeCmd{})
	root.Register([]string{"version"}, &VersionCmd{})
	return root
}
