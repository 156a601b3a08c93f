package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/midbel/cli"
	"github.com/midbel/xproc"
	"github.com/midbel/xproc/value"
)

type TransformCmd struct {
	Context string
	File    string
	Props   string
	Quiet   bool

	settings Settings
	logger   *slog.Logger
}

func (c *TransformCmd) Run(args []string) error {
	set := cli.NewFlagSet("transform")
	set.StringVar(&c.Context, "d", c.settings.Context, "context directory")
	set.StringVar(&c.File, "f", "", "output file")
	set.StringVar(&c.Props, "o", "", "output properties (prop=value, comma separated)")
	set.BoolVar(&c.Quiet, "q", false, "quiet")

	if err := set.Parse(args); err != nil {
		return err
	}
	rest := set.Args()
	if len(rest) < 1 {
		return fmt.Errorf("transform: missing stylesheet")
	}

	proc, err := xproc.New(value.Str(rest[0]), xproc.WithContextDir(c.Context), xproc.WithLogger(c.logger))
	if err != nil {
		return err
	}
	if err := c.setProperties(proc); err != nil {
		return err
	}

	input := value.None()
	if len(rest) > 1 {
		input = value.Str(rest[1])
	}
	if err := c.setParameters(proc, rest); err != nil {
		return err
	}

	var spinw io.Writer
	if !c.Quiet {
		spinw = os.Stderr
	}
	var result string
	spin := NewSpinner(spinw, "transforming")
	spin.Run(func() {
		result, err = proc.Transform(input)
	})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.Quiet {
		w = io.Discard
	} else if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	_, err = io.WriteString(w, result)
	return err
}

// setParameters binds the trailing name=value arguments. A value of
// the form @file.json is decoded as JSON, preserving key order, so
// composite values can be passed on the command line.
func (c *TransformCmd) setParameters(proc *xproc.Processor, rest []string) error {
	if len(rest) < 3 {
		return nil
	}
	for _, arg := range rest[2:] {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("%s: parameter expected as name=value", arg)
		}
		v, err := parameterValue(raw)
		if err != nil {
			return fmt.Errorf("%s: %s", name, err)
		}
		if err := proc.SetParameter(name, v); err != nil {
			return err
		}
	}
	return nil
}

func (c *TransformCmd) setProperties(proc *xproc.Processor) error {
	if c.Props == "" {
		return nil
	}
	for _, pair := range strings.Split(c.Props, ",") {
		name, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return fmt.Errorf("%s: property expected as name=value", pair)
		}
		if err := proc.SetOutputProperty(name, value.Str(raw)); err != nil {
			return err
		}
	}
	return nil
}

func parameterValue(raw string) (value.Value, error) {
	file, ok := strings.CutPrefix(raw, "@")
	if !ok {
		return value.Str(raw), nil
	}
	r, err := os.Open(file)
	if err != nil {
		return value.None(), err
	}
	defer r.Close()
	return value.DecodeJSON(r)
}
