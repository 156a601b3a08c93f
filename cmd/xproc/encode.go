package main

import (
	"fmt"
	"io"
	"os"

	"github.com/midbel/cli"
	"github.com/midbel/codecs/xml"
	"github.com/midbel/xproc/value"
)

// EncodeCmd converts a JSON document to the canonical markup form the
// processor feeds to the engine, mostly useful to inspect what a
// composite parameter or input value looks like once encoded.
type EncodeCmd struct {
	File    string
	Compact bool
}

func (c *EncodeCmd) Run(args []string) error {
	set := cli.NewFlagSet("encode")
	set.StringVar(&c.File, "f", "", "output file")
	set.BoolVar(&c.Compact, "c", false, "compact output")

	if err := set.Parse(args); err != nil {
		return err
	}

	var r io.ReadCloser = os.Stdin
	if set.Arg(0) != "" {
		f, err := os.Open(set.Arg(0))
		if err != nil {
			return err
		}
		r = f
	}
	defer r.Close()

	v, err := value.DecodeJSON(r)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if c.File != "" {
		f, err := os.Create(c.File)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	ws := xml.NewWriter(w)
	ws.WriterOptions |= xml.OptionNoProlog
	if c.Compact {
		ws.WriterOptions |= xml.OptionCompact
	}
	if err := ws.Write(value.Encode(v)); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
