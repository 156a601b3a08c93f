package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

type VersionCmd struct{}

func (c *VersionCmd) Run(_ []string) error {
	fmt.Fprintln(os.Stdout, "xproc", version)
	return nil
}
