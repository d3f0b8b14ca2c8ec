package main

import (
	"errors"
	"os"

	"github.com/fatih/color"
)

func main() {
	a := newApp()
	err := NewRootCommand(a).Execute()
	a.close()
	if err != nil {
		var notified errNotified
		if !errors.As(err, &notified) {
			_, _ = color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		}
		os.Exit(1)
	}
}
