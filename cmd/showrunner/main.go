package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// An interrupted produce run surfaces as context.Canceled once the signal
// handler fires; that is a clean stop, not an error worth printing.
func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
