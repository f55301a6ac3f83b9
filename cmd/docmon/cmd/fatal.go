// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	// globals used to patch over calls to os.Exit() during test

	logFatalln = log.Fatalln
	logFatalf  = log.Fatalf
	osExit     = os.Exit

	// stdout receives the output of commands
	stdout io.Writer = os.Stdout
)

func wrapFatalln(msg string, err error) {
	if err == nil {
		logFatalln(msg)
	} else {
		logFatalf("%v", fmt.Errorf(msg+": %w", err))
	}
}

func outf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(stdout, format, args...)
}

func outln(args ...interface{}) {
	_, _ = fmt.Fprintln(stdout, args...)
}
