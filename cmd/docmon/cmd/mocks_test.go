// Copyright © 2018 One Concern

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ExitMocks struct {
	mock.Mock
	fatalCalls int
	messages   []string
}

func (m *ExitMocks) Fatalf(format string, v ...interface{}) {
	m.fatalCalls++
	m.messages = append(m.messages, fmt.Sprintf(format, v...))
}

func (m *ExitMocks) Fatalln(v ...interface{}) {
	m.fatalCalls++
	m.messages = append(m.messages, fmt.Sprintln(v...))
}

func (m *ExitMocks) Exit(code int) {
	m.fatalCalls++
}

// https://github.com/stretchr/testify/issues/610
func MakeFatalfMock(m *ExitMocks) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		m.Fatalf(format, v...)
	}
}

func MakeFatallnMock(m *ExitMocks) func(...interface{}) {
	return func(v ...interface{}) {
		m.Fatalln(v...)
	}
}

func MakeExitMock(m *ExitMocks) func(int) {
	return func(code int) {
		m.Exit(code)
	}
}

var (
	exitMocks   *ExitMocks
	testBackend = backendLocalFS
)

// setupTests prepares an empty workspace and captures fatal errors and the output of commands
func setupTests(t *testing.T) (string, func()) {
	exitMocks = new(ExitMocks)
	logFatalf = MakeFatalfMock(exitMocks)
	logFatalln = MakeFatallnMock(exitMocks)
	osExit = MakeExitMock(exitMocks)
	color.NoColor = true

	root := t.TempDir()
	return root, func() {
		stdout = os.Stdout
		resetFlags(rootCmd)
	}
}

// resetFlags restores the default value of all flags, since commands are run several times in a test
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
	docmonFlags.metrics = metricsFlags{}
}

// runCmd runs a docmon command against the workspace at root, and returns its output
func runCmd(t *testing.T, root string, args ...string) string {
	var buf bytes.Buffer
	stdout = &buf
	resetFlags(rootCmd)

	rootCmd.SetArgs(append(args, "--root", root, "--loglevel", "none", "--backend", testBackend))
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

// runFailingCmd runs a docmon command which is expected to fail with a message containing reason
func runFailingCmd(t *testing.T, root, reason string, args ...string) {
	calls := exitMocks.fatalCalls
	_ = runCmd(t, root, args...)
	require.Equal(t, calls+1, exitMocks.fatalCalls, "expected command %v to fail", args)

	last := exitMocks.messages[len(exitMocks.messages)-1]
	require.True(t, strings.Contains(last, reason), "expected failure %q to mention %q", last, reason)
}
