package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"Helmholtz/internal/calc/helmholtz"
	"Helmholtz/internal/config"
)

var logLevel = "info"

// Sample coil: 20 turns per coil, 5 A, 25 mm radius.
const (
	sampleTurns   = 20
	sampleCurrent = 5.0
	sampleRadius  = 0.025
)

func main() {
	if err := NewCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "coildemo",
		Short:        "Print the Helmholtz coil summary and a custom AWG 14 calculation",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.SetupLogger(logLevel)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	return cmd
}

func run(w io.Writer) error {
	coil, err := helmholtz.New(sampleTurns, sampleCurrent, sampleRadius)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"turns":   coil.Turns(),
		"current": coil.Current(),
		"radius":  coil.Radius(),
	}).Debug("sample coil")

	results := coil.Summary(0)

	_, custom, err := coil.Custom(14, 20, 0.025, 1, 0)
	if err != nil {
		return err
	}

	printResults(w, "Standard Results:", results)
	fmt.Fprintln(w)
	printResults(w, "Custom Results:", custom)
	return nil
}

func printResults(w io.Writer, title string, res helmholtz.Result) {
	header := color.New(color.Bold)
	header.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
	label := color.New(color.FgCyan)
	for _, e := range res.Entries() {
		fmt.Fprintln(w)
		label.Fprintf(w, "%s:", e.Label)
		fmt.Fprintf(w, " %s\n", strconv.FormatFloat(e.Value, 'g', -1, 64))
	}
}
