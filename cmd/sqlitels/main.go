package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sqlitels",
		Short: "A SQLite dialect language server and parsing toolchain",
	}

	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCompleteCmd())
	rootCmd.AddCommand(newDumpGrammarCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
