package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dhamidi/sqlite-ls/grammar"
	"github.com/dhamidi/sqlite-ls/internal/lspserver"
	"github.com/dhamidi/sqlite-ls/internal/ungram"
)

func newLSPCmd() *cobra.Command {
	var grammarPath string
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGrammar(grammarPath)
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}
			schema, err := loadSchema(schemaPath)
			if err != nil {
				return fmt.Errorf("load schema: %w", err)
			}

			log := logrus.New()
			log.SetOutput(os.Stderr)

			srv := lspserver.New(version, g, schema, log.WithField("component", "lsp"))
			return srv.RunStdio()
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to an .ungram grammar file (defaults to the built-in grammar)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a YAML table/column catalog used for completion")
	return cmd
}

func loadGrammar(path string) (*grammar.Grammar, error) {
	if path == "" {
		return grammar.Parse(ungram.Default)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return grammar.Parse(string(data))
}
