package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/sqlitels"
)

func newCompleteCmd() *cobra.Command {
	var grammarPath string
	var schemaPath string
	var offset int

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Print completions at a byte offset in a SQL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			if offset < 0 || offset > len(data) {
				return fmt.Errorf("offset %d out of range for a %d-byte file", offset, len(data))
			}

			g, err := loadGrammar(grammarPath)
			if err != nil {
				return fmt.Errorf("load grammar: %w", err)
			}
			schema, err := loadSchema(schemaPath)
			if err != nil {
				return fmt.Errorf("load schema: %w", err)
			}

			doc := sqlitels.Parse(data, sqlitels.Batch, lexer.DefaultVersion)
			for _, item := range doc.Complete(g, schema, offset) {
				fmt.Printf("%-16s %s\n", item.Kind, item.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to an .ungram grammar file (defaults to the built-in grammar)")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a YAML table/column catalog used for completion")
	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset into the file to compute completions at")
	return cmd
}
