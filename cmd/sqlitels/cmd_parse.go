package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/sqlite-ls/lexer"
	"github.com/dhamidi/sqlite-ls/sqlitels"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var variantName string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a SQL file and dump its concrete syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			variant, err := parseVariant(variantName)
			if err != nil {
				return err
			}

			doc := sqlitels.Parse(data, variant, lexer.DefaultVersion)
			tree := doc.Tree()

			switch outputFormat {
			case "json":
				return writeJSONTree(os.Stdout, tree)
			case "line":
				writeLineTree(os.Stdout, tree)
				return nil
			default:
				return fmt.Errorf("unknown format: %s (expected json or line)", outputFormat)
			}
		},
	}
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (json, line)")
	cmd.Flags().StringVar(&variantName, "variant", "branch", "CST storage variant to build (batch, branch, slot)")
	return cmd
}

func parseVariant(name string) (sqlitels.StorageVariant, error) {
	switch name {
	case "batch":
		return sqlitels.Batch, nil
	case "branch":
		return sqlitels.BranchIndexed, nil
	case "slot":
		return sqlitels.SlotLinked, nil
	default:
		return 0, fmt.Errorf("unknown storage variant: %s (expected batch, branch, or slot)", name)
	}
}
