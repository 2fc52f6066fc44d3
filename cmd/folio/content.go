package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/content"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored content record as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := folio.New(cfg, folio.WithLogger(logger))
		defer app.Close()
		if err := app.Open(cmd.Context()); err != nil {
			return err
		}
		data, err := content.Encode(app.Content.Current())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored content record with a JSON file (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		c, err := content.Decode(data)
		if err != nil {
			return fmt.Errorf("invalid content file: %w", err)
		}

		app := folio.New(cfg, folio.WithLogger(logger))
		defer app.Close()
		ctx := cmd.Context()
		if err := app.Open(ctx); err != nil {
			return err
		}
		if _, err := app.Content.Replace(ctx, c); err != nil {
			return err
		}
		logger.Info("content imported", "updates", len(c.Updates))
		return nil
	},
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}
