package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/docread/internal/engine"
	"github.com/pdiddy/docread/internal/intake"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported extensions and their strategy chains",
	Run: func(cmd *cobra.Command, args []string) {
		reg := engine.NewRegistry(engine.NewUniversal())
		for _, ext := range intake.SupportedExtensions() {
			fmt.Fprintf(os.Stdout, "%-6s", ext)
			for i, s := range reg.ChainFor(ext) {
				if i > 0 {
					fmt.Fprint(os.Stdout, " -> ")
				} else {
					fmt.Fprint(os.Stdout, "  ")
				}
				fmt.Fprint(os.Stdout, s.Name())
			}
			fmt.Fprintln(os.Stdout)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
