package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"iconc/internal/compile"
)

var (
	genSource  string
	genOut     string
	genPackage string
	genVariant string
	genWorkers int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile icon sources into a generated Go table",
	Long: `Compile every icon under --source into a single generated Go
source file. The output is deterministic: regenerating from unchanged
inputs yields a byte-identical file.

Examples:
  iconc generate --source ./icons --out icons/table.go --package icons
  iconc generate --source ./icons --variant outlined --out outlined.go`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := compile.Run(compile.Options{
			Source:  genSource,
			Variant: genVariant,
			Workers: genWorkers,
		})
		if err != nil {
			return err
		}
		if err := table.WriteFile(genOut, genPackage); err != nil {
			return err
		}
		fmt.Printf("wrote %d icons to %s\n", table.Len(), genOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&genSource, "source", "", "root directory of icon sources")
	generateCmd.Flags().StringVar(&genOut, "out", "", "output file for the generated table")
	generateCmd.Flags().StringVar(&genPackage, "package", "icons", "package name for the generated file")
	generateCmd.Flags().StringVar(&genVariant, "variant", "normal", "variant to compile (empty for all)")
	generateCmd.Flags().IntVar(&genWorkers, "workers", 0, "concurrent resolvers (0 = GOMAXPROCS)")
	generateCmd.MarkFlagRequired("source")
	generateCmd.MarkFlagRequired("out")
}
