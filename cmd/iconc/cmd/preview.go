package cmd

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"iconc/internal/compile"
	"iconc/internal/preview"
)

var (
	prevSource  string
	prevOut     string
	prevVariant string
	prevSize    int
	prevWorkers int
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Rasterize compiled icons to PNG files for inspection",
	Long: `Compile the icon sources and render each icon as a black PNG
into --out, one file per identifier. Useful for eyeballing output
before committing a regenerated table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := compile.Run(compile.Options{
			Source:  prevSource,
			Variant: prevVariant,
			Workers: prevWorkers,
		})
		if err != nil {
			return err
		}
		if err := os.MkdirAll(prevOut, 0o755); err != nil {
			return err
		}
		black := color.NRGBA{A: 255}
		for _, icon := range table.Icons() {
			path := filepath.Join(prevOut, icon.Name+".png")
			if err := preview.WritePNG(path, icon, prevSize, black); err != nil {
				return err
			}
		}
		fmt.Printf("rendered %d icons to %s\n", table.Len(), prevOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&prevSource, "source", "", "root directory of icon sources")
	previewCmd.Flags().StringVar(&prevOut, "out", "", "output directory for PNG files")
	previewCmd.Flags().StringVar(&prevVariant, "variant", "normal", "variant to compile (empty for all)")
	previewCmd.Flags().IntVar(&prevSize, "size", 128, "rendered size in pixels")
	previewCmd.Flags().IntVar(&prevWorkers, "workers", 0, "concurrent resolvers (0 = GOMAXPROCS)")
	previewCmd.MarkFlagRequired("source")
	previewCmd.MarkFlagRequired("out")
}
