package cmd

import (
	"fmt"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/cache"
	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [document]",
	Short: "Export card and token records from a design document",
	Long: `Export scans a page of a design document for card-<number>, card-? and
token-<name> frames, numbers the placeholder cards and renames them in the
document, then writes every record to cards.json in the output directory.

With --images, the artwork referenced by each frame is written as
card-<number>.png or token-<name>.png. Artwork of records that did not change
since the previous export is skipped unless --force is given.

Examples:
  cardsmith export deck.json
  cardsmith export --page "Cards" --images deck.json
  cardsmith export --dry-run --out build deck.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]
		flags := cmd.Flags()
		pageRef, _ := flags.GetString("page")
		depth, _ := flags.GetInt("depth")
		outDir, _ := flags.GetString("out")
		baseURL, _ := flags.GetString("base-url")
		withImages, _ := flags.GetBool("images")
		force, _ := flags.GetBool("force")
		scale, _ := flags.GetFloat64("scale")
		dryRun, _ := flags.GetBool("dry-run")

		if depth <= 0 {
			depth = cfg.SearchDepth
		}
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if baseURL == "" {
			baseURL = cfg.ImageBaseURL
		}

		doc, err := design.Load(docPath)
		if err != nil {
			return err
		}
		page, err := doc.Page(pageRef)
		if err != nil {
			return err
		}

		store := cache.NewStore(cache.PathFor(config.GetCacheDir(), docPath))
		if err := store.Load(); err != nil {
			logger.Warn("export cache ignored", "error", err)
		}

		exporter := &export.Exporter{
			Renamer: doc,
			Builder: card.NewBuilder(baseURL),
			Cache:   store,
			Logger:  logger,
		}
		if withImages {
			exporter.Images = &export.FileImages{
				SourceDir: filepath.Dir(docPath),
				OutDir:    outDir,
				Scale:     scale,
			}
		}

		result, err := exporter.Run(cmd.Context(), page, export.Options{
			Depth:        depth,
			ExportImages: withImages,
			Force:        force,
		})
		if err != nil {
			return err
		}

		recordsPath := filepath.Join(outDir, export.RecordsFile)
		if err := export.WriteRecords(recordsPath, result.Records); err != nil {
			return fmt.Errorf("error writing records: %v", err)
		}

		if dryRun {
			logger.Info("dry run, document not saved", "renamed", doc.Modified())
		} else if err := doc.Save(); err != nil {
			return fmt.Errorf("error saving renamed cards: %v", err)
		}

		fmt.Printf("Exported %d cards and %d tokens to %s\n", result.Cards, result.Tokens, recordsPath)
		if withImages {
			fmt.Printf("Artwork: %d written, %d unchanged\n", len(result.Exported), result.Skipped)
		}
		for _, f := range result.Failures {
			colorize.Yellow("! %s could not be renamed to %s: %v", f.Element.Name, f.Name, f.Err)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("page", "p", "", "Page ID or name (defaults to the first page)")
	exportCmd.Flags().IntP("depth", "d", 0, "Search depth below the page (defaults to the configured depth)")
	exportCmd.Flags().StringP("out", "o", "", "Output directory (defaults to the configured directory)")
	exportCmd.Flags().String("base-url", "", "Base URL of exported images (defaults to the configured URL)")
	exportCmd.Flags().Bool("images", false, "Export card artwork")
	exportCmd.Flags().Bool("force", false, "Export artwork even for unchanged records")
	exportCmd.Flags().Float64("scale", 1, "Artwork scale factor")
	exportCmd.Flags().Bool("dry-run", false, "Do not save renamed cards back to the document")
}
