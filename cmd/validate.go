package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/design"
	"github.com/arcanaland/cardsmith/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [document]",
	Short: "Check a page of a design document for card naming problems",
	Long: `Validate scans a page of a design document the same way export does and
reports duplicate card numbers, duplicate tokens, names that will be skipped,
placeholders that will be renumbered and cards missing a name or cost layer.
The document is never modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docPath := args[0]
		pageRef, _ := cmd.Flags().GetString("page")
		depth, _ := cmd.Flags().GetInt("depth")
		if depth <= 0 {
			depth = cfg.SearchDepth
		}

		doc, err := design.Load(docPath)
		if err != nil {
			return err
		}
		page, err := doc.Page(pageRef)
		if err != nil {
			return err
		}

		v := validator.NewValidator(page, depth)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Page '%s' of '%s' is ready for export.\n", page.Name, docPath)
		} else {
			colorize.Red("❌ Page '%s' of '%s' has %d errors:", page.Name, docPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			colorize.Yellow("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if len(results.Errors) > 0 {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringP("page", "p", "", "Page ID or name (defaults to the first page)")
	validateCmd.Flags().IntP("depth", "d", 0, "Search depth below the page (defaults to the configured depth)")
}
