package cmd

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/cardsmith/internal/deck"
	"github.com/arcanaland/cardsmith/internal/design"
)

const poolsFile = "pools.json"

// poolsCmd represents the pools command
var poolsCmd = &cobra.Command{
	Use:   "pools [document]",
	Short: "Derive deck pools from the groupings on a page",
	Long: `Pools reads a page laid out as deck groupings, each holding rarity groupings
of cards, and writes one pool per deck with a distinct bright color and the
name, rarity and synergies of every card. Rarity groupings named "generated"
are skipped.

Examples:
  cardsmith pools --page Decks deck.json
  cardsmith pools --seed 7 --out build deck.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		pageRef, _ := flags.GetString("page")
		outDir, _ := flags.GetString("out")
		description, _ := flags.GetString("description")
		seed, _ := flags.GetUint64("seed")

		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if description == "" {
			description = cfg.PoolDescription
		}

		doc, err := design.Load(args[0])
		if err != nil {
			return err
		}
		page, err := doc.Page(pageRef)
		if err != nil {
			return err
		}

		opts := deck.Options{Description: description}
		if flags.Changed("seed") {
			opts.Rand = rand.New(rand.NewPCG(seed, seed))
		}

		pools := deck.DerivePools(page, opts)

		data, err := json.MarshalIndent(pools, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding pools: %v", err)
		}
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %v", err)
		}
		path := filepath.Join(outDir, poolsFile)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("error writing pools: %v", err)
		}

		fmt.Printf("Derived %d pools to %s\n", len(pools), path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(poolsCmd)

	poolsCmd.Flags().StringP("page", "p", "", "Page ID or name (defaults to the first page)")
	poolsCmd.Flags().StringP("out", "o", "", "Output directory (defaults to the configured directory)")
	poolsCmd.Flags().String("description", "", "Description of every pool")
	poolsCmd.Flags().Uint64("seed", 0, "Seed for pool colors")
}
