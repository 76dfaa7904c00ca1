package cmd

import (
	"crypto/md5"
	"fmt"
	"image"
	"image/color" // This is the standard library color package
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/term"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/config"
	"github.com/arcanaland/cardsmith/internal/export"

	colorize "github.com/fatih/color" // Rename this import to avoid the conflict
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Display an exported card with ANSI art",
	Long: `Show displays an exported card or token record next to its artwork rendered
as ANSI terminal art. Records are read from cards.json in the output directory.
Cards can be given by id or frame name, tokens by id or frame name.

Examples:
  cardsmith show 12
  cardsmith show card-12
  cardsmith show --out build token-fire`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir, _ := cmd.Flags().GetString("out")
		if outDir == "" {
			outDir = cfg.OutputDir
		}

		records, err := export.ReadRecords(filepath.Join(outDir, export.RecordsFile))
		if err != nil {
			return fmt.Errorf("error loading records: %v", err)
		}

		id := recordID(args[0])
		c, ok := records[id]
		if !ok {
			return fmt.Errorf("record not found: %s", args[0])
		}

		// Artwork is optional; records exported without --images have none
		ansiArt := ""
		imagePath := filepath.Join(outDir, c.Filename)
		if _, err := os.Stat(imagePath); err == nil {
			ansiPath, err := ansiFor(imagePath)
			if err != nil {
				return fmt.Errorf("error rendering artwork: %v", err)
			}
			ansiArt, err = loadAnsiArt(ansiPath)
			if err != nil {
				return fmt.Errorf("error loading ANSI art: %v", err)
			}
		} else {
			logger.Debug("no artwork", "path", imagePath)
		}

		displayCard(c, ansiArt)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("out", "o", "", "Output directory holding cards.json (defaults to the configured directory)")
}

// recordID maps frame names to record ids: card-12 -> 12, token-fire -> t-fire
func recordID(arg string) string {
	if rest, ok := strings.CutPrefix(arg, "card-"); ok {
		if _, err := strconv.Atoi(rest); err == nil {
			return rest
		}
	}
	if rest, ok := strings.CutPrefix(arg, "token-"); ok {
		return "t-" + rest
	}
	return arg
}

// ansiFor returns the cached ANSI art of an image, generating it if needed
func ansiFor(imagePath string) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", err
	}

	cacheDir := filepath.Join(config.GetCacheDir(), "ansi_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %v", err)
	}

	// Re-exported artwork gets a new modification time and a new cache entry
	key := fmt.Sprintf("%s@%d", imagePath, info.ModTime().UnixNano())
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := generateAnsiArt(imagePath, cachePath); err != nil {
		return "", fmt.Errorf("failed to generate ANSI art: %v", err)
	}

	return cachePath, nil
}

// generateAnsiArt converts an image file to ANSI art and saves it to the specified output path
func generateAnsiArt(imagePath, outputPath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode image: %v", err)
	}

	ansiArt := imageToAnsi(img, 32, 22)

	if err := os.WriteFile(outputPath, []byte(ansiArt), 0644); err != nil {
		return fmt.Errorf("failed to write ANSI art to file: %v", err)
	}

	return nil
}

// imageToAnsi converts an image to truecolor ANSI art using upper half blocks
func imageToAnsi(img image.Image, width, height int) string {
	// Resize image to desired dimensions (doubled for half-block characters)
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder

	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			col1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			col2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			col3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			col4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			fg := averageColor(col1, col2)
			bg := averageColor(col3, col4)

			buffer.WriteString(ansiColorString('▀', fg, bg))
		}
		buffer.WriteString("\n")
	}

	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255} // Return black for out-of-bounds
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// ansiColorString formats a character with truecolor ANSI codes
func ansiColorString(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m",
		r1, g1, b1, r2, g2, b2, char)
}

// loadAnsiArt loads the ANSI art from a file
func loadAnsiArt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// zoneList renders the attack zones of a card
func zoneList(c card.Card) string {
	var zones []string
	if c.AttackHead {
		zones = append(zones, "Head")
	}
	if c.AttackBody {
		zones = append(zones, "Body")
	}
	if c.AttackLeg {
		zones = append(zones, "Leg")
	}
	return strings.Join(zones, " · ")
}

// guardLine renders the block value; negative values are dodge chances
func guardLine(block int) (string, string) {
	if block < 0 {
		return "Dodge:", fmt.Sprintf("%d", -block)
	}
	return "Block:", fmt.Sprintf("%d", block)
}

// wrapText wraps text to a specified width, keeping explicit line breaks
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}

		currentLine := ""
		for _, word := range words {
			if len(currentLine) == 0 {
				currentLine = word
			} else if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result = append(result, currentLine)
				currentLine = word
			}
		}
		result = append(result, currentLine)
	}

	return result
}

// displayCard displays the record with its ANSI art on the left
func displayCard(c card.Card, ansiArt string) {
	var ansiLines []string
	if ansiArt != "" {
		ansiLines = strings.Split(strings.TrimRight(ansiArt, "\n"), "\n")
	}
	maxAnsiWidth := 0
	for _, line := range ansiLines {
		if w := len([]rune(stripAnsi(line))); w > maxAnsiWidth {
			maxAnsiWidth = w
		}
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}

	label := colorize.New(colorize.FgCyan).SprintFunc()
	value := colorize.New(colorize.FgHiWhite).SprintfFunc()

	var infoLines []string
	infoLines = append(infoLines, label("Name: ")+value("%s", c.Name))
	infoLines = append(infoLines, label("ID:   ")+value("%s", c.ID))

	if c.IsToken {
		infoLines = append(infoLines, label("Kind: ")+value("Token"))
	} else {
		if c.Type != "" {
			infoLines = append(infoLines, label("Type: ")+value("%s", strings.Join(c.Types, ", ")))
		}
		infoLines = append(infoLines, label("Cost: ")+value("%d AP", c.Cost))
		infoLines = append(infoLines, label("DMG:  ")+value("%d", c.DMG))
		if c.Block != 0 {
			name, amount := guardLine(c.Block)
			infoLines = append(infoLines, label(fmt.Sprintf("%-6s", name))+value("%s", amount))
		}
		if zones := zoneList(c); zones != "" {
			infoLines = append(infoLines, label("Hits: ")+value("%s", zones))
		}
		if len(c.Keywords) > 0 {
			infoLines = append(infoLines, label("Keys: ")+colorize.HiYellowString("%s", strings.Join(c.Keywords, ", ")))
		}
	}

	spacing := 4
	infoStartCol := maxAnsiWidth + spacing
	if maxAnsiWidth == 0 {
		infoStartCol = 0
	}

	infoWidth := width - infoStartCol - 2
	if infoWidth < 20 {
		infoWidth = 20
	}

	if c.Text != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, label("Text:"))
		infoLines = append(infoLines, wrapText(c.Text, infoWidth)...)
	}

	fmt.Println()

	maxLines := max(len(ansiLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		fmt.Print("  ")
		if i < len(ansiLines) {
			fmt.Print(ansiLines[i])
			visibleWidth := len([]rune(stripAnsi(ansiLines[i])))
			fmt.Print(strings.Repeat(" ", infoStartCol-visibleWidth))
		} else {
			fmt.Print(strings.Repeat(" ", infoStartCol))
		}

		if i < len(infoLines) {
			fmt.Print(infoLines[i])
		}

		fmt.Println()
	}

	fmt.Println()
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
