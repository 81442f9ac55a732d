package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/planware/keyscan/internal/config"
	"github.com/planware/keyscan/internal/core"
	"github.com/planware/keyscan/internal/core/scan_engine"
	"github.com/planware/keyscan/internal/export"
	"github.com/planware/keyscan/internal/models"
	"github.com/planware/keyscan/internal/services"
)

func main() {
	app := &cli.App{
		Name:  "keyscan",
		Usage: "Scan documents for keywords with surrounding context",
		Commands: []*cli.Command{
			{
				Name:      "scan",
				Usage:     "Scan local documents or zip archives for keywords",
				ArgsUsage: "FILE...",
				Action:    scanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "keywords",
						Aliases: []string{"k"},
						Usage:   "Comma-separated keywords to search",
					},
					&cli.IntFlag{
						Name:    "window",
						Aliases: []string{"w"},
						Usage:   "Context window in characters before/after each match",
						Value:   60,
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Also write the result set to a CSV file",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func scanCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no input files given", 1)
	}

	cfg := config.LoadConfig()

	rawKeywords := c.String("keywords")
	if rawKeywords == "" {
		rawKeywords = cfg.DefaultKeywords
	}

	var uploads []models.Upload
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		uploads = append(uploads, models.Upload{Name: filepath.Base(path), Data: data})
	}

	progress := func(processed, total int, label string) {
		fmt.Fprintf(os.Stderr, "\rScanned %d/%d documents (%s)", processed, total, label)
		if processed == total {
			fmt.Fprintln(os.Stderr)
		}
	}

	scanSvc := services.NewScanService(scan_engine.NewDocconvExtractor(false), cfg)
	report, err := scanSvc.Scan(c.Context, uploads, rawKeywords, c.Int("window"), progress)

	switch {
	case errors.Is(err, core.ErrNoDocuments):
		fmt.Println("No documents found.")
		printDiagnostics(report)
		return nil
	case errors.Is(err, core.ErrNoMatches):
		fmt.Println("No keywords were found in the scanned documents.")
		printDiagnostics(report)
		return nil
	case err != nil:
		return err
	}

	highlighted := services.HighlightRecords(report.Records)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"File", "Keyword", "Snippet"})
	table.SetAutoWrapText(false)
	for _, rec := range highlighted {
		table.Append([]string{rec.File, rec.Keyword, rec.Snippet})
	}
	table.Render()
	printDiagnostics(report)

	if out := c.String("csv"); out != "" {
		data, err := export.ResultsCSV(highlighted)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Wrote %d records to %s\n", len(report.Records), out)
	}
	return nil
}

func printDiagnostics(report *models.ScanReport) {
	for _, warn := range report.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warn.Upload, warn.Reason)
	}
	for _, fail := range report.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", fail.File, fail.Reason)
	}
}
