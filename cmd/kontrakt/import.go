package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kontrakt/internal/excel"
	"kontrakt/internal/importer"
	"kontrakt/internal/pipeline"
	"kontrakt/internal/store"
)

var (
	importDB       string
	importSheets   []string
	importMaxRows  int
	importPatterns string
	importJSON     bool
)

// importCmd one-shot import of a workbook from the command line
var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import a workbook once and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		wb, err := excel.Open(path)
		if err != nil {
			return err
		}
		defer wb.Close()

		mapper := pipeline.NewColumnMapper()
		if importPatterns != "" {
			table, err := pipeline.LoadPatternTable(importPatterns)
			if err != nil {
				return err
			}
			mapper = pipeline.NewColumnMapperWithTable(table)
		}

		var st *store.Store
		if importDB != "" {
			st, err = store.New(importDB)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		coordinator := importer.NewCoordinator(st, mapper, logger)
		report, err := coordinator.ImportSync(ctx, importer.Options{
			Workbook:       wb,
			SourceFileName: filepath.Base(path),
			Sheets:         importSheets,
			MaxRows:        importMaxRows,
			Persist:        st != nil,
		})
		if err != nil {
			return err
		}
		if report == nil {
			return fmt.Errorf("import produced no report")
		}

		if importJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		printReport(report)
		logger.Info("import finished",
			zap.Int("records", report.SuccessRows),
			zap.Int("errors", report.ErrorRows),
			zap.Duration("duration", report.Duration))
		return nil
	},
}

// printReport human-readable run summary with per-sheet issues
func printReport(report *importer.Report) {
	fmt.Printf("file:   %s\n", report.Filename)
	fmt.Printf("sheets: %d imported, %d skipped of %d\n",
		report.ImportedSheets, report.SkippedSheets, report.TotalSheets)
	fmt.Printf("rows:   %d total, %d imported, %d rejected, %d warnings, %d duplicates\n",
		report.TotalRows, report.SuccessRows, report.ErrorRows,
		report.WarningCount, report.DuplicateCount)

	for _, sheet := range report.Sheets {
		if len(sheet.Errors) == 0 && len(sheet.Warnings) == 0 {
			continue
		}
		fmt.Printf("\nsheet %q (%s):\n", sheet.Sheet, sheet.Status)
		for _, issue := range sheet.Errors {
			fmt.Printf("  error   row %-6d %-24s %s\n", issue.RowIndex, issue.Kind, issue.Message)
		}
		for _, issue := range sheet.Warnings {
			fmt.Printf("  warning row %-6d %-24s %s\n", issue.RowIndex, issue.Kind, issue.Message)
		}
	}
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "persist records into this SQLite database")
	importCmd.Flags().StringSliceVar(&importSheets, "sheet", nil, "import only the named sheet(s)")
	importCmd.Flags().IntVar(&importMaxRows, "max-rows", 0, "cap data rows per sheet")
	importCmd.Flags().StringVar(&importPatterns, "patterns", "", "YAML file with extra header patterns")
	importCmd.Flags().BoolVar(&importJSON, "json", false, "print the report as JSON")
}
