package main

import (
	"fmt"

	"github.com/TresPies-source/citelib/internal/bibtex"
	"github.com/TresPies-source/citelib/internal/config"
	"github.com/TresPies-source/citelib/internal/pdf"
	"github.com/spf13/cobra"
)

var pdfOpen bool

func init() {
	pdfCmd.Flags().BoolVar(&pdfOpen, "open", false, "Open the PDF in the configured viewer")
	rootCmd.AddCommand(pdfCmd)
}

var pdfCmd = &cobra.Command{
	Use:   "pdf <file.pdf>",
	Short: "Identify a PDF against the bibliography",
	Long: `Extract the DOI from a PDF and report which bibliography entries it
belongs to. When no DOI is found, fall back to matching entry titles
against the first page.

Bare names are resolved against pdf_root from cite.yml (or the global
config). --open hands the resolved file to the pdf_viewer program.

Examples:
  cite pdf paper.pdf
  cite pdf smith2020.pdf --open`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

// PDFResult is the response for the pdf command.
type PDFResult struct {
	Path        string          `json:"path"`
	DOI         string          `json:"doi,omitempty"`
	Title       string          `json:"title,omitempty"`
	MatchMethod string          `json:"match_method,omitempty"` // "doi" or "title"
	Matches     []bibtex.Record `json:"matches"`
}

func runPDF(cmd *cobra.Command, args []string) error {
	root, viewer := pdfSettings()
	opener := pdf.NewOpener(root, viewer)

	path, err := opener.Resolve(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	_, records := mustReadBibliography()

	doi, err := pdf.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitDataError, "reading PDF: %v", err)
	}

	var matches []bibtex.Record
	method := ""
	if doi != "" {
		if matches = pdf.MatchDOI(records, doi); len(matches) > 0 {
			method = "doi"
		}
	}
	if len(matches) == 0 {
		text, _ := pdf.ExtractText(path, 1)
		if matches = pdf.MatchTitle(records, text); len(matches) > 0 {
			method = "title"
		}
	}
	if matches == nil {
		matches = []bibtex.Record{}
	}

	title, _ := pdf.ExtractTitle(path)

	if pdfOpen {
		if err := opener.Open(path); err != nil {
			exitWithError(ExitError, "opening PDF: %v", err)
		}
	}

	if humanOutput {
		fmt.Printf("PDF:   %s\n", path)
		if doi != "" {
			fmt.Printf("DOI:   %s\n", doi)
		}
		if title != "" {
			fmt.Printf("Title: %s\n", truncateString(title, SearchTitleMaxLen))
		}
		if len(matches) == 0 {
			fmt.Println("\nNo matching bibliography entry")
		} else {
			fmt.Printf("\nMatched by %s:\n\n", method)
			for i, rec := range matches {
				printRecordSummary(i+1, rec)
			}
		}
	} else {
		outputJSON(PDFResult{
			Path:        path,
			DOI:         doi,
			Title:       title,
			MatchMethod: method,
			Matches:     matches,
		})
	}

	return nil
}

// pdfSettings returns pdf_root and pdf_viewer, preferring the project
// config and falling back to the global one for the root.
func pdfSettings() (root, viewer string) {
	if projRoot, err := config.FindProject("."); err == nil {
		if cfg, err := config.Load(projRoot); err == nil {
			root, viewer = cfg.PDFRoot, cfg.PDFViewer
		}
	}
	if root == "" {
		if global, err := config.LoadGlobalConfig(); err == nil {
			root = global.PDFRoot
		}
	}
	return root, viewer
}
