package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerreco/internal/pdfextract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume.pdf>",
	Short: "Extract plain text from a PDF resume",
	Long:  "Extract the plain text of a PDF resume and print it to stdout or write it to a file. Extraction is all-or-nothing: a document that cannot be fully read produces an error.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var extractOut string

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	text, err := pdfextract.ExtractText(data)
	if err != nil {
		return err
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", extractOut, err)
		}
		fmt.Printf("Extracted text written to %s\n", extractOut)
		return nil
	}

	fmt.Print(text)
	return nil
}
