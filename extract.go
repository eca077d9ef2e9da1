package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/Aashish23092/soil-health-scanner/dto"
)

var (
	extractPassword string
	extractVision   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract soil readings from a card photo, PDF or text file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrapf(err, "extract: read %s", args[0])
		}

		svc := newScanService(cfg, extractVision)
		ctx := cmd.Context()

		var result *dto.ExtractionResult
		switch mimeType := detectMimeType(args[0], data); {
		case strings.HasPrefix(mimeType, "text/"):
			result = svc.ExtractText(string(data))
		case extractVision:
			result, err = svc.ExtractWithVision(ctx, data, mimeType, extractPassword)
		default:
			result, err = svc.ExtractFromFile(ctx, data, mimeType, extractPassword)
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

// detectMimeType trusts the extension for PDFs and sniffs everything else.
func detectMimeType(path string, data []byte) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "application/pdf"
	}
	mimeType := http.DetectContentType(data)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return mimeType
}

func init() {
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "password for an encrypted PDF card")
	extractCmd.Flags().BoolVar(&extractVision, "vision", false, "read the card with the vision model, falling back to OCR")
	rootCmd.AddCommand(extractCmd)
}
