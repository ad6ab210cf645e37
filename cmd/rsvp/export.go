package rsvp

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	s3pkg "github.com/lovefest/lovefest_backend/pkg/s3"
)

func NewExportCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the sheet as CSV",
		Long: `Export the sheet as CSV.

Without --out the file is uploaded to the configured S3 bucket and a
presigned download link is printed. Use --out - to write to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			sh, closeFn, err := openSheet(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			var buf bytes.Buffer
			if err := exportCSV(ctx, sh, rsvp.HeaderFor(cfg.Form.ContactField), &buf); err != nil {
				return err
			}

			switch outPath {
			case "-":
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			case "":
			default:
				if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
				return nil
			}

			client, err := s3pkg.New(ctx, cfg.S3)
			if err != nil {
				return err
			}
			key := client.Key(exportName(cfg.Sheet.Name, time.Now()))
			if err := client.Upload(ctx, key, "text/csv", bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
				return err
			}
			link, err := client.PresignDownload(ctx, key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s\n%s\n", key, link)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write to a local file instead of S3 (- for stdout)")

	return cmd
}

func exportName(sheetName string, at time.Time) string {
	return fmt.Sprintf("%s-%s.csv", sheetName, at.UTC().Format("20060102-150405"))
}

// exportCSV writes the header row followed by every data row as stored. A
// sheet without a header row gets fallback instead.
func exportCSV(ctx context.Context, sh sheet.Sheet, fallback []string, w io.Writer) error {
	header := fallback
	h, err := sh.Header(ctx)
	if err != nil {
		return err
	}
	if h != nil && len(h.Cells) > 0 {
		header = h.Cells
	}
	rows, err := sh.Rows(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
