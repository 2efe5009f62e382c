package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"pricecheck-service/internal/config"
)

const (
	mimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
	mimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeXLS         = "application/vnd.ms-excel"
	mimeCSV         = "text/csv"
)

// DriveLoader downloads private spreadsheets shared with a service account.
// Google Sheets are exported to XLSX.
type DriveLoader struct {
	files *drive.FilesService
	log   zerolog.Logger
}

func NewDriveLoader(ctx context.Context, cfg config.SourceConfig, logger zerolog.Logger) (*DriveLoader, error) {
	opts := append(ClientOptions(cfg), option.WithScopes(drive.DriveReadonlyScope))
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive client: %w", err)
	}
	return &DriveLoader{files: svc.Files, log: logger}, nil
}

func (d *DriveLoader) Load(ctx context.Context, fileID string) (Blob, error) {
	meta, err := d.files.Get(fileID).Fields("name", "mimeType").SupportsAllDrives(true).Context(ctx).Do()
	if err != nil {
		return Blob{}, fmt.Errorf("drive metadata: %w", err)
	}
	name := meta.Name
	if name == "" {
		name = fileID
	}

	var body io.ReadCloser
	switch meta.MimeType {
	case mimeGoogleSheet:
		resp, err := d.files.Export(fileID, mimeXLSX).Context(ctx).Download()
		if err != nil {
			return Blob{}, fmt.Errorf("drive export: %w", err)
		}
		body, name = resp.Body, withExt(name, ".xlsx")
	default:
		switch meta.MimeType {
		case mimeXLSX:
			name = withExt(name, ".xlsx")
		case mimeXLS:
			name = withExt(name, ".xls")
		case mimeCSV:
			name = withExt(name, ".csv")
		default:
			d.log.Warn().Str("file", name).Str("mime", meta.MimeType).Msg("not a spreadsheet mime type, trying as xlsx")
			if !strings.Contains(name, ".") {
				name += ".xlsx"
			}
		}
		resp, err := d.files.Get(fileID).SupportsAllDrives(true).Context(ctx).Download()
		if err != nil {
			return Blob{}, fmt.Errorf("drive download: %w", err)
		}
		body = resp.Body
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return Blob{}, fmt.Errorf("drive read: %w", err)
	}
	return Blob{Name: name, Data: data}, nil
}
