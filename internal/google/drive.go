package google

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/templui/resumebook/internal/model"
	"google.golang.org/api/drive/v3"
)

// Drive adapts the Drive v3 API to service.Drive.
type Drive struct {
	svc *drive.Service
}

func NewDrive(svc *drive.Service) *Drive {
	return &Drive{svc: svc}
}

func (d *Drive) File(ctx context.Context, id string) (*model.DriveFile, error) {
	f, err := d.svc.Files.Get(id).
		Fields("id", "name", "mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", id, err)
	}

	return &model.DriveFile{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
	}, nil
}

func (d *Drive) Download(ctx context.Context, id string) ([]byte, error) {
	resp, err := d.svc.Files.Get(id).
		SupportsAllDrives(true).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", id, err)
	}
	return readBody(resp)
}

func (d *Drive) Export(ctx context.Context, id, mimeType string) ([]byte, error) {
	resp, err := d.svc.Files.Export(id, mimeType).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to export file %s as %s: %w", id, mimeType, err)
	}
	return readBody(resp)
}

// CopyAs relies on Drive converting Office uploads when the copy's MIME
// type is a Google Workspace type.
func (d *Drive) CopyAs(ctx context.Context, id, name, mimeType, folderID string) (string, error) {
	f, err := d.svc.Files.Copy(id, &drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{folderID},
	}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to copy file %s: %w", id, err)
	}
	return f.Id, nil
}

func (d *Drive) Trash(ctx context.Context, id string) error {
	_, err := d.svc.Files.Update(id, &drive.File{Trashed: true}).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to trash file %s: %w", id, err)
	}
	return nil
}

func readBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}
