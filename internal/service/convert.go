package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/templui/resumebook/internal/model"
)

// Drive is the file storage and conversion backend resumes are read from.
type Drive interface {
	// File resolves a file ID to its metadata.
	File(ctx context.Context, id string) (*model.DriveFile, error)

	// Download returns the stored bytes of a binary file.
	Download(ctx context.Context, id string) ([]byte, error)

	// Export renders a native document in another MIME type.
	Export(ctx context.Context, id, mimeType string) ([]byte, error)

	// CopyAs copies a file into folderID, converting it to mimeType, and
	// returns the new file's ID.
	CopyAs(ctx context.Context, id, name, mimeType, folderID string) (string, error)

	// Trash soft-deletes a file.
	Trash(ctx context.Context, id string) error
}

// Converter routes each upload through its conversion policy:
//
//	.pdf    original, no conversion
//	.docx   original, PDF rendered from a temporary Google Doc copy
//	.doc    original, no conversion (the API can't export legacy formats)
//	.dotx   original, no conversion (same)
//	GDoc    .docx export, PDF export
//
// Converted assets are always PDF.
type Converter struct {
	drive       Drive
	tmpFolderID string
}

func NewConverter(drive Drive, tmpFolderID string) *Converter {
	return &Converter{
		drive:       drive,
		tmpFolderID: tmpFolderID,
	}
}

// Convert returns the original asset and the converted one, which is nil
// when the format has no automatic conversion.
func (c *Converter) Convert(ctx context.Context, file *model.DriveFile) (*model.Asset, *model.Asset, error) {
	switch file.MimeType {
	case model.MimePDF, model.MimeDoc, model.MimeDotx:
		orig, err := c.download(ctx, file)
		if err != nil {
			return nil, nil, err
		}
		return orig, nil, nil

	case model.MimeDocx:
		orig, err := c.download(ctx, file)
		if err != nil {
			return nil, nil, err
		}
		conv, err := c.pdfViaCopy(ctx, file)
		if err != nil {
			return nil, nil, err
		}
		return orig, conv, nil

	case model.MimeGoogleDoc:
		// Native docs have no bytes of their own; both outputs are exports.
		orig, err := c.export(ctx, file, model.MimeDocx, ".docx")
		if err != nil {
			return nil, nil, err
		}
		conv, err := c.export(ctx, file, model.MimePDF, ".pdf")
		if err != nil {
			return nil, nil, err
		}
		return orig, conv, nil

	default:
		return nil, nil, &UnsupportedFormatError{Name: file.Name, MimeType: file.MimeType}
	}
}

func (c *Converter) download(ctx context.Context, file *model.DriveFile) (*model.Asset, error) {
	data, err := c.drive.Download(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to download %q: %w", file.Name, err)
	}
	return &model.Asset{
		Name:     file.Name,
		MimeType: file.MimeType,
		Data:     data,
	}, nil
}

func (c *Converter) export(ctx context.Context, file *model.DriveFile, mimeType, ext string) (*model.Asset, error) {
	data, err := c.drive.Export(ctx, file.ID, mimeType)
	if err != nil {
		return nil, &ConversionError{Name: file.Name, Target: mimeType, Err: err}
	}
	return &model.Asset{
		Name:     file.Name + ext,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// pdfViaCopy imports the file as a Google Doc in the tmp folder, exports
// that copy as PDF and trashes it. The copy never outlives this call.
func (c *Converter) pdfViaCopy(ctx context.Context, file *model.DriveFile) (asset *model.Asset, err error) {
	tmpName := fmt.Sprintf("%s (resumebook tmp %s)", file.Name, uuid.New().String())
	copyID, err := c.drive.CopyAs(ctx, file.ID, tmpName, model.MimeGoogleDoc, c.tmpFolderID)
	if err != nil {
		return nil, &ConversionError{Name: file.Name, Target: model.MimePDF, Err: err}
	}

	defer func() {
		trashErr := c.drive.Trash(ctx, copyID)
		if trashErr != nil {
			slog.Error("failed to trash temporary copy", "error", trashErr, "file_id", copyID, "name", tmpName)
			err = errors.Join(err, fmt.Errorf("failed to trash temporary copy %s: %w", copyID, trashErr))
			asset = nil
		}
	}()

	tmp := &model.DriveFile{ID: copyID, Name: file.Name, MimeType: model.MimeGoogleDoc}
	return c.export(ctx, tmp, model.MimePDF, ".pdf")
}
