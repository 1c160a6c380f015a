package model

// MIME types the storage backend reports for resume uploads.
const (
	MimePDF       = "application/pdf"
	MimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDoc       = "application/msword"
	MimeDotx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.template"
	MimeGoogleDoc = "application/vnd.google-apps.document"
)

// Asset collection names, used in archive manifests.
const (
	CollectionOriginal  = "original"
	CollectionConverted = "converted"
)

// DriveFile is the metadata of an uploaded file as the storage backend sees it.
type DriveFile struct {
	ID       string
	Name     string
	MimeType string
}

// Asset is a named binary destined for one of the output archives.
type Asset struct {
	Name     string
	MimeType string
	Data     []byte
}

func (a *Asset) Size() int64 {
	return int64(len(a.Data))
}
