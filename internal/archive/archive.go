package archive

import (
	"archive/zip"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/templui/resumebook/internal/model"
)

var ErrNoAssets = errors.New("no assets to archive")

// Archive is a finished ZIP container held in memory.
type Archive struct {
	Name     string
	Data     []byte
	Checksum string   // SHA-256 of Data, hex encoded
	Entries  []string // Entry names in write order
}

// Zip packages assets into a deflate-compressed container called name.
// Two assets with the same name get " (2)", " (3)"... before the extension.
func Zip(name string, assets []*model.Asset) (*Archive, error) {
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	now := time.Now()

	seen := make(map[string]int, len(assets))
	entries := make([]string, 0, len(assets))
	for _, asset := range assets {
		entry := uniqueName(asset.Name, seen)

		f, err := w.CreateHeader(&zip.FileHeader{
			Name:     entry,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to add %q: %w", entry, err)
		}
		_, err = f.Write(asset.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to write %q: %w", entry, err)
		}
		entries = append(entries, entry)
	}

	err := w.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to finish %s: %w", name, err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return &Archive{
		Name:     name,
		Data:     buf.Bytes(),
		Checksum: hex.EncodeToString(sum[:]),
		Entries:  entries,
	}, nil
}

func uniqueName(name string, seen map[string]int) string {
	seen[name]++
	n := seen[name]
	if n == 1 {
		return name
	}
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
	// A literal "X (2).pdf" upload could already hold the suffixed name.
	if _, taken := seen[candidate]; taken {
		return uniqueName(candidate, seen)
	}
	seen[candidate] = 1
	return candidate
}
