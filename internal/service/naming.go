package service

import (
	"strings"

	"github.com/templui/resumebook/internal/model"
)

// RenameAssets gives both assets the "{fullName} Resume.{ext}" form. The
// original keeps its own extension (case preserved); converted is always PDF.
func RenameAssets(orig, conv *model.Asset, fullName string) {
	orig.Name = fullName + " Resume." + extension(orig.Name)
	if conv != nil {
		conv.Name = fullName + " Resume.pdf"
	}
}

// extension is the text after the last dot, or the whole name without one.
func extension(name string) string {
	i := strings.LastIndex(name, ".")
	return name[i+1:]
}
