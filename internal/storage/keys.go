package storage

import (
	"path"
	"path/filepath"
	"strings"
)

const uploadsDir = "uploads"

// UploadKey returns the blob key for a record's original file.
func UploadKey(recordID, fileName string) string {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "document.docx"
	}
	return path.Join(uploadsDir, recordID+"_"+name)
}
