package model

import (
	"encoding/base64"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// ContentEncoding tells how FileRecord.Content must be read back
type ContentEncoding string

const (
	EncodingUTF8   ContentEncoding = "utf8"
	EncodingBase64 ContentEncoding = "base64"
)

// RootFolder is the relative path of the scanned root directory itself
const RootFolder = "."

// FileRecord is a single file found directly inside a folder
type FileRecord struct {
	Name     string          `json:"name"`
	Content  string          `json:"content"`
	Encoding ContentEncoding `json:"encoding"`
	MimeType string          `json:"mimeType"`
	Size     int64           `json:"size"`
}

// NewFileRecord builds a FileRecord from raw bytes. Valid UTF-8 is kept as
// text, anything else is base64 encoded.
func NewFileRecord(name string, data []byte) FileRecord {
	rec := FileRecord{
		Name:     name,
		MimeType: mimetype.Detect(data).String(),
		Size:     int64(len(data)),
	}

	if utf8.Valid(data) {
		rec.Content = string(data)
		rec.Encoding = EncodingUTF8
	} else {
		rec.Content = base64.StdEncoding.EncodeToString(data)
		rec.Encoding = EncodingBase64
	}

	return rec
}

// Bytes restores the original file bytes
func (r FileRecord) Bytes() ([]byte, error) {
	if r.Encoding == EncodingBase64 {
		return base64.StdEncoding.DecodeString(r.Content)
	}
	return []byte(r.Content), nil
}

// ContentSize is the UTF-8 byte length of the serialized content. Pagination
// and size totals are computed from it, so base64 expansion counts.
func (r FileRecord) ContentSize() int64 {
	return int64(len(r.Content))
}

// FolderRecord holds a directory's relative path and the files directly in it
type FolderRecord struct {
	Folder string       `json:"folder"`
	Files  []FileRecord `json:"files"`
}

// Snapshot is the result of one walk of the project root
type Snapshot struct {
	ProjectName string         `json:"projectName"`
	Folders     []FolderRecord `json:"folders"`
}

// FlatFile is a file addressed by its path relative to the project root
type FlatFile struct {
	FileName string          `json:"fileName"`
	Content  string          `json:"content"`
	Encoding ContentEncoding `json:"encoding"`
	MimeType string          `json:"mimeType"`
}

// Flatten lists every file of the snapshot in walk order
func (s *Snapshot) Flatten() []FlatFile {
	var files []FlatFile
	for _, folder := range s.Folders {
		for _, f := range folder.Files {
			name := f.Name
			if folder.Folder != RootFolder {
				name = path.Join(folder.Folder, f.Name)
			}
			files = append(files, FlatFile{
				FileName: name,
				Content:  f.Content,
				Encoding: f.Encoding,
				MimeType: f.MimeType,
			})
		}
	}
	return files
}

// Metadata summarizes the snapshot without file contents
func (s *Snapshot) Metadata() *StructureMetadata {
	meta := &StructureMetadata{ProjectName: s.ProjectName}
	for _, folder := range s.Folders {
		for _, f := range folder.Files {
			meta.TotalFiles++
			meta.TotalSizeInBytes += f.ContentSize()
		}
	}
	return meta
}

// Tree renders the snapshot as nested objects: directories map to objects,
// files map to their content.
func (s *Snapshot) Tree() map[string]any {
	root := map[string]any{}
	for _, folder := range s.Folders {
		node := root
		if folder.Folder != RootFolder {
			for _, part := range strings.Split(folder.Folder, "/") {
				child, ok := node[part].(map[string]any)
				if !ok {
					child = map[string]any{}
					node[part] = child
				}
				node = child
			}
		}
		for _, f := range folder.Files {
			node[f.Name] = f.Content
		}
	}
	return root
}

// StructureMetadata is the response of the metadata endpoint
type StructureMetadata struct {
	ProjectName      string `json:"projectName"`
	TotalFiles       int    `json:"totalFiles"`
	TotalSizeInBytes int64  `json:"totalSizeInBytes"`
}
