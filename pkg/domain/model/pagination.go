package model

import "github.com/m-mizutani/goerr/v2"

const (
	DefaultPage     = 1
	DefaultByteSize = 204800
	DefaultPageSize = 10
)

// BytePage is one page of the flattened file list bounded by byte size
type BytePage struct {
	ProjectName    string     `json:"projectName"`
	Files          []FlatFile `json:"files"`
	Page           int        `json:"page"`
	ByteSize       int64      `json:"byteSize"`
	TotalPages     int        `json:"totalPages"`
	TotalFilesSize int64      `json:"totalFilesSize"`
}

// FolderPage is one page of folder records
type FolderPage struct {
	ProjectName string         `json:"projectName"`
	Files       []FolderRecord `json:"files"`
	TotalFiles  int            `json:"totalFiles"`
	Page        int            `json:"page"`
	PageSize    int            `json:"pageSize"`
}

// PaginateByBytes packs the flattened file list into pages of at most
// byteSize bytes of content, in walk order. A file larger than byteSize gets
// a page of its own that is returned empty.
func PaginateByBytes(s *Snapshot, page int, byteSize int64) (*BytePage, error) {
	if page < 1 {
		return nil, goerr.Wrap(ErrInvalidParameter, "page must be positive", goerr.V("page", page))
	}
	if byteSize < 1 {
		return nil, goerr.Wrap(ErrInvalidParameter, "byteSize must be positive", goerr.V("byteSize", byteSize))
	}

	result := &BytePage{
		ProjectName: s.ProjectName,
		Files:       []FlatFile{},
		Page:        page,
		ByteSize:    byteSize,
	}

	// current is the page being filled, 0 until the first file is seen.
	// sealed closes a page that holds an oversized file.
	var (
		current int
		used    int64
		sealed  bool
	)
	for _, f := range s.Flatten() {
		size := int64(len(f.Content))
		result.TotalFilesSize += size

		if current == 0 || sealed || used+size > byteSize {
			current++
			used = 0
			sealed = false
		}

		if size > byteSize {
			// oversized files take a page and are never emitted
			sealed = true
			continue
		}

		used += size
		if current == page {
			result.Files = append(result.Files, f)
		}
	}

	result.TotalPages = int(ceilDiv(result.TotalFilesSize, byteSize))
	if current > result.TotalPages {
		result.TotalPages = current
	}

	return result, nil
}

// PaginateByFolders applies an offset/limit window over the folder records
func PaginateByFolders(s *Snapshot, page, pageSize int) (*FolderPage, error) {
	if page < 1 {
		return nil, goerr.Wrap(ErrInvalidParameter, "page must be positive", goerr.V("page", page))
	}
	if pageSize < 1 {
		return nil, goerr.Wrap(ErrInvalidParameter, "pageSize must be positive", goerr.V("pageSize", pageSize))
	}

	total := len(s.Folders)
	start, end := total, total
	// compare in page units so large page or pageSize values cannot overflow
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	if page-1 < pages {
		start = (page - 1) * pageSize
		end = total
		if pageSize < total-start {
			end = start + pageSize
		}
	}

	files := make([]FolderRecord, end-start)
	copy(files, s.Folders[start:end])

	return &FolderPage{
		ProjectName: s.ProjectName,
		Files:       files,
		TotalFiles:  total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
