package filerenamer

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

type Lister interface {
	ListFiles(dir string) ([]FileEntry, error)
}

// FilesystemLister lists the immediate regular children of a directory.
type FilesystemLister struct {
	fs              afero.Fs
	excludePatterns []string
}

func NewFilesystemLister(fs afero.Fs, excludePatterns []string) *FilesystemLister {
	return &FilesystemLister{
		fs:              fs,
		excludePatterns: excludePatterns,
	}
}

// ListFiles returns the files of dir sorted by byte order of their names.
// Directories and names matching an exclude pattern are left out.
func (l *FilesystemLister) ListFiles(dir string) ([]FileEntry, error) {
	infos, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, errors.Errorf("%w: reading %s: %s", ErrInvalidDirectory, dir, err)
	}

	var files []FileEntry
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		if l.excluded(info.Name()) {
			continue
		}
		files = append(files, FileEntry{Name: info.Name()})
	}

	slices.SortFunc(files, func(a, b FileEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return files, nil
}

func (l *FilesystemLister) excluded(name string) bool {
	for _, pattern := range l.excludePatterns {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
