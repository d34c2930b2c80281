package pipeline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/matzehuels/isograph/pkg/errors"
)

// AvailableFiles lists the .graphml files in dir, sorted by name.
// A missing directory yields an empty list.
func AvailableFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "list %s", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if filepath.Ext(e.Name()) == apperrors.GraphFileExt {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// ProteinID returns the protein id for a graph file: its base name without
// extension.
func ProteinID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveInput maps a bare graph file name onto the data directory.
func resolveInput(dataDir, name string) (string, error) {
	if err := apperrors.ValidateGraphFileName(name); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
