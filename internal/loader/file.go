package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/util"
)

// FileLoader reads catalogs bundled as JSON or YAML files.
type FileLoader struct {
	Fs afero.Fs
}

// NewFileLoader returns a loader on the OS filesystem.
func NewFileLoader() *FileLoader {
	return &FileLoader{Fs: afero.NewOsFs()}
}

// Load reads the records in path. The format follows the extension.
func (l *FileLoader) Load(path string) ([]catalog.RawRecord, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(l.Fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("catalog file %s: %w", path, util.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	records, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	util.DebugLog("Loaded %d records from %s", len(records), path)
	return records, nil
}

func decoderFor(path string) (func([]byte) ([]catalog.RawRecord, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeRecords, nil
	case ".yaml", ".yml":
		return DecodeYAMLRecords, nil
	default:
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedFormat, path)
	}
}
