package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/pinmap/pkg/errors"
)

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := stageFile(path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "rename into %s", path)
	}
	return nil
}

// writeFilesAtomic writes one document per format. Every document is staged
// before any is renamed into place, so a failed write leaves no output.
func writeFilesAtomic(formats []string, paths map[string]string, data map[string][]byte) error {
	staged := make([]string, 0, len(formats))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}
	for _, f := range formats {
		tmp, err := stageFile(paths[f], data[f])
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}
	for i, f := range formats {
		if err := os.Rename(staged[i], paths[f]); err != nil {
			cleanup()
			return errors.Wrap(errors.ErrCodeInternal, err, "rename into %s", paths[f])
		}
	}
	return nil
}

// stageFile writes data to a hidden temporary file in path's directory and
// returns its name.
func stageFile(path string, data []byte) (string, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "create output in %s", dir)
	}
	name := tmp.Name()
	_, err = tmp.Write(data)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Chmod(name, 0644)
	}
	if err != nil {
		os.Remove(name)
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return name, nil
}

// basePath derives the base output path from the output flag and the board
// path. A known format extension on output is stripped; an empty output
// takes the board file name, or "pinmap" for the reference board.
func basePath(output, input string, formats map[string]bool) string {
	if output == "" {
		if input == "" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if formats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its output file. A single format with an
// explicit output uses that path verbatim.
func outputPaths(output, input string, formats []string, valid map[string]bool) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input, valid)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}
