package enumtable

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Write truncates the file at path, creating it if needed, and writes data
// into it. Symlinks are followed and an existing file keeps its mode.
func Write(fs afero.Fs, path string, data []byte) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return errors.Wrapf(err, "unable to write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}
	return nil
}
