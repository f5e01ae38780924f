package gen

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"timedata-generator/internal/diagnostic"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

//go:generate go tool stringer -type=WriteStatus -trimprefix=Status -output=writestatus_string.go

// WriteStatus is the outcome of a WriteIfDifferent call.
type WriteStatus int

const (
	_ WriteStatus = iota

	// StatusUnchanged means the file already held the content.
	StatusUnchanged
	// StatusCreated means the file did not exist.
	StatusCreated
	// StatusUpdated means the file existed with different content.
	StatusUpdated
)

// Writer emits files under a root directory, rewriting a file only when its
// content changes so that downstream builds see untouched mtimes.
type Writer struct {
	root   string
	dryRun bool
	log    logrus.FieldLogger
	stats  map[WriteStatus]int
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithDryRun makes the writer report what it would do without writing.
func WithDryRun() WriterOption {
	return func(w *Writer) {
		w.dryRun = true
	}
}

// WithWriterLogger sets the logger for per-file messages.
func WithWriterLogger(l logrus.FieldLogger) WriterOption {
	return func(w *Writer) {
		w.log = l
	}
}

// NewWriter creates a Writer rooted at root.
func NewWriter(root string, opts ...WriterOption) *Writer {
	w := &Writer{root: root, stats: make(map[WriteStatus]int)}
	for _, opt := range opts {
		opt(w)
	}

	if w.log == nil {
		w.log = discardLogger()
	}

	return w
}

// WriteIfDifferent writes content to the slash-separated path rel under the
// writer's root unless the file already holds exactly that content.
//
// The new content is written to a temporary file in the target directory
// and renamed into place, so the target always holds either the previous
// or the new content in full.
func (w *Writer) WriteIfDifferent(rel string, content []byte) (WriteStatus, error) {
	full := filepath.Join(w.root, filepath.FromSlash(rel))

	var status WriteStatus

	existing, err := os.ReadFile(full)

	switch {
	case err == nil && bytes.Equal(existing, content):
		status = StatusUnchanged
	case err == nil:
		status = StatusUpdated
	case errors.Is(err, fs.ErrNotExist):
		status = StatusCreated
	default:
		return 0, &diagnostic.WriteFailureError{Path: rel, Op: "read", Err: err}
	}

	if status != StatusUnchanged && !w.dryRun {
		if err := os.MkdirAll(filepath.Dir(full), dirPerm); err != nil {
			return 0, &diagnostic.WriteFailureError{Path: rel, Op: "mkdir", Err: err}
		}

		if err := writeAtomic(full, content); err != nil {
			return 0, &diagnostic.WriteFailureError{Path: rel, Op: "write", Err: err}
		}
	}

	w.stats[status]++

	w.log.WithFields(logrus.Fields{
		"path":   rel,
		"status": status.String(),
		"dryRun": w.dryRun,
	}).Debug("Emitted file")

	return status, nil
}

// Stats returns the number of files per status seen so far.
func (w *Writer) Stats() map[WriteStatus]int {
	res := make(map[WriteStatus]int, len(w.stats))
	for k, v := range w.stats {
		res[k] = v
	}

	return res
}

func writeAtomic(target string, content []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return err
	}

	if err = tmp.Sync(); err != nil {
		return err
	}

	if err = tmp.Chmod(filePerm); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), target)
}
