package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to every writer like io.MultiWriter, but a failing
// writer does not stop the others: the log file keeps rotating when the
// console is gone, and the other way around. A write counts as done when at
// least one writer took it; all failures are returned combined.
type CombinedWriter struct {
	writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		writers: writers,
	}
}

func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var (
		errs    error
		written bool
	)
	for _, w := range cw.writers {
		if _, err := w.Write(p); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written = true
	}

	if !written && errs != nil {
		return 0, errs
	}
	return len(p), errs
}
