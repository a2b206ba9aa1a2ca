package cmd

import (
	"bytes"
	"io"
)

// failureFilter passes through transcript lines that report failures or
// summarize a run.
type failureFilter struct {
	w   io.Writer
	buf []byte
}

func (f *failureFilter) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	for {
		i := bytes.IndexByte(f.buf, '\n')
		if i < 0 {
			return len(p), nil
		}
		line := f.buf[:i+1]
		if keepLine(line) {
			if _, err := f.w.Write(line); err != nil {
				return 0, err
			}
		}
		f.buf = f.buf[i+1:]
	}
}

func keepLine(line []byte) bool {
	return bytes.HasPrefix(line, []byte("scenario ")) ||
		bytes.HasPrefix(line, []byte("ok ")) ||
		bytes.HasPrefix(line, []byte("FAIL ")) ||
		bytes.Contains(line, []byte("] FAIL "))
}
