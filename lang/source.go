package lang

import (
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/readahead"
)

// Source supplies the text of a document and a locator naming it.
// The locator is used only in diagnostics.
type Source interface {
	Text() (string, error)
	Locator() string
}

type stringSource struct{ text, locator string }

func (s stringSource) Text() (string, error) { return s.text, nil }

func (s stringSource) Locator() string { return s.locator }

// String returns a source holding text, with no locator.
func String(text string) Source { return stringSource{text: text} }

// Named returns a source holding text under the given locator.
func Named(locator, text string) Source {
	return stringSource{text: text, locator: locator}
}

type fileSource struct{ path string }

// File returns a source that reads the file at path when its text is
// requested. The path is the locator.
func File(path string) Source { return fileSource{path} }

func (s fileSource) Locator() string { return s.path }

func (s fileSource) Text() (string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", s.path))
	}

	return readAll(s.path, f)
}

type readerSource struct {
	name string
	r    io.Reader
}

// Reader returns a source that drains r when its text is requested.
// The text can be requested only once; r is closed after it is drained
// if it implements io.Closer.
func Reader(name string, r io.Reader) Source { return readerSource{name, r} }

func (s readerSource) Locator() string { return s.name }

func (s readerSource) Text() (string, error) {
	if s.r == nil {
		return "", ErrReadInput.With(
			slog.String("source", s.name),
			slog.String("reason", "nil reader"),
		)
	}

	return readAll(s.name, s.r)
}

// Read-ahead buffering for a single source.
const (
	readBuffers    = 4
	readBufferSize = 64 << 10
)

// readAll drains r through an asynchronous read-ahead buffer. Closing the
// buffer also closes r if it implements io.Closer.
func readAll(name string, r io.Reader) (string, error) {
	var (
		ra  io.ReadCloser
		err error
	)

	if rc, ok := r.(io.ReadCloser); ok {
		ra, err = readahead.NewReadCloserSize(rc, readBuffers, readBufferSize)
	} else {
		ra, err = readahead.NewReaderSize(r, readBuffers, readBufferSize)
	}

	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", name))
	}
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", name))
	}

	return string(data), nil
}
