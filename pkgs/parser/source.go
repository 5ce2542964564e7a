package parser

import (
	"fmt"
	"io"
	"os"
)

// Source is where the data to parse comes from.
type Source interface {
	// Read returns the data and the path it came from, if any.
	Read() (data, path string, err error)
}

type stringSource string

func (s stringSource) Read() (string, string, error) { return string(s), "", nil }

// FromString parses data held in memory.
func FromString(data string) Source { return stringSource(data) }

type pathSource string

func (s pathSource) Read() (string, string, error) {
	data, err := os.ReadFile(string(s))
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", string(s), err)
	}
	return string(data), string(s), nil
}

// FromPath parses the file at path. The path is recorded as the source of
// the resulting model.
func FromPath(path string) Source { return pathSource(path) }

type readerSource struct{ r io.Reader }

func (s readerSource) Read() (string, string, error) {
	data, err := io.ReadAll(s.r)
	if err != nil {
		return "", "", fmt.Errorf("reading data: %w", err)
	}
	return string(data), "", nil
}

// FromReader parses everything read from r.
func FromReader(r io.Reader) Source { return readerSource{r} }
