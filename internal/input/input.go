// Package input reads the documents handed to the validator: files, stdin and
// inline text.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

// ErrTooLarge is returned when an input exceeds the configured size limit.
var ErrTooLarge = errors.New("input exceeds size limit")

// Read reads the named source, "-" meaning stdin. maxBytes <= 0 disables the
// size limit.
func Read(source string, stdin io.Reader, maxBytes int) ([]byte, error) {
	if source == Stdin {
		return ReadLimited(stdin, maxBytes)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := ReadLimited(f, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return data, nil
}

// ReadLimited reads r to the end, failing once more than maxBytes arrive.
func ReadLimited(r io.Reader, maxBytes int) ([]byte, error) {
	if r == nil {
		return nil, errors.New("no reader")
	}
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxBytes {
		return nil, fmt.Errorf("%w of %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}
