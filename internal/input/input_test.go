package input

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	data, err := Read(path, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestRead_Stdin(t *testing.T) {
	data, err := Read(Stdin, strings.NewReader(`[1]`), 10)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.json"), nil, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadLimited(t *testing.T) {
	data, err := ReadLimited(strings.NewReader("12345"), 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	_, err = ReadLimited(strings.NewReader("123456"), 5)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadLimited(nil, 5)
	assert.Error(t, err)
}
