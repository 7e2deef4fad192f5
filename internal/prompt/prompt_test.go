package prompt

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	var out bytes.Buffer

	got, err := Text(bufio.NewReader(strings.NewReader("  alice \n")), &out, "Username")

	require.NoError(t, err)
	require.Equal(t, "alice", got)
	require.Equal(t, "Username: ", out.String())
}

func TestText_LastLineWithoutNewline(t *testing.T) {
	got, err := Text(bufio.NewReader(strings.NewReader("a@x.io")), io.Discard, "Email")

	require.NoError(t, err)
	require.Equal(t, "a@x.io", got)
}

func TestText_EmptyInput(t *testing.T) {
	_, err := Text(bufio.NewReader(strings.NewReader("")), io.Discard, "Email")

	require.ErrorIs(t, err, io.EOF)
}

func TestPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := Password(&out)
	require.NoError(t, err)
	require.Equal(t, "s3cret", string(pw))
	require.Equal(t, "Password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = Password(io.Discard)
	require.Error(t, err)
}
