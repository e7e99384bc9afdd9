package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := GetSimpleText(reader, "Say something", &out)
	require.NoError(t, err)

	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("partial"))

	got, err := GetSimpleText(reader, "Prompt", &out)
	require.NoError(t, err)
	assert.Equal(t, "partial", got)
}

func TestGetSimpleText_EOFWithoutInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Prompt", &out)
	assert.Error(t, err)
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("Oslo\n\n"))

	city, err := GetOptionalText(reader, "City", &out)
	require.NoError(t, err)
	require.NotNil(t, city)
	assert.Equal(t, "Oslo", *city)

	skipped, err := GetOptionalText(reader, "Country", &out)
	require.NoError(t, err)
	assert.Nil(t, skipped, "empty answer means skip")
}

func TestGetPassword_StubbedTerminal(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(fd int) ([]byte, error) {
		return []byte("P@ssw0rd1"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out, "Enter password")
	require.NoError(t, err)

	assert.Equal(t, "P@ssw0rd1", pw)
	assert.Contains(t, out.String(), "Enter password")
}
