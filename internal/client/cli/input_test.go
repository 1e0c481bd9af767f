package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader { return bufio.NewReader(strings.NewReader(s)) }

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.Error(t, err)
}

func TestGetMultiline_DoubleEnter(t *testing.T) {
	var out bytes.Buffer
	got, err := GetMultiline(rdr("a\nb\n\n\n"), "Enter text", &out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", pw)
	assert.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	_, err = GetPassword(&out)
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "2024-06-02", want: "2024-06-02"},
		{in: "today", want: "2024-05-31"},
		{in: "Tomorrow", want: "2024-06-01"},
		{in: "02/06/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in, now)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC)

	got, err := ParseWhen("+90m", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(90*time.Minute), got)

	got, err = ParseWhen("2024-06-01 09:30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), got)

	_, err = ParseWhen("+-5m", now)
	require.Error(t, err)
	_, err = ParseWhen("soon", now)
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = ParseAmount("")
	require.NoError(t, err)
	assert.Zero(t, v)

	_, err = ParseAmount("-1")
	require.Error(t, err)
	_, err = ParseAmount("ten")
	require.Error(t, err)
}
