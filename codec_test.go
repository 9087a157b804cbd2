package trie

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
	}{
		{name: "empty", entries: []string{}},
		{name: "duplicates", entries: []string{"ab", "ab", "ab"}},
		{name: "prefixes", entries: []string{"car", "carpet", "card"}},
		{name: "interleaved duplicates", entries: []string{"ab", "c", "ab", "abc", "c"}},
		{name: "empty strings", entries: []string{"", "x", "", "xy"}},
		{name: "unicode", entries: []string{"日本", "日本語", "héllo", "hé", "🙂🙃", "🙂"}},
		{
			name: "paths",
			entries: []string{
				"/usr/bin/env", "/usr/bin/go", "/usr/lib/go/src", "/usr/local/bin/gofmt",
				"/etc/hosts", "/etc/hostname", "/usr/bin/go", "/",
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := Encode(tc.entries)
			require.NoError(t, err)
			decoded, err := Decode(encoded)
			require.NoError(t, err)

			want := slices.Clone(tc.entries)
			got := slices.Clone(decoded)
			slices.Sort(want)
			slices.Sort(got)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("decoded multiset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		encoded, err := Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, ";", encoded)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})

	t.Run("duplicates", func(t *testing.T) {
		encoded, err := Encode([]string{"ab", "ab", "ab"})
		require.NoError(t, err)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "ab", "ab"}, decoded)
	})

	t.Run("prefix relationship", func(t *testing.T) {
		encoded, err := Encode([]string{"car", "carpet", "card"})
		require.NoError(t, err)
		decoded, err := Decode(encoded)
		require.NoError(t, err)
		assert.Equal(t, []string{"car", "carpet", "card"}, decoded)
	})

	t.Run("alphabet violation", func(t *testing.T) {
		encoded, err := Encode([]string{"a;b"})
		require.ErrorIs(t, err, ErrAlphabetViolation)
		assert.Empty(t, encoded)
	})

	t.Run("shares prefixes", func(t *testing.T) {
		entries := make([]string, 0, 26)
		for r := 'a'; r <= 'z'; r++ {
			entries = append(entries, "/api/users/"+string(r))
		}
		encoded, err := Encode(entries)
		require.NoError(t, err)
		assert.Less(t, len(encoded), len(strings.Join(entries, "\n")))
	})
}

func TestDecode(t *testing.T) {
	t.Run("malformed input", func(t *testing.T) {
		decoded, err := Decode("a[3")
		require.ErrorIs(t, err, ErrMalformedEncoding)
		assert.Nil(t, decoded)
	})

	t.Run("max strings", func(t *testing.T) {
		c := NewCodec().WithMaxStrings(2)
		_, err := c.Decode("a[3];;")
		require.ErrorIs(t, err, ErrCountOverflow)

		decoded, err := c.Decode("a[2];;")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "a"}, decoded)
	})

	t.Run("negative limit means none", func(t *testing.T) {
		decoded, err := NewCodec().WithMaxStrings(-1).Decode("a[3];;")
		require.NoError(t, err)
		assert.Len(t, decoded, 3)
	})
}

func TestCodecNormalisation(t *testing.T) {
	entries := []string{"caf\u00e9", "cafe\u0301"}

	plain, err := NewCodec().Encode(entries)
	require.NoError(t, err)
	decoded, err := Decode(plain)
	require.NoError(t, err)
	assert.ElementsMatch(t, entries, decoded)

	normalised, err := NewCodec().WithNormalisation().Encode(entries)
	require.NoError(t, err)
	assert.Equal(t, "c;a;f;\u00e9[2];;", normalised)
	assert.Less(t, len(normalised), len(plain))

	c := NewCodec().WithNormalisation().WithoutNormalisation()
	again, err := c.Encode(entries)
	require.NoError(t, err)
	assert.Equal(t, plain, again)
}

func TestCodecLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := NewCodec().WithLogger(logger)

	encoded, err := c.Encode([]string{"ab", "ac"})
	require.NoError(t, err)
	_, err = c.Decode(encoded)
	require.NoError(t, err)
	_, err = c.Decode("a[3")
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "encoded strings")
	assert.Contains(t, out, "decoded strings")
	assert.Contains(t, out, "decode failed")

	// a nil logger falls back to discarding
	_, err = NewCodec().WithLogger(nil).Encode([]string{"x"})
	require.NoError(t, err)
}
