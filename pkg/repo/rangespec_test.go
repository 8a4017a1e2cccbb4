// Copyright 2026 yum-repo-server Authors
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDescriptor(t *testing.T) FileDescriptor {
	t.Helper()
	d, err := NewFileDescriptor("updates", "x86_64", "foo-1.0.rpm")
	require.NoError(t, err)
	return d
}

func TestParseRangeSpec_Closed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		start  int64
		end    int64
	}{
		{"bytes=0-99", 0, 99},
		{"bytes=500-999", 500, 999},
		{"bytes=0-0", 0, 0},
		{"bytes=7-7", 7, 7},
		{"bytes=1-9223372036854775807", 1, 9223372036854775807},
	}

	for _, tc := range tests {
		t.Run(tc.header, func(t *testing.T) {
			t.Parallel()

			spec, err := ParseRangeSpec(tc.header, testDescriptor(t))
			require.NoError(t, err)
			assert.Equal(t, tc.start, spec.Start)
			assert.Equal(t, tc.end, spec.End)
			assert.True(t, spec.HasEnd)
			assert.Equal(t, tc.end-tc.start+1, spec.Length())
		})
	}
}

func TestParseRangeSpec_OpenEnded(t *testing.T) {
	t.Parallel()

	spec, err := ParseRangeSpec("bytes=500-", testDescriptor(t))
	require.NoError(t, err)
	assert.Equal(t, int64(500), spec.Start)
	assert.False(t, spec.HasEnd)
	assert.Equal(t, int64(-1), spec.Length())
}

func TestParseRangeSpec_Malformed(t *testing.T) {
	t.Parallel()

	headers := []string{
		"",
		"bytes=abc-5",
		"bytes=5",
		"bytes=-5",
		"bytes=1,2-3",
		"bytes=+1-5",
		"bytes=1-+5",
		"bytes=01-5",
		"bytes=1-05",
		"bytes=1--5",
		"bytes= 1-5",
		"bits=1-5",
		"1-5",
		"bytes=1-5-9",
		// overflows int64, still matches the grammar
		"bytes=99999999999999999999-",
		"bytes=0-99999999999999999999",
	}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			t.Parallel()

			_, err := ParseRangeSpec(header, testDescriptor(t))
			require.Error(t, err)
			assert.Equal(t, ErrCodeMalformedRange, CodeOf(err))
		})
	}
}

func TestParseRangeSpec_InvalidOrder(t *testing.T) {
	t.Parallel()

	_, err := ParseRangeSpec("bytes=10-5", testDescriptor(t))
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidRangeOrder, CodeOf(err))

	// diagnostics carry the header and the descriptor path
	var domainErr *Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "bytes=10-5", domainErr.Header)
	assert.Contains(t, domainErr.Message, "updates/x86_64/foo-1.0.rpm")
}

func TestParseRangeSpec_OrderBeatsGrammarOnlyWhenSyntaxValid(t *testing.T) {
	t.Parallel()

	// Inverted but syntactically invalid ranges stay MalformedRange.
	_, err := ParseRangeSpec("bytes=10-05", testDescriptor(t))
	require.Error(t, err)
	assert.Equal(t, ErrCodeMalformedRange, CodeOf(err))
}
