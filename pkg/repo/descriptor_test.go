package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileDescriptor_Path(t *testing.T) {
	t.Parallel()

	d, err := NewFileDescriptor("updates", "x86_64", "foo-1.0.rpm")
	require.NoError(t, err)
	assert.Equal(t, "updates/x86_64/foo-1.0.rpm", d.Path())
	assert.Equal(t, d.Path(), d.String())
}

func TestNewFileDescriptor_RequiresAllComponents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		repo, arch, filename string
	}{
		{"empty repo", "", "x86_64", "foo.rpm"},
		{"empty arch", "updates", "", "foo.rpm"},
		{"empty filename", "updates", "x86_64", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFileDescriptor(tc.repo, tc.arch, tc.filename)
			require.Error(t, err)
		})
	}
}
