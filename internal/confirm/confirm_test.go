// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package confirm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"yes\n", true},
		{"yes", true},
		{"  yes \r\n", true},
		{"YES\n", false},
		{"y\n", false},
		{"no\n", false},
		{"yes please\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got, err := Ask(strings.NewReader(tt.input), &out, "/lib")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "/lib")
			assert.Contains(t, out.String(), "type 'yes' to proceed")
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty closed") }

func TestAsk_ReadError(t *testing.T) {
	var out bytes.Buffer
	ok, err := Ask(failingReader{}, &out, "/lib")
	require.Error(t, err)
	assert.False(t, ok)
}
