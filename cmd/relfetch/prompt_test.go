package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/relfetch/internal/release"
)

var promptAssets = []release.Asset{
	{Name: "tool-linux.tar.gz"},
	{Name: "tool-darwin.tar.gz"},
	{Name: "tool-windows.zip"},
}

func TestAskSelectAsset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "first", input: "1\n", want: "tool-linux.tar.gz"},
		{name: "last without newline", input: "3", want: "tool-windows.zip"},
		{name: "retry after invalid", input: "9\nabc\n2\n", want: "tool-darwin.tar.gz"},
		{name: "quit", input: "q\n", wantErr: true},
		{name: "empty line", input: "\n", wantErr: true},
		{name: "end of input", input: "", wantErr: true},
		{name: "invalid then end of input", input: "7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			got, err := askSelectAsset(strings.NewReader(tt.input), &out, "Pick", promptAssets)
			if tt.wantErr {
				assert.ErrorIs(t, err, errNoSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Name)
			assert.Contains(t, out.String(), "  2) tool-darwin.tar.gz\n")
			assert.Contains(t, out.String(), "Pick [1-3, q to quit]: ")
		})
	}
}

func TestAskSelectAsset_NoAssets(t *testing.T) {
	_, err := askSelectAsset(strings.NewReader("1\n"), &bytes.Buffer{}, "Pick", nil)
	assert.ErrorContains(t, err, "no assets")
}
