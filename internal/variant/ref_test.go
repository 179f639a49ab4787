package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/duotone/internal/renderer/highlight"
)

func TestThemeRef(t *testing.T) {
	var zero ThemeRef
	assert.True(t, zero.IsZero())
	assert.Equal(t, "<none>", zero.String())
	assert.True(t, Resolved(nil).IsZero())

	raw := RawName("nord")
	assert.False(t, raw.IsZero())
	assert.Equal(t, "nord", raw.Name())
	_, ok := raw.Theme()
	assert.False(t, ok)

	theme := highlight.NordTheme()
	resolved := Resolved(theme)
	assert.Equal(t, "nord", resolved.Name())
	got, ok := resolved.Theme()
	require.True(t, ok)
	assert.Same(t, theme, got)
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		in      string
		key     string
		theme   string
		wantErr bool
	}{
		{in: "light=github-light", key: "light", theme: "github-light"},
		{in: " dark = nord ", key: "dark", theme: "nord"},
		{in: "monokai", key: "monokai", theme: "monokai"},
		{in: "dark=", wantErr: true},
		{in: "=nord", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			req, err := ParseRequest(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, req.Key)
			assert.Equal(t, tt.theme, req.Theme.Name())
		})
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, []string{"light", "dark"}, Keys(lightDark()))
}
