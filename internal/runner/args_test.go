package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/electron-builder-action/internal/model"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name     string
		platform model.Platform
		args     string
		want     []string
		hasError bool
	}{
		{"empty", model.PlatformLinux, "", nil, false},
		{"posix quotes", model.PlatformLinux, `--x64 -c.productName="My App"`, []string{"--x64", "-c.productName=My App"}, false},
		{"posix single quotes", model.PlatformMac, `-c.extraMetadata.name='a b'`, []string{"-c.extraMetadata.name=a b"}, false},
		{"posix backslash escapes", model.PlatformLinux, `a\ b`, []string{"a b"}, false},
		{"posix unterminated", model.PlatformLinux, `"oops`, nil, true},
		{"windows empty", model.PlatformWindows, "  ", nil, false},
		{"windows backslashes", model.PlatformWindows, `--config build\electron-builder.yml`, []string{"--config", `build\electron-builder.yml`}, false},
		{"windows quoted path", model.PlatformWindows, `"C:\Program Files\cert.pfx" --x64`, []string{`C:\Program Files\cert.pfx`, "--x64"}, false},
		{"windows quote inside word", model.PlatformWindows, `-c.productName="My App"`, []string{"-c.productName=My App"}, false},
		{"windows empty quoted", model.PlatformWindows, `a "" b`, []string{"a", "", "b"}, false},
		{"windows tabs", model.PlatformWindows, "a\tb", []string{"a", "b"}, false},
		{"windows unterminated", model.PlatformWindows, `"oops`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgs(tt.platform, tt.args)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), len(got))
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSplitArgs_UnknownPlatformPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = splitArgs(model.Platform("beos"), "") })
}
