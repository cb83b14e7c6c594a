package runner

import (
	"errors"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"

	"github.com/mmr-tortoise/electron-builder-action/internal/model"
)

// errUnterminatedQuote is returned by splitWindowsArgs for an unbalanced ".
var errUnterminatedQuote = errors.New("unterminated quoted string")

// splitArgs turns the free-form "args" input into argv.
//
// mac and linux runners use POSIX shell rules (go-shellquote), so quoting
// and backslash escapes behave as they would in bash. Windows runners pass
// paths like build\electron-builder.yml, where a backslash is a path
// separator, so only whitespace and double quotes are significant there.
func splitArgs(platform model.Platform, args string) ([]string, error) {
	switch platform {
	case model.PlatformWindows:
		return splitWindowsArgs(args)
	case model.PlatformMac, model.PlatformLinux:
		return shellquote.Split(args)
	default:
		panic("runner: unknown platform " + string(platform))
	}
}

// splitWindowsArgs splits on whitespace. A double-quoted section may contain
// whitespace and is kept without its quotes. Backslashes are literal.
func splitWindowsArgs(args string) ([]string, error) {
	var (
		out     []string
		current strings.Builder
		inToken bool // current holds a word, possibly empty ("")
		quoted  bool
	)

	for _, r := range args {
		switch {
		// A quote toggles grouping and is dropped. `""` is an empty word.
		case r == '"':
			quoted = !quoted
			inToken = true
		// Unquoted whitespace ends the current word. Runs of it collapse.
		case unicode.IsSpace(r) && !quoted:
			if inToken {
				out = append(out, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quoted {
		return nil, errUnterminatedQuote
	}
	if inToken {
		out = append(out, current.String())
	}
	return out, nil
}
