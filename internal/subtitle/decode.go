package subtitle

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText turns raw file bytes into LF-terminated UTF-8 text. UTF-16 is
// accepted when it carries a byte order mark.
func decodeText(data []byte, format Format) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", &ParseError{
				Format: format,
				Reason: "unreadable encoding",
				Err:    err,
			}
		}
		data = out
	} else {
		data = bytes.TrimPrefix(data, bomUTF8)
	}

	if !utf8.Valid(data) {
		return "", &ParseError{
			Format: format,
			Reason: "unreadable encoding: content is not valid UTF-8",
		}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text, nil
}
