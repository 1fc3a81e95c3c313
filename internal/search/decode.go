package search

import (
	"bytes"
	"unicode/utf8"

	"draftdesk/internal/model"
)

// cp1252High maps the 0x80-0x9F range of Windows-1252 to runes. Entries that
// are unassigned in the code page decode to U+FFFD.
var cp1252High = [32]rune{
	0x20AC, 0xFFFD, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0xFFFD, 0x017D, 0xFFFD,
	0xFFFD, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0xFFFD, 0x017E, 0x0178,
}

// DecodeText decodes raw file bytes as UTF-8, falling back to Windows-1252.
// There is no third fallback: content with NUL bytes is treated as binary
// and reported unreadable under both encodings.
func DecodeText(raw []byte) (string, error) {
	if bytes.IndexByte(raw, 0x00) >= 0 {
		return "", model.ErrUnreadableText
	}
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		switch {
		case b < 0x80:
			runes = append(runes, rune(b))
		case b < 0xA0:
			runes = append(runes, cp1252High[b-0x80])
		default:
			runes = append(runes, rune(b))
		}
	}
	return string(runes), nil
}
