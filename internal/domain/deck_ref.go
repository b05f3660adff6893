package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DeckRef identifies a deck by its table key.
//
// The cards table stores it as a two element JSON array, ["<username>", "<uid>"],
// written with a ", " separator and ASCII-only escapes. Existing rows use that
// exact text as their partition key, so String must keep producing it byte for byte.
type DeckRef struct {
	Username string
	UID      string
}

// String returns the serialized partition key used in the cards table.
func (r DeckRef) String() string {
	var b strings.Builder
	b.WriteByte('[')
	writeASCIIString(&b, r.Username)
	b.WriteString(", ")
	writeASCIIString(&b, r.UID)
	b.WriteByte(']')
	return b.String()
}

// ParseDeckRef decodes a serialized deck reference. Any valid JSON array of
// exactly two strings is accepted, whatever its spacing or escaping. No
// handler reads cards yet; it is the inverse of String and pins the stored
// key format, so ParseDeckRef(r.String()) == r must keep holding.
func ParseDeckRef(s string) (DeckRef, error) {
	var parts []string
	if err := json.Unmarshal([]byte(s), &parts); err != nil {
		return DeckRef{}, fmt.Errorf("domain: parse deck ref: %w", err)
	}
	if len(parts) != 2 {
		return DeckRef{}, errors.New("domain: parse deck ref: want exactly two elements")
	}
	return DeckRef{Username: parts[0], UID: parts[1]}, nil
}

const hexDigits = "0123456789abcdef"

func writeASCIIString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r < 0x20 || (r > 0x7e && r <= 0xffff):
			writeUnicodeEscape(b, r)
		case r > 0xffff:
			r -= 0x10000
			writeUnicodeEscape(b, 0xd800+(r>>10))
			writeUnicodeEscape(b, 0xdc00+(r&0x3ff))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
}

func writeUnicodeEscape(b *strings.Builder, r rune) {
	b.WriteString(`\u`)
	b.WriteByte(hexDigits[(r>>12)&0xf])
	b.WriteByte(hexDigits[(r>>8)&0xf])
	b.WriteByte(hexDigits[(r>>4)&0xf])
	b.WriteByte(hexDigits[r&0xf])
}
