package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DetectEncoding guesses the character encoding of a GEDCOM byte stream.
// It checks for a byte-order mark first, then for a "1 CHAR" declaration in
// the header, then falls back to UTF-8 when the bytes validate as such.
// Returns nil and "" when nothing matches; no detection is ever certain.
func DetectEncoding(data []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM, "utf-8-bom"
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "utf-16"
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), "utf-16"
	}

	if name := declaredCharset(data); name != "" {
		// CHAR payloads predate IANA names and are often misleading.
		switch strings.ToLower(name) {
		case "ansel", "gedcom":
			// No ANSEL decoder exists in x/text; Latin-1 keeps the
			// structure intact and only mangles the combining characters.
			return charmap.ISO8859_1, "ansel"
		case "ansi":
			return charmap.Windows1252, "windows-1252"
		case "unicode":
			return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), "utf-16"
		}
		if enc, canonical := charset.Lookup(name); enc != nil {
			return enc, canonical
		}
	}

	if utf8.Valid(data) {
		return unicode.UTF8, "utf-8"
	}
	return nil, ""
}

// declaredCharset scans the head of the document for a "1 CHAR" line and
// returns its payload. The header always comes first, so the scan gives up
// after 100 lines.
func declaredCharset(data []byte) string {
	for i, line := range bytes.Split(data, []byte("\n")) {
		if i >= 100 {
			break
		}
		line = bytes.TrimRight(line, "\r ")
		if bytes.HasPrefix(line, []byte("1 CHAR ")) {
			return string(line[len("1 CHAR "):])
		}
	}
	return ""
}

// Decode converts raw GEDCOM bytes to UTF-8 using the detected encoding
// and reports the encoding name used. When detection fails the bytes pass
// through unchanged.
func Decode(data []byte) ([]byte, string, error) {
	enc, name := DetectEncoding(data)
	if enc == nil {
		return data, "", nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, name, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, name, nil
}
