package parser

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestDetectEncodingUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(minimalGedcom)...)
	enc, name := DetectEncoding(data)
	if enc == nil || name != "utf-8-bom" {
		t.Fatalf("DetectEncoding = %v, %q, want utf-8-bom", enc, name)
	}
	doc, err := StrictParseBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !doc.Contains("HEAD") {
		t.Error("expected HEAD record after BOM strip")
	}
}

func TestDetectEncodingUTF16(t *testing.T) {
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	encoder := utf16.NewEncoder()
	data, err := encoder.Bytes([]byte(minimalGedcom))
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	enc, name := DetectEncoding(data)
	if enc == nil || name != "utf-16" {
		t.Fatalf("DetectEncoding = %v, %q, want utf-16", enc, name)
	}
	doc, err := StrictParseBytes(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Record("HEAD").SubPayload("CHAR"); got != "UTF-8" {
		t.Errorf("CHAR = %q", got)
	}
}

func TestDetectEncodingDeclaredCharset(t *testing.T) {
	cases := []struct {
		declared string
		want     string
	}{
		{"ANSEL", "ansel"},
		{"ANSI", "windows-1252"},
		{"UNICODE", "utf-16"},
	}
	for _, tc := range cases {
		text := "0 HEAD\n1 CHAR " + tc.declared + "\n0 TRLR\n"
		_, name := DetectEncoding([]byte(text))
		if name != tc.want {
			t.Errorf("declared %s: name = %q, want %q", tc.declared, name, tc.want)
		}
	}
}

func TestDetectEncodingPlainUTF8(t *testing.T) {
	// No BOM, no CHAR declaration: valid UTF-8 bytes fall back to utf-8.
	enc, name := DetectEncoding([]byte("0 HEAD\n0 TRLR\n"))
	if enc == nil || name != "utf-8" {
		t.Errorf("DetectEncoding = %v, %q, want utf-8", enc, name)
	}
}

func TestDetectEncodingUnknown(t *testing.T) {
	// Invalid UTF-8 with no BOM and no declaration stays undetected.
	enc, name := DetectEncoding([]byte{0x80, 0x81, 0x82, 0xFF})
	if enc != nil || name != "" {
		t.Errorf("DetectEncoding = %v, %q, want nil", enc, name)
	}
}

func TestDecodeWindows1252(t *testing.T) {
	// é is 0xE9 in Windows-1252.
	raw := []byte("0 HEAD\n1 CHAR ANSI\n0 @I1@ INDI\n1 NAME \xE9\xE0\xE7 /X/\n0 TRLR\n")
	decoded, name, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "windows-1252" {
		t.Errorf("encoding name = %q", name)
	}
	if !strings.Contains(string(decoded), "éàç") {
		t.Errorf("decoded text = %q, want éàç present", decoded)
	}
}
