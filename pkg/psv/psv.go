// Package psv reads the catalog's pipe-separated exports. The catalog's
// export tooling is inconsistent about encodings, so decoding tries a fixed
// fallback chain before line splitting: UTF-8, then Latin-1, then
// Windows-1254, then ISO-8859-9.
package psv

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Record is one non-empty line of a PSV file. Line numbers are 1-based and
// count every raw line, including the blank ones that Records drops.
type Record struct {
	Line int
	Text string
}

// Fields splits the record on the pipe separator and trims each field.
func (r Record) Fields() []string {
	fields := strings.Split(r.Text, "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// decoder is one entry of the fallback chain.
type decoder struct {
	name   string
	decode func(data []byte) (string, error)
}

// fallbackChain lists the decoders in trial order. Latin-1 maps every byte,
// so the chain never runs past it in practice; the later entries document
// the encodings the catalog has actually shipped.
var fallbackChain = []decoder{
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin-1", decode: charmapDecoder(charmap.ISO8859_1)},
	{name: "windows-1254", decode: charmapDecoder(charmap.Windows1254)},
	{name: "iso-8859-9", decode: charmapDecoder(charmap.ISO8859_9)},
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8 byte sequence")
	}
	return string(data), nil
}

func charmapDecoder(cm *charmap.Charmap) func(data []byte) (string, error) {
	return func(data []byte) (string, error) {
		decoded, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
}

// DecodeBytes decodes raw file content through the fallback chain. Returns
// the decoded text and the name of the encoding that succeeded.
func DecodeBytes(data []byte) (string, string, error) {
	for _, d := range fallbackChain {
		text, err := d.decode(data)
		if err != nil {
			continue
		}
		return text, d.name, nil
	}
	return "", "", fmt.Errorf("no encoding in the fallback chain decodes the input")
}

// DecodeFile reads a file and decodes it through the fallback chain.
func DecodeFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read psv file: %w", err)
	}
	return DecodeBytes(data)
}

// Records splits decoded text into trimmed non-empty lines, preserving the
// 1-based line number each record had in the raw file.
func Records(text string) []Record {
	lines := strings.Split(text, "\n")
	records := make([]Record, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		records = append(records, Record{Line: i + 1, Text: trimmed})
	}
	return records
}
