package flatten

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Encoding names the byte encoding the flattened text was found in.
type Encoding string

const (
	UTF8    Encoding = "UTF-8"
	UTF8BOM Encoding = "UTF-8-BOM"
	UTF16LE Encoding = "UTF-16LE"
	UTF16BE Encoding = "UTF-16BE"
	// Legacy covers 8-bit encodings such as latin1; bytes are passed through untouched
	// so the document keeps matching its inputenc declaration.
	Legacy Encoding = "8-bit"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize returns data as text. Byte order marks are dropped and UTF-16 input is
// decoded to UTF-8; any other bytes are kept as they are.
func Normalize(data []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), UTF8BOM, nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeUTF16(data, unicode.LittleEndian, UTF16LE)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeUTF16(data, unicode.BigEndian, UTF16BE)
	case utf8.Valid(data):
		return string(data), UTF8, nil
	default:
		return string(data), Legacy, nil
	}
}

func decodeUTF16(data []byte, order unicode.Endianness, enc Encoding) (string, Encoding, error) {
	decoded, err := unicode.UTF16(order, unicode.ExpectBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(decoded), enc, nil
}
