package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset identifies the text encoding of an uploaded file.
type Charset string

const (
	UTF8        Charset = "UTF-8"
	UTF16LE     Charset = "UTF-16LE"
	UTF16BE     Charset = "UTF-16BE"
	Latin1      Charset = "ISO-8859-1"
	Windows1252 Charset = "windows-1252"
)

const sniffLen = 4096

var boms = []struct {
	prefix  []byte
	charset Charset
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// Detect guesses the charset of a sample taken from the start of a file.
// The second return value reports whether the sample starts with a byte order mark.
func Detect(sample []byte) (Charset, bool) {
	for _, b := range boms {
		if bytes.HasPrefix(sample, b.prefix) {
			return b.charset, true
		}
	}

	if utf8.Valid(sample) {
		return UTF8, false
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil {
		return Windows1252, false
	}

	switch result.Charset {
	case "UTF-8":
		return UTF8, false
	case "ISO-8859-1":
		return Latin1, false
	}

	// Spreadsheet exports on Windows default to cp1252.
	return Windows1252, false
}

func decoder(c Charset) xencoding.Encoding {
	switch c {
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case Latin1:
		return charmap.ISO8859_1
	case Windows1252:
		return charmap.Windows1252
	}

	return nil
}

// NewUTF8Reader returns a reader that yields the content of r as UTF-8,
// with any UTF-8 byte order mark removed.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	sample, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("sniffing charset: %w", err)
	}

	charset, hasBOM := Detect(sample)

	if charset == UTF8 {
		if hasBOM {
			_, _ = br.Discard(3)
		}

		return br, nil
	}

	return transform.NewReader(br, decoder(charset).NewDecoder()), nil
}
