// Package encoding wraps around the various encoding stuff in
// golang.org/x/text/encoding. Part of the reason this exists is that
// the package names such as "unicode" clash with the stdlib, and it's
// rather easier if we just hide it from the rest of the module. Source
// files arrive in whatever encoding the author's editor saved, so
// everything is normalized to UTF-8 before the engine sees a byte.
package encoding

import (
	"errors"
	"fmt"
	"strings"

	enc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

func Load(name string) enc.Encoding {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return unicode.UTF8
	case "utf16", "utf-16", "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "euc-jp":
		return japanese.EUCJP
	case "shift_jis", "shift-jis", "shiftjis", "cp932":
		return japanese.ShiftJIS
	case "jis", "iso-2022-jp":
		return japanese.ISO2022JP
	case "big5":
		return traditionalchinese.Big5
	case "euc-kr":
		return korean.EUCKR
	case "iso-8859-2":
		return charmap.ISO8859_2
	case "iso-8859-15":
		return charmap.ISO8859_15
	case "windows1250":
		return charmap.Windows1250
	case "windows1251":
		return charmap.Windows1251
	case "iso-8859-1", "latin1", "windows1252":
		return charmap.Windows1252
	}
	return nil
}

// Detect sniffs a byte order mark. It returns the detected encoding
// and the length of the BOM, or nil and 0 when there is none.
func Detect(b []byte) (enc.Encoding, int) {
	switch {
	case len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF:
		return unicode.UTF8, 3
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), 2
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), 2
	}
	return nil, 0
}

// Decode converts b to UTF-8. A non-empty name forces that encoding;
// otherwise the BOM decides, and BOM-less input is passed through as
// UTF-8. The BOM itself never survives into the output.
func Decode(b []byte, name string) ([]byte, error) {
	if name != "" {
		e := Load(name)
		if e == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
		if _, n := Detect(b); n > 0 {
			b = b[n:]
		}
		return e.NewDecoder().Bytes(b)
	}

	e, n := Detect(b)
	if e == nil {
		return b, nil
	}
	return e.NewDecoder().Bytes(b[n:])
}
