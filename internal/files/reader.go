package files

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings are tried in order when the file is not valid UTF-8.
// Legacy exports from the sales system are usually Windows-1252.
var fallbackEncodings = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// ReadSalesLines reads the sales data file, decoding it as UTF-8 first and
// falling back to legacy single-byte encodings. The header line, blank lines
// and surrounding whitespace are stripped. A missing file or undecodable
// content is returned as an error; callers downgrade that to an empty
// transaction set.
func ReadSalesLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ReadSalesLines: reading %q: %w", path, err)
	}

	text, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("ReadSalesLines: %w", err)
	}

	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	// Drop the header row.
	if len(lines) > 0 {
		lines = lines[1:]
	}

	return lines, nil
}

func decode(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	for _, cm := range fallbackEncodings {
		decoded, err := decodeWith(raw, cm.NewDecoder())
		if err == nil {
			return decoded, nil
		}
	}

	return "", fmt.Errorf("decode: content not valid in any supported encoding")
}

func decodeWith(raw []byte, decoder *encoding.Decoder) (string, error) {
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
