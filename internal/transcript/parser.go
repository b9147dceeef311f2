package transcript

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse converts SRT-style text into entries in file order. Malformed blocks
// (missing index, bad timing line, no text, end before start) are skipped, as
// is any block that does not start strictly after the last kept one, so start
// times always increase.
func Parse(data string) []Entry {
	content := strings.ReplaceAll(data, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	blocks := strings.Split(content, "\n\n")
	entries := make([]Entry, 0, len(blocks))
	for _, block := range blocks {
		entry, ok := parseBlock(block)
		if !ok {
			continue
		}
		if n := len(entries); n > 0 && entry.StartMS <= entries[n-1].StartMS {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseBlock(block string) (Entry, bool) {
	block = strings.Trim(block, "\n")
	if strings.TrimSpace(block) == "" {
		return Entry{}, false
	}
	lines := strings.Split(block, "\n")
	if len(lines) < 3 {
		return Entry{}, false
	}

	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Entry{}, false
	}

	parts := strings.Split(lines[1], "-->")
	if len(parts) != 2 {
		return Entry{}, false
	}
	start, err := parseTimestamp(parts[0])
	if err != nil {
		return Entry{}, false
	}
	end, err := parseTimestamp(parts[1])
	if err != nil {
		return Entry{}, false
	}

	textLines := make([]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			textLines = append(textLines, trimmed)
		}
	}
	text := strings.Join(textLines, " ")
	if text == "" {
		return Entry{}, false
	}

	entry := Entry{SequenceID: index, StartMS: start, EndMS: end, Text: text}
	if entry.Validate() != nil {
		return Entry{}, false
	}
	return entry, true
}

// parseTimestamp converts HH:MM:SS,mmm to milliseconds. A period is accepted
// in place of the comma.
func parseTimestamp(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 || len(timeParts[1]) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 {
		return 0, fmt.Errorf("timestamp out of range %q", value)
	}
	return hours*3600000 + minutes*60000 + seconds*1000 + millis, nil
}

// Read decodes r as text and parses it. UTF-8 (with or without BOM) and
// BOM-marked UTF-16 input are accepted; anything else yields a ParseError.
func Read(r io.Reader, source string) ([]Entry, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}
	if !hasUTF16BOM(raw) && !utf8.Valid(raw) {
		return nil, &ParseError{Source: source, Err: ErrUndecodable}
	}
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("%w: %v", ErrUndecodable, err)}
	}
	if bytes.IndexByte(decoded, 0) >= 0 {
		return nil, &ParseError{Source: source, Err: ErrUndecodable}
	}
	return Parse(string(decoded)), nil
}

func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// ReadFile opens path and parses its contents.
func ReadFile(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Source: path, Err: fmt.Errorf("open: %w", err)}
	}
	defer file.Close()
	return Read(file, path)
}
