package transcript

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:01,000
hello

2
00:00:01,000 --> 00:00:02,000
world

3
00:00:02,000 --> 00:00:03,000
today
`

func TestParse(t *testing.T) {
	entries := Parse(sampleSRT)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []Entry{
		{SequenceID: 1, StartMS: 0, EndMS: 1000, Text: "hello"},
		{SequenceID: 2, StartMS: 1000, EndMS: 2000, Text: "world"},
		{SequenceID: 3, StartMS: 2000, EndMS: 3000, Text: "today"},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseTimestampConversion(t *testing.T) {
	content := "7\n01:02:03,456 --> 01:02:04,007\nline\n"
	entries := Parse(content)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	wantStart := 1*3600000 + 2*60000 + 3*1000 + 456
	if entries[0].StartMS != wantStart {
		t.Errorf("start = %d, want %d", entries[0].StartMS, wantStart)
	}
	if entries[0].EndMS != wantStart+551 {
		t.Errorf("end = %d, want %d", entries[0].EndMS, wantStart+551)
	}
	if entries[0].SequenceID != 7 {
		t.Errorf("sequence id = %d, want 7", entries[0].SequenceID)
	}
}

func TestParseJoinsMultilineText(t *testing.T) {
	content := "1\r\n00:00:01,000 --> 00:00:02,500\r\nfirst line\r\n  second line  \r\n\r\n"
	entries := Parse(content)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Text != "first line second line" {
		t.Errorf("text = %q", entries[0].Text)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	content := strings.Join([]string{
		"1\n00:00:00,000 --> 00:00:01,000\nkept",
		"not-a-number\n00:00:01,000 --> 00:00:02,000\ndropped index",
		"3\n00:00:02 --> 00:00:03\ndropped timing",
		"4\n00:00:03,000 --> 00:00:04,000",
		"5\n00:00:05,000 --> 00:00:04,000\nend before start",
		"garbage",
		"6\n00:00:06,000 --> 00:00:07,000\nalso kept",
	}, "\n\n")

	entries := Parse(content)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Text != "kept" || entries[1].Text != "also kept" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestParseDropsCuesOutOfStartOrder(t *testing.T) {
	content := strings.Join([]string{
		"1\n00:00:05,000 --> 00:00:06,000\nhello",
		"2\n00:00:01,000 --> 00:00:02,000\nrewound",
		"3\n00:00:05,000 --> 00:00:07,000\nsame start",
		"4\n00:00:06,500 --> 00:00:08,000\nworld",
	}, "\n\n")

	entries := Parse(content)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Text != "hello" || entries[1].Text != "world" {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if err := CheckEntries(entries); err != nil {
		t.Errorf("parsed entries fail CheckEntries: %v", err)
	}
}

func TestCheckEntries(t *testing.T) {
	ordered := []Entry{
		{SequenceID: 1, StartMS: 0, EndMS: 1000, Text: "a"},
		{SequenceID: 2, StartMS: 1000, EndMS: 2000, Text: "b"},
	}
	if err := CheckEntries(ordered); err != nil {
		t.Fatalf("CheckEntries(ordered) = %v", err)
	}
	if err := CheckEntries(nil); err != nil {
		t.Fatalf("CheckEntries(nil) = %v", err)
	}

	unordered := []Entry{ordered[1], ordered[0]}
	err := CheckEntries(unordered)
	if !errors.Is(err, ErrOutOfOrder) {
		t.Fatalf("expected ErrOutOfOrder, got %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) || parseErr.ErrorKind() != "parse" {
		t.Fatalf("expected ParseError, got %T", err)
	}

	if err := CheckEntries([]Entry{{SequenceID: 1, StartMS: 10, EndMS: 5}}); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestParseAcceptsPeriodMillis(t *testing.T) {
	entries := Parse("1\n00:00:01.250 --> 00:00:02.000\nperiod\n")
	if len(entries) != 1 || entries[0].StartMS != 1250 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestParseEmpty(t *testing.T) {
	if entries := Parse("   \n\n "); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	entries, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.srt"))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parseErr.ErrorKind() != "parse" {
		t.Errorf("kind = %q, want parse", parseErr.ErrorKind())
	}
}

func TestReadRejectsInvalidUTF8(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{0x31, 0x0a, 0xff, 0xfe, 0xfd, 0x80}), "bad.srt")
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}

func TestReadStripsUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleSRT)...)
	entries, err := Read(bytes.NewReader(data), "bom.srt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 3 || entries[0].SequenceID != 1 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestReadDecodesUTF16(t *testing.T) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, _, err := transform.Bytes(encoder, []byte(sampleSRT))
	if err != nil {
		t.Fatalf("encode utf16: %v", err)
	}
	entries, err := Read(bytes.NewReader(data), "utf16.srt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(entries) != 3 || entries[2].Text != "today" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestLastEndMS(t *testing.T) {
	if got := LastEndMS(nil); got != 0 {
		t.Errorf("LastEndMS(nil) = %d", got)
	}
	if got := LastEndMS(Parse(sampleSRT)); got != 3000 {
		t.Errorf("LastEndMS = %d, want 3000", got)
	}
}
