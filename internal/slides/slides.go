package slides

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions Load does not know.
var ErrUnsupportedFormat = errors.New("unsupported slide file format")

var blankLines = regexp.MustCompile(`\n[ \t]*\n`)

// slide accepts either a bare string or an object with a text field.
type slide struct {
	Text string
}

func (s *slide) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Text)
	}
	var obj struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("slide must be a string or an object with a text field: %w", err)
	}
	if obj.Text != nil {
		s.Text = *obj.Text
	}
	return nil
}

func (s *slide) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return value.Decode(&s.Text)
	case yaml.MappingNode:
		var obj struct {
			Text string `yaml:"text"`
		}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		s.Text = obj.Text
		return nil
	default:
		return fmt.Errorf("line %d: slide must be a string or a mapping with a text key", value.Line)
	}
}

// Load reads the slide list at path. The format follows the extension:
// .json and .yaml/.yml hold a list of strings or of {text: ...} objects,
// .txt separates slides with blank lines.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slides: %w", err)
	}
	texts, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse slides %s: %w", path, err)
	}
	return texts, nil
}

// Parse decodes data according to ext (".json", ".yaml", ".yml", ".txt").
func Parse(data []byte, ext string) ([]string, error) {
	var items []slide
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	case ".txt", "":
		return splitText(string(data)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = strings.TrimSpace(item.Text)
	}
	return texts, nil
}

func splitText(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSpace(content)
	if content == "" {
		return []string{}
	}
	blocks := blankLines.Split(content, -1)
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		texts = append(texts, strings.Join(lines, " "))
	}
	return texts
}
