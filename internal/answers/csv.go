package answers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Column names accepted in the header row. The first name of each set is canonical.
var columns = []struct {
	key     string
	aliases []string
}{
	{key: "类型", aliases: []string{"类型", "type"}},
	{key: "题目", aliases: []string{"题目", "question"}},
	{key: "选项", aliases: []string{"选项", "options"}},
	{key: "答案", aliases: []string{"答案", "answer", "answers"}},
}

// ImportOptions controls how option and answer cells are split.
type ImportOptions struct {
	Encoding        string
	OptionSeparator string
	AnswerSeparator string
}

// HeaderError lists required columns missing from the header row.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return "missing columns: " + strings.Join(e.Missing, ", ")
}

// LoadCSVFile opens path and parses it with the configured encoding.
func LoadCSVFile(path string, opts ImportOptions) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open answers file: %w", err)
	}
	defer f.Close()

	r, err := decodingReader(f, opts.Encoding)
	if err != nil {
		return nil, err
	}
	return ParseCSV(r, opts)
}

func decodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf8", "utf-8":
		return r, nil
	case "gbk", "gb2312":
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (expected utf-8 or gbk)", encoding)
	}
}

// ParseCSV reads a header row followed by one question per row.
func ParseCSV(r io.Reader, opts ImportOptions) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	optionSep := ParseSeparator(opts.OptionSeparator)
	answerSep := ParseSeparator(opts.AnswerSeparator)

	var items []Item
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		item := Item{
			Type:     strings.TrimSpace(cell(record, idx["类型"])),
			Question: strings.TrimSpace(cell(record, idx["题目"])),
			Options:  []string{},
			Answer:   []string{},
		}
		if item.Question == "" {
			continue
		}
		if raw := cell(record, idx["选项"]); raw != "" {
			item.Options = split(raw, optionSep)
		}
		if raw := cell(record, idx["答案"]); raw != "" {
			item.Answer = split(raw, answerSep)
		}
		items = append(items, item)
	}
	return items, nil
}

// ParseSeparator turns escaped separators from config into their literal form.
func ParseSeparator(sep string) string {
	switch sep {
	case `\n`:
		return "\n"
	case `\t`:
		return "\t"
	case `\r`:
		return "\r"
	case `\s`:
		return " "
	default:
		return sep
	}
}

func indexHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(columns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for _, col := range columns {
			if _, seen := idx[col.key]; seen {
				continue
			}
			for _, alias := range col.aliases {
				if name == alias {
					idx[col.key] = i
				}
			}
		}
	}

	var missing []string
	for _, col := range columns {
		if _, ok := idx[col.key]; !ok {
			missing = append(missing, col.key)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}
	return idx, nil
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}

func split(raw, sep string) []string {
	if sep == "" {
		return []string{strings.TrimSpace(raw)}
	}
	parts := strings.Split(raw, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
