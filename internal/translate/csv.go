package translate

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"subtext/internal/subtitle"
)

// Row is one imported translation table entry. Texts maps language code to
// translated text for every text_<lang> column present in the file.
type Row struct {
	Index   int
	StartMS int64
	EndMS   int64
	Texts   map[string]string
}

// Key is the exact-match triple used by the merge protocol.
type Key struct {
	Index   int
	StartMS int64
	EndMS   int64
}

// RowKey extracts the merge key from a row.
func (r Row) RowKey() Key {
	return Key{Index: r.Index, StartMS: r.StartMS, EndMS: r.EndMS}
}

// Table is a parsed translation CSV: its rows and the language codes its
// text columns carry, in file order.
type Table struct {
	Rows      []Row
	Languages []string
}

const textColumnPrefix = "text_"

// ExportCSV writes the track as a translation table with the fixed header
// index,start_ms,end_ms,text_<sourceLang>.
func ExportCSV(w io.Writer, track *subtitle.Track, sourceLang string) error {
	cw := csv.NewWriter(w)
	header := []string{"index", "start_ms", "end_ms", textColumnPrefix + sourceLang}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, cue := range track.Cues {
		record := []string{
			strconv.Itoa(cue.Index),
			strconv.FormatInt(cue.StartMS, 10),
			strconv.FormatInt(cue.EndMS, 10),
			cue.Text,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row for cue %d: %w", cue.Index, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// ImportCSV parses a translation table. The header must carry the index,
// start_ms, and end_ms key columns plus at least one text_<lang> column;
// a missing required column fails the import naming that column.
func ImportCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	columns := make(map[string]int, len(header))
	var languages []string
	for i, name := range header {
		name = strings.TrimSpace(name)
		columns[name] = i
		if lang := strings.TrimPrefix(name, textColumnPrefix); lang != name && lang != "" {
			languages = append(languages, lang)
		}
	}
	for _, required := range []string{"index", "start_ms", "end_ms"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv header missing required column %q", required)
		}
	}
	if len(languages) == 0 {
		return nil, fmt.Errorf("csv header has no %s<lang> column", textColumnPrefix)
	}

	table := &Table{Languages: languages}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		line++

		row := Row{Texts: make(map[string]string, len(languages))}
		if row.Index, err = strconv.Atoi(keyField(record, columns["index"])); err != nil {
			return nil, fmt.Errorf("csv line %d: parse index: %w", line, err)
		}
		if row.StartMS, err = strconv.ParseInt(keyField(record, columns["start_ms"]), 10, 64); err != nil {
			return nil, fmt.Errorf("csv line %d: parse start_ms: %w", line, err)
		}
		if row.EndMS, err = strconv.ParseInt(keyField(record, columns["end_ms"]), 10, 64); err != nil {
			return nil, fmt.Errorf("csv line %d: parse end_ms: %w", line, err)
		}
		for _, lang := range languages {
			row.Texts[lang] = field(record, columns[textColumnPrefix+lang])
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// field returns a cell as written. Text columns keep their whitespace
// since a translation may legitimately start or end with a space.
func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}
	return record[index]
}

// keyField trims the numeric key columns so padded cells still parse.
func keyField(record []string, index int) string {
	return strings.TrimSpace(field(record, index))
}
