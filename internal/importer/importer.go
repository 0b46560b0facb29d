// Package importer reads vocabulary lists from spreadsheets (.xlsx) and CSV
// files. Columns are positional: A prompt, B accepted answers (semicolon
// separated), C idiom flag, D lesson day.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vytor/vokabox/internal/grading"
	"github.com/vytor/vokabox/internal/logger"
	"github.com/vytor/vokabox/internal/models"
	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

const (
	colPrompt = iota
	colAnswers
	colIdiom
	colLessonDay
)

var headerNames = map[string]bool{
	"prompt": true, "word": true, "german": true, "deutsch": true, "source": true, "vokabel": true,
}

var truthy = map[string]bool{
	"1": true, "x": true, "yes": true, "y": true, "true": true, "ja": true, "idiom": true,
}

// Supported reports whether name has an extension ReadFile can parse.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// ReadFile parses the vocabulary rows of the file at path. Rows without a
// prompt or without any accepted answer are skipped and reported in the
// result; later rows win when a prompt repeats.
func ReadFile(ctx context.Context, path string, opts models.ImportOptions) ([]models.VocabularyItem, models.ImportResult, error) {
	log := logger.FromContext(ctx).WithPrefix("importer")

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path, opts.Sheet)
	default:
		return nil, models.ImportResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		log.Error("failed to read %s: %v", path, err)
		return nil, models.ImportResult{}, err
	}
	log.Debug("read %d rows from %s", len(rows), filepath.Base(path))

	items, result := ParseRows(rows)
	return items, result, nil
}

// ParseRows converts raw cell rows into vocabulary items. A first row whose
// prompt cell is a known column title is treated as a header.
func ParseRows(rows [][]string) ([]models.VocabularyItem, models.ImportResult) {
	var result models.ImportResult
	index := make(map[string]int)
	var items []models.VocabularyItem

	for i, row := range rows {
		line := i + 1
		if i == 0 && isHeader(row) {
			continue
		}
		if blank(row) {
			continue
		}
		result.Processed++

		prompt := strings.TrimSpace(cell(row, colPrompt))
		answers := grading.SplitSolutions(cell(row, colAnswers))
		if prompt == "" || len(answers) == 0 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: prompt and at least one answer are required", line))
			continue
		}

		item := models.VocabularyItem{
			Prompt:          prompt,
			AcceptedAnswers: strings.Join(answers, ";"),
			IsIdiom:         truthy[strings.ToLower(strings.TrimSpace(cell(row, colIdiom)))],
		}
		if raw := strings.TrimSpace(cell(row, colLessonDay)); raw != "" {
			// an unreadable lesson day leaves the item unscheduled
			if day, err := strconv.Atoi(raw); err == nil && day > 0 {
				item.LessonDay = &day
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: ignoring lesson day %q", line, raw))
			}
		}

		if at, seen := index[prompt]; seen {
			items[at] = item
			result.Skipped++
			continue
		}
		index[prompt] = len(items)
		items = append(items, item)
	}
	return items, result
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	sep := sniffSeparator(f)
	r := csv.NewReader(f)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// sniffSeparator picks tab or comma from the first line and rewinds f.
// Semicolons cannot separate columns since they separate answers.
func sniffSeparator(f *os.File) rune {
	buf := make([]byte, 4096)
	n, _ := f.Read(buf)
	_, _ = f.Seek(0, io.SeekStart)
	first, _, _ := strings.Cut(string(buf[:n]), "\n")
	if strings.Count(first, "\t") > strings.Count(first, ",") {
		return '\t'
	}
	return ','
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isHeader(row []string) bool {
	return headerNames[strings.ToLower(strings.TrimSpace(cell(row, colPrompt)))]
}
