// Package reference loads the security reference table and resolves
// recognized speech to trading symbols.
package reference

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/itamarh/voicedca/internal/models"
)

// LoadTable reads the security reference CSV (symbol,name,display_name).
// Lines starting with '#' are comments. Rows without a symbol are skipped,
// not fatal: a partially usable table beats refusing to start. Row order is
// preserved because resolution is first-match-wins.
func LoadTable(path string, logger *logrus.Logger) ([]models.SecurityEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	return parseTable(f, logger)
}

func parseTable(r io.Reader, logger *logrus.Logger) ([]models.SecurityEntry, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []models.SecurityEntry
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.WithError(err).WithField("line", line).Warn("skipping malformed reference row")
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		symbol := strings.TrimSpace(record[0])
		if symbol == "" {
			logger.WithField("line", line).Warn("skipping reference row without symbol")
			continue
		}
		entry := models.SecurityEntry{Symbol: symbol}
		if len(record) > 1 {
			entry.Name = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			entry.DisplayName = strings.TrimSpace(record[2])
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("reference table contains no usable entries")
	}
	return entries, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "symbol")
}
