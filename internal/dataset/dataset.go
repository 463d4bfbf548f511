// Package dataset loads text records from the bundled sample or an uploaded
// CSV file.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

// ErrMissingTextColumn is returned when an uploaded CSV has no "text"
// column.
var ErrMissingTextColumn = errors.New("csv must include a 'text' column")

// DefaultVocabulary seeds the aspect keyword input.
const DefaultVocabulary = "service,food,price,parking,staff,ambience,delivery"

const sampleCSV = `text,created_at,source
"I love the coffee and the ambience at BlueBean!",2025-10-01T10:00:00Z,Tweet
"Terrible service today — waited 45 mins and got the wrong order.",2025-10-02T14:21:00Z,Review
"Okay experience, pastries were fine.",2025-09-30T08:12:00Z,Review
"Best pastries in town! Highly recommend.",2025-10-03T09:45:00Z,Tweet
"Not happy with the new parking policy.",2025-10-04T12:30:00Z,Comment
"Menu needs more vegan options",2025-09-28T15:00:00Z,Review
"Staff were very polite and helpful.",2025-10-06T11:20:00Z,Review
"Food was cold when delivered.",2025-10-07T19:10:00Z,Comment
`

// Sample returns the bundled demo dataset.
func Sample() []models.Record {
	records, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		// The sample is a compile-time constant; failing to parse it is
		// a programming error.
		panic(fmt.Errorf("bundled sample dataset is invalid: %w", err))
	}
	return records
}

// ReadCSV parses a tabular dataset with a required "text" column and
// optional "created_at" and "source" columns. Rows with blank text are
// skipped; unparseable timestamps pass through as nil.
func ReadCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	textCol, createdCol, sourceCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textCol = i
		case "created_at":
			createdCol = i
		case "source":
			sourceCol = i
		}
	}
	if textCol == -1 {
		return nil, ErrMissingTextColumn
	}

	var records []models.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if textCol >= len(row) {
			continue
		}
		text := strings.TrimSpace(row[textCol])
		if text == "" {
			continue
		}

		record := models.Record{Text: text}
		if createdCol != -1 && createdCol < len(row) {
			if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(row[createdCol])); err == nil {
				record.CreatedAt = &ts
			}
		}
		if sourceCol != -1 && sourceCol < len(row) {
			record.Source = strings.TrimSpace(row[sourceCol])
		}

		records = append(records, record)
	}

	return records, nil
}
