// Package export writes read-only projections of the schedule: a CSV sheet
// for spreadsheets and a JSON backup that can be re-imported.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gantt/internal/dateutil"
	"gantt/internal/models"
	"gantt/internal/share"
)

// csvHeader matches the spreadsheet export column set.
var csvHeader = []string{"Task", "Group", "Start", "End", "Progress (%)", "Notes"}

// WriteCSV renders every task as one row, in document order.
func WriteCSV(w io.Writer, doc *models.Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range doc.Tasks {
		row := []string{
			t.Name,
			doc.GroupName(t.GroupID),
			dateutil.Format(t.StartDate),
			dateutil.Format(t.EndDate),
			strconv.Itoa(t.Progress),
			t.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the document backup in the share wire format.
func WriteJSON(w io.Writer, doc *models.Document) error {
	data, err := share.MarshalJSON(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadJSON parses a backup file produced by WriteJSON (or any document in
// the wire format).
func ReadJSON(r io.Reader) (*models.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return share.UnmarshalJSON(data)
}

// CSVFile writes the spreadsheet projection to path.
func CSVFile(path string, doc *models.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, doc)
}

// JSONFile writes the backup to path.
func JSONFile(path string, doc *models.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, doc)
}

// ImportFile loads a backup from path.
func ImportFile(path string) (*models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	defer f.Close()
	return ReadJSON(f)
}
