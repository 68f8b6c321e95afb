// Package export renders record lists as downloadable CSV or JSON documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gosimple/slug"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ErrEmpty means there is nothing to export; callers skip the download entirely.
var ErrEmpty = errors.New("nothing to export")

var ErrUnknownFormat = errors.New("unknown export format")

// Row is one exported record. Values must line up with Columns.
type Row interface {
	Columns() []string
	Values() []string
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, "":
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

// Filename slugifies stem and appends the format extension, e.g. "training-records.csv".
func Filename(stem string, f Format) string {
	name := slug.Make(stem)
	if name == "" {
		name = "export"
	}
	return name + "." + string(f)
}

// Write encodes rows to w. CSV output is a header line of column names followed by one line
// per row; JSON output is an indented array of the rows themselves.
func Write(w io.Writer, f Format, rows []Row) error {
	if len(rows) == 0 {
		return ErrEmpty
	}
	switch f {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rows[0].Columns()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row.Values()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
