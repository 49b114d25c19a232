// Package export writes the simulation record stream in the documented CSV
// shape: seven columns, header once, one row per simulated second.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"wbal-simulator/internal/sim"
)

// Header is the exact column set consumers of the trace expect.
var Header = []string{
	"Tiempo(s)",
	"Potencia_Base(W)",
	"Potencia_Real(W)",
	"CP(W)",
	"WBAL(kJ)",
	"Tipo_Segmento",
	"Desvio_STD(%)",
}

// CSVWriter streams timestep records to an io.Writer as CSV rows.
type CSVWriter struct {
	w           *csv.Writer
	logger      *log.Logger
	wroteHeader bool
	rows        int
}

// NewCSVWriter wraps w. The caller keeps ownership of the underlying writer
// and must call Flush when the run is done.
func NewCSVWriter(w io.Writer, logger *log.Logger) *CSVWriter {
	if w == nil {
		panic("CSVWriter: writer cannot be nil")
	}
	if logger == nil {
		panic("CSVWriter: logger cannot be nil")
	}
	return &CSVWriter{w: csv.NewWriter(w), logger: logger}
}

// WriteRecord appends one row, emitting the header first if it has not been
// written yet.
func (c *CSVWriter) WriteRecord(rec sim.Record) error {
	if !c.wroteHeader {
		if err := c.w.Write(Header); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
		c.wroteHeader = true
	}

	row := []string{
		strconv.Itoa(rec.Time),
		fmt.Sprintf("%.1f", rec.TargetPower),
		fmt.Sprintf("%.1f", rec.EmittedPower),
		fmt.Sprintf("%.0f", rec.CP),
		fmt.Sprintf("%.3f", rec.WBal/1000), // J -> kJ
		rec.Phase.Label(),
		fmt.Sprintf("%.2f", rec.StdDevFraction*100),
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("write csv row %d: %w", rec.Time, err)
	}
	c.rows++
	return nil
}

// Flush drains buffered rows to the underlying writer.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	c.logger.Printf("CSVWriter: wrote %d rows", c.rows)
	return nil
}

// Rows returns the number of data rows written so far.
func (c *CSVWriter) Rows() int {
	return c.rows
}
