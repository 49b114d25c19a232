package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wbal-simulator/internal/sim"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func sampleRecord() sim.Record {
	return sim.Record{
		Time:           42,
		TargetPower:    350,
		EmittedPower:   347.8341,
		CP:             250,
		WBal:           19876.5432,
		Phase:          sim.PhaseSteadyWork,
		StdDevFraction: 0.065,
	}
}

func TestCSVWriter_HeaderOnceAndFormats(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf, testLogger())

	require.NoError(t, w.WriteRecord(sampleRecord()))
	require.NoError(t, w.WriteRecord(sampleRecord()))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Tiempo(s),Potencia_Base(W),Potencia_Real(W),CP(W),WBAL(kJ),Tipo_Segmento,Desvio_STD(%)", lines[0])
	assert.Equal(t, "42,350.0,347.8,250,19.877,Intervalo,6.50", lines[1])
	assert.Equal(t, lines[1], lines[2])
	assert.Equal(t, 2, w.Rows())
}

func TestCSVWriter_SevenColumnsPerRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf, testLogger())

	rec := sampleRecord()
	for i := 0; i < 10; i++ {
		rec.Time = i
		rec.Phase = sim.CyclePhase(i % 6)
		require.NoError(t, w.WriteRecord(rec))
	}
	require.NoError(t, w.Flush())

	r := csv.NewReader(&buf)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 11)
	for _, row := range rows {
		assert.Len(t, row, 7)
	}
}

func TestCSVWriter_FullReservoirInKilojoules(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf, testLogger())

	rec := sampleRecord()
	rec.WBal = 20000
	require.NoError(t, w.WriteRecord(rec))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), ",20.000,")
}

func TestNewCSVWriter_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { NewCSVWriter(nil, testLogger()) })
	assert.Panics(t, func() { NewCSVWriter(&bytes.Buffer{}, nil) })
}
