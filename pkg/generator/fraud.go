package generator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReplayFraudCSV feeds the rows of a card transaction dataset to send,
// skipping the header and dropping the last column (the fraud label). It
// stops after max rows when max is positive and returns how many were sent.
func ReplayFraudCSV(r io.Reader, max int, send func(i int, row string) error) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	sent := 0
	for line := 0; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return sent, nil
		}
		if err != nil {
			return sent, fmt.Errorf("line %d: %w", line+1, err)
		}
		if line == 0 || len(rec) < 2 {
			continue
		}
		fields := rec[:len(rec)-1]
		for i := range fields {
			fields[i] = strings.ReplaceAll(fields[i], " ", "")
		}
		if err := send(sent+1, strings.Join(fields, ",")); err != nil {
			return sent, err
		}
		sent++
		if max > 0 && sent >= max {
			return sent, nil
		}
	}
}
