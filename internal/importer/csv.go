package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Colunas da planilha de apostas. "Bet Type" é o tipo de stake (Normal/Free),
// "Bet" é a seleção em texto livre.
const (
	ColDate         = "Date"
	ColFixture      = "Fixture"
	ColBookie       = "Bookie"
	ColBet          = "Bet"
	ColBetType      = "Bet Type"
	ColStake        = "Stake (£)"
	ColStakeUnit    = "Stake (Unit)"
	ColOdds         = "Odds"
	ColResult       = "Result"
	ColCashOutValue = "Cash Out Value"
)

var RequiredColumns = []string{
	ColDate, ColFixture, ColBookie, ColBet, ColBetType,
	ColStake, ColStakeUnit, ColOdds, ColResult, ColCashOutValue,
}

var ErrEmptyFile = errors.New("csv has no header")

// Row é uma linha de dados. Number conta o cabeçalho, então a primeira linha de dados é 2.
type Row struct {
	Number int
	Values map[string]string
}

func (r Row) Get(col string) string { return r.Values[col] }

// ReadCSV lê a planilha inteira e confere as colunas obrigatórias antes de devolver qualquer linha
func ReadCSV(src io.Reader) ([]Row, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	if missing := missingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, Row{Number: line, Values: values})
	}
	return rows, nil
}

func missingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
