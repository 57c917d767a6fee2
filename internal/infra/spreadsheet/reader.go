package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnreadable cobre qualquer arquivo que não decodifica como planilha.
var ErrUnreadable = errors.New("não foi possível ler a planilha")

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xef\xbb\xbf")
)

// Record é uma linha indexada pelo cabeçalho (minúsculo, sem espaços nas pontas).
type Record map[string]string

// Get busca a coluna ignorando caixa e espaços.
func (r Record) Get(column string) string {
	return r[normalizeHeader(column)]
}

// Sheet é a primeira aba decodificada: cabeçalho original e registros não vazios.
type Sheet struct {
	Headers []string
	Records []Record
}

// Decode lê CSV ou XLSX (primeira aba). O formato vem dos bytes, a extensão só desempata.
func Decode(data []byte, filename string) (*Sheet, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: arquivo vazio", ErrUnreadable)
	}

	var (
		rows [][]string
		err  error
	)
	switch {
	case bytes.HasPrefix(data, zipMagic):
		rows, err = readXLSX(data)
	case isExcelExtension(filename):
		return nil, fmt.Errorf("%w: %s não é um xlsx válido", ErrUnreadable, filepath.Base(filename))
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return buildSheet(rows)
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: nenhuma aba encontrada", ErrUnreadable)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: conteúdo binário não reconhecido", ErrUnreadable)
	}
	// Excel pt-BR no Windows salva CSV em Windows-1252.
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("%w: codificação não reconhecida", ErrUnreadable)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return rows, nil
}

// detectDelimiter olha só a primeira linha: exportações em pt-BR costumam usar ';'.
func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func buildSheet(rows [][]string) (*Sheet, error) {
	start := -1
	for i, row := range rows {
		if !isBlank(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: cabeçalho não encontrado", ErrUnreadable)
	}

	headers := make([]string, len(rows[start]))
	for i, h := range rows[start] {
		headers[i] = strings.TrimSpace(h)
	}

	sheet := &Sheet{Headers: headers}
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(headers))
		for i, h := range headers {
			key := normalizeHeader(h)
			if key == "" {
				continue
			}
			if _, seen := rec[key]; seen {
				continue
			}
			if i < len(row) {
				rec[key] = row[i]
			} else {
				rec[key] = ""
			}
		}
		sheet.Records = append(sheet.Records, rec)
	}
	return sheet, nil
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isExcelExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls", ".xlsm":
		return true
	}
	return false
}
