// Package importer turns a LinkedIn connections export into merged connection records.
// Package importer 解析 LinkedIn 联系人导出文件并合并重复行
package importer

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"

	"github.com/zachlandes/2ml-crm/internal/domain"
	"github.com/zachlandes/2ml-crm/pkg/util"

	"github.com/pkg/errors"
)

// DefaultSkipLines is the number of preamble lines LinkedIn puts above the header row
const DefaultSkipLines = 5

// StableID derives a connection id from the name alone, so re-imports land on the same row
// StableID 根据姓名生成稳定 ID
func StableID(first, last string) string {
	return util.EncodeMD5(first + "|" + last)
}

// ParseCSV parses an export using the default preamble length
func ParseCSV(r io.Reader) ([]domain.Connection, error) {
	return ParseCSVSkip(r, DefaultSkipLines)
}

// ParseCSVSkip drops skip raw lines, then one header row, then reads
// firstName, lastName, url, email, company, position, connectedOn per row.
// Short rows leave the missing columns empty.
// ParseCSVSkip 跳过前 skip 行与表头后逐行解析
func ParseCSVSkip(r io.Reader, skip int) ([]domain.Connection, error) {
	br := bufio.NewReader(r)
	for i := 0; i < skip; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				return []domain.Connection{}, nil
			}
			return nil, errors.Wrap(err, "skip preamble")
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	out := make([]domain.Connection, 0, 256)
	header := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv row")
		}
		if header {
			header = false
			continue
		}
		out = append(out, rowToConnection(rec))
	}
	return out, nil
}

func rowToConnection(rec []string) domain.Connection {
	col := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	c := domain.Connection{
		FirstName:     col(0),
		LastName:      col(1),
		URL:           col(2),
		Email:         col(3),
		Company:       col(4),
		Position:      col(5),
		ConnectedOn:   col(6),
		Status:        domain.StatusNew,
		PastPositions: []domain.PastPosition{},
	}
	c.ID = StableID(c.FirstName, c.LastName)
	return c
}
