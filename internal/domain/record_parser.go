package domain

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	recordDelimiter = "|"
	recordFields    = 6

	maxLineLength = 1 << 20
)

// ParseRecords reads a pipe-delimited source. The first line is a header and
// is skipped, as are blank lines. Any malformed line fails the whole source.
func ParseRecords(r io.Reader) ([]*TransactionRecord, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var records []*TransactionRecord

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		record, err := ParseRecordLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImportSourceRead, err)
	}

	return records, nil
}

// ParseRecordLine parses accountNumber|trxAmount|description|trxDate|trxTime|customerId.
func ParseRecordLine(line string) (*TransactionRecord, error) {
	fields := strings.Split(line, recordDelimiter)
	if len(fields) != recordFields {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, recordFields, len(fields))
	}

	if strings.TrimSpace(fields[0]) == "" {
		return nil, fmt.Errorf("%w: account number is required", ErrMalformedRecord)
	}

	if strings.TrimSpace(fields[5]) == "" {
		return nil, fmt.Errorf("%w: customer id is required", ErrMalformedRecord)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid amount %q", ErrMalformedRecord, fields[1])
	}

	date, err := ParseDate(strings.TrimSpace(fields[3]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	tod, err := ParseTimeOfDay(strings.TrimSpace(fields[4]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}

	return &TransactionRecord{
		AccountNumber: fields[0],
		TrxAmount:     amount,
		Description:   fields[2],
		TrxDate:       date,
		TrxTime:       tod,
		CustomerID:    fields[5],
	}, nil
}
