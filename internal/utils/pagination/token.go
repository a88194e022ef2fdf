package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeHistoryToken creates a base64 encoded token pointing just after the given row.
// History reads order rows by (date, created_at, row_id), so the three values identify a position.
func EncodeHistoryToken(cursor domain.HistoryCursor) string {
	return EncodeMultiFieldToken(
		cursor.Date.Format(timeFormat),
		cursor.CreatedAt.Format(timeFormat),
		cursor.RowID,
	)
}

// DecodeHistoryToken parses a token produced by EncodeHistoryToken.
func DecodeHistoryToken(token string) (domain.HistoryCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return domain.HistoryCursor{}, err
	}
	if len(parts) != 3 {
		return domain.HistoryCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	date, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return domain.HistoryCursor{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}

	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return domain.HistoryCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	if parts[2] == "" {
		return domain.HistoryCursor{}, fmt.Errorf("invalid pagination token format (row id)")
	}

	return domain.HistoryCursor{Date: date, CreatedAt: createdAt, RowID: parts[2]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
