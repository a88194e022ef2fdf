package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the settlement row of an invoice. Each currency leg is stored in
// its own pair of columns; the LYD legs have no separate equivalent column.
type Invoice struct {
	InvoiceID     string `db:"invoice_id"`
	InvoiceNumber *int64 `db:"invoice_number"`
	Direction     string `db:"direction"`
	PointOfSaleID int64  `db:"point_of_sale_id"`

	TotalLyd    decimal.Decimal `db:"total_lyd"`
	TotalUsd    decimal.Decimal `db:"total_usd"`
	TotalUsdLyd decimal.Decimal `db:"total_usd_lyd"`
	TotalEur    decimal.Decimal `db:"total_eur"`
	TotalEurLyd decimal.Decimal `db:"total_eur_lyd"`

	PaidLyd    decimal.Decimal `db:"paid_lyd"`
	PaidUsd    decimal.Decimal `db:"paid_usd"`
	PaidUsdLyd decimal.Decimal `db:"paid_usd_lyd"`
	PaidEur    decimal.Decimal `db:"paid_eur"`
	PaidEurLyd decimal.Decimal `db:"paid_eur_lyd"`

	IsClosed   bool            `db:"is_closed"`
	IsGift     bool            `db:"is_gift"`
	IsChira    bool            `db:"is_chira"`
	Receivable decimal.Decimal `db:"receivable"`
	ClosedAt   *time.Time      `db:"closed_at"`
	ClosedBy   *string         `db:"closed_by"`
	Version    int64           `db:"version"`
	AuditFields
}
