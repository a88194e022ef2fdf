package mapping

import (
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/SscSPs/jewelry_ledger/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelInvoice flattens the currency legs of an invoice into columns
func ToModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		Direction:     string(d.Direction),
		PointOfSaleID: d.PointOfSaleID,
		IsClosed:      d.IsClosed,
		IsGift:        d.IsGift,
		IsChira:       d.IsChira,
		Receivable:    d.Receivable,
		ClosedAt:      d.ClosedAt,
		ClosedBy:      d.ClosedBy,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}

	m.TotalLyd = d.Totals.Leg(domain.LYD).Amount
	usd, eur := d.Totals.Leg(domain.USD), d.Totals.Leg(domain.EUR)
	m.TotalUsd, m.TotalUsdLyd = usd.Amount, usd.BaseEquivalent
	m.TotalEur, m.TotalEurLyd = eur.Amount, eur.BaseEquivalent

	m.PaidLyd = d.Paid.Leg(domain.LYD).Amount
	usd, eur = d.Paid.Leg(domain.USD), d.Paid.Leg(domain.EUR)
	m.PaidUsd, m.PaidUsdLyd = usd.Amount, usd.BaseEquivalent
	m.PaidEur, m.PaidEurLyd = eur.Amount, eur.BaseEquivalent
	return m
}

// ToDomainInvoice rebuilds the currency legs of an invoice from its columns
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Direction:     domain.InvoiceDirection(m.Direction),
		PointOfSaleID: m.PointOfSaleID,
		Totals:        legs(m.TotalLyd, m.TotalUsd, m.TotalUsdLyd, m.TotalEur, m.TotalEurLyd),
		Paid:          legs(m.PaidLyd, m.PaidUsd, m.PaidUsdLyd, m.PaidEur, m.PaidEurLyd),
		IsClosed:      m.IsClosed,
		IsGift:        m.IsGift,
		IsChira:       m.IsChira,
		Receivable:    m.Receivable,
		ClosedAt:      m.ClosedAt,
		ClosedBy:      m.ClosedBy,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func legs(lyd, usd, usdLyd, eur, eurLyd decimal.Decimal) domain.Legs {
	return domain.Legs{
		{Currency: domain.LYD, Amount: lyd, BaseEquivalent: lyd},
		{Currency: domain.USD, Amount: usd, BaseEquivalent: usdLyd},
		{Currency: domain.EUR, Amount: eur, BaseEquivalent: eurLyd},
	}
}
