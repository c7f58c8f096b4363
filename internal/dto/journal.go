package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartclaims/claimsledger/internal/core/domain"
)

// ClaimsJournalEntryRequest is one claim adjustment inside a claims journal.
// The referenced purchase invoice supplies the payable and expense accounts.
type ClaimsJournalEntryRequest struct {
	ProviderID    string          `json:"provider_id" binding:"required"`
	InvoiceNumber string          `json:"invoice_number" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// CreateClaimsJournalRequest creates a rejection, withholding or adjustment journal.
type CreateClaimsJournalRequest struct {
	VoucherType string                      `json:"voucher_type" binding:"required"`
	Company     string                      `json:"company" binding:"required"`
	PostingDate *time.Time                  `json:"posting_date,omitempty" time_format:"2006-01-02"`
	Remark      string                      `json:"remark,omitempty"`
	Entries     []ClaimsJournalEntryRequest `json:"entries" binding:"required,min=1"`
}

// JournalEntryLineResponse is one account row of a created journal.
type JournalEntryLineResponse struct {
	Account   string          `json:"account"`
	PartyType string          `json:"partyType,omitempty"`
	Party     string          `json:"party,omitempty"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse is the payload returned for a created claims journal.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	JournalType    string                     `json:"journalType"`
	PostingDate    time.Time                  `json:"postingDate"`
	TotalDebit     decimal.Decimal            `json:"totalDebit"`
	TotalCredit    decimal.Decimal            `json:"totalCredit"`
	Lines          []JournalEntryLineResponse `json:"lines"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalEntryLineResponse, len(entry.Lines))
	for i, l := range entry.Lines {
		lines[i] = JournalEntryLineResponse{
			Account:   l.Account,
			PartyType: string(l.PartyType),
			Party:     l.Party,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}
	return JournalEntryResponse{
		JournalEntryID: entry.JournalEntryID,
		JournalType:    string(entry.JournalType),
		PostingDate:    entry.PostingDate,
		TotalDebit:     entry.TotalDebit(),
		TotalCredit:    entry.TotalCredit(),
		Lines:          lines,
	}
}
