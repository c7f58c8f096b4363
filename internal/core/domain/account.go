package domain

// AccountType is the chart-of-accounts classification relevant to posting rules.
// Only Receivable and Payable accounts get party tagging on generated lines.
type AccountType string

const (
	AccountReceivable AccountType = "Receivable"
	AccountPayable    AccountType = "Payable"
	AccountBank       AccountType = "Bank"
	AccountTax        AccountType = "Tax"
	AccountExpense    AccountType = "Expense Account"
)

// Account is a chart-of-accounts entry referenced by ledger lines.
type Account struct {
	AccountID   string      `json:"accountID"`
	AccountName string      `json:"accountName"`
	Company     string      `json:"company"`
	AccountType AccountType `json:"accountType"`
	Currency    string      `json:"currency"`
	AuditFields
}

// Company holds the per-company configuration the posting and reporting core reads.
type Company struct {
	CompanyID               string `json:"companyID"`
	Abbr                    string `json:"abbr"`
	DefaultCurrency         string `json:"defaultCurrency"`
	DefaultFinanceBook      string `json:"defaultFinanceBook,omitempty"`
	ExchangeGainLossAccount string `json:"exchangeGainLossAccount,omitempty"`
	CostCenter              string `json:"costCenter,omitempty"`
}

// WithholdingAccount derives the company's withholding-tax account identifier
// from its abbreviation, matching the chart-of-accounts naming convention.
func (c Company) WithholdingAccount() string {
	return "04-04-003 - Withholding Taxes - " + c.Abbr
}
