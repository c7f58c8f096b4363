package domain

// PartyType classifies the counter-party on a ledger line.
type PartyType string

const (
	PartyCustomer PartyType = "Customer"
	PartySupplier PartyType = "Supplier"
	PartyEmployee PartyType = "Employee"
)

// Customer is an insured company billed through sales invoices.
type Customer struct {
	CustomerID   string `json:"customerID"`
	CustomerName string `json:"customerName"`
	Territory    string `json:"territory,omitempty"`
	CustomerType string `json:"customerType,omitempty"`
	AuditFields
}

// Supplier is a care provider paid through purchase invoices and claims journals.
type Supplier struct {
	SupplierID    string `json:"supplierID"`
	SupplierName  string `json:"supplierName"`
	ProviderID    string `json:"providerID"`
	SupplierGroup string `json:"supplierGroup,omitempty"`
	Country       string `json:"country,omitempty"`
	AuditFields
}

// Employee is kept so employee-party ledger rows resolve to a display name.
type Employee struct {
	EmployeeID   string `json:"employeeID"`
	EmployeeName string `json:"employeeName"`
	AuditFields
}

// PartyNameMap resolves party identifiers to human-readable names per party type.
type PartyNameMap map[PartyType]map[string]string

// NameFor returns the display name for a party, empty when unknown.
func (m PartyNameMap) NameFor(partyType PartyType, party string) string {
	byID, ok := m[partyType]
	if !ok {
		return ""
	}
	return byID[party]
}
