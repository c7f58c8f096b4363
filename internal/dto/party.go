package dto

// CreateCustomerRequest creates an insured company. company_id is the natural
// key; the remaining fields are the allow-listed optional attributes.
type CreateCustomerRequest struct {
	CompanyID    string `json:"company_id" binding:"required"`
	Territory    string `json:"territory,omitempty"`
	CustomerType string `json:"customer_type,omitempty"`
}

// CreateProviderRequest creates a care provider (supplier). provider_id is the
// natural key.
type CreateProviderRequest struct {
	ProviderID    string `json:"provider_id" binding:"required"`
	SupplierGroup string `json:"supplier_group,omitempty"`
	Country       string `json:"country,omitempty"`
}

// CreateRecordResponse is the uniform success payload of the create endpoints.
type CreateRecordResponse struct {
	Status string `json:"status"`
	Name   string `json:"name"`
}

// ErrorResponse is the uniform failure payload of the create endpoints.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
