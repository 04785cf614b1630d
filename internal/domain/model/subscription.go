package model

// Service is an activable service covered by the contract.
type Service struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AutoEnabled bool   `json:"auto_enabled"`
}

// ServiceFromRaw converts a raw service entry to its domain shape.
func ServiceFromRaw(raw RawService) Service {
	return Service{
		Name:        raw.Name,
		Description: raw.Description,
		AutoEnabled: raw.AutoEnabled == "yes",
	}
}

// Subscription is the validated view of a contract: it only ever exists
// for a token whose expiry is strictly in the future at query time.
type Subscription struct {
	AccountName   string    `json:"account_name"`
	ContractName  string    `json:"contract_name"`
	ContractToken string    `json:"contract_token"`
	Services      []Service `json:"services"`
}
