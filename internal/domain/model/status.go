package model

// SubscriptionStatus mirrors the JSON the ua client prints for
// `status --format json`. It is the raw, unvalidated payload: expiry is
// still a string and service flags are still "yes"/"no" strings.
type SubscriptionStatus struct {
	Expires  string       `json:"expires"`
	Account  AccountInfo  `json:"account"`
	Contract ContractInfo `json:"contract"`
	Services []RawService `json:"services"`
}

type AccountInfo struct {
	Name string `json:"name"`
}

type ContractInfo struct {
	Name string `json:"name"`
}

// RawService is one service entry as reported by the ua client.
type RawService struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   string `json:"available"`
	Entitled    string `json:"entitled"`
	AutoEnabled string `json:"auto_enabled"`
}

// Activable reports whether the service can be activated on this machine:
// available refers to the current hardware/release, entitled to the contract.
func (s RawService) Activable() bool {
	return s.Available == "yes" && s.Entitled == "yes"
}

// StatusError is one entry of the `errors` list the ua client prints on
// exit code 1.
type StatusError struct {
	MessageCode string `json:"message_code"`
	Message     string `json:"message"`
}

// StatusErrors is the error-shaped payload of a failed ua client run.
type StatusErrors struct {
	Errors []StatusError `json:"errors"`
}
