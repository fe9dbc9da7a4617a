package model

// Identity is the resolved result of validating a credential against the
// auth service. The ledger trusts it and never inspects the credential itself.
type Identity struct {
	UserID   int64
	Username string
}
