package rental

// AccountIdentity adapts an Account into the Identity interface for token generation.
type AccountIdentity struct {
	account *Account
}

// NewIdentityFromAccount returns an Identity adapter for the provided account.
func NewIdentityFromAccount(account *Account) Identity {
	if account == nil {
		return nil
	}
	return AccountIdentity{account: account}
}

// ID returns the account's ID as a string.
func (u AccountIdentity) ID() string {
	if u.account == nil {
		return ""
	}
	return u.account.ID.String()
}

// Name returns the account's display name.
func (u AccountIdentity) Name() string {
	if u.account == nil {
		return ""
	}
	return u.account.Name
}

// Email returns the account's email address.
func (u AccountIdentity) Email() string {
	if u.account == nil {
		return ""
	}
	return u.account.Email
}

// Role returns the account's role.
func (u AccountIdentity) Role() Role {
	if u.account == nil {
		return ""
	}
	return u.account.Role
}
