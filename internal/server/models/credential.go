package models

// Attribute and operator tags for rows this subsystem writes to radcheck.
// The namespace is shared with FreeRADIUS-provisioned rows, which may carry
// other attributes.
const (
	CredentialAttribute = "Cleartext-Password"
	CredentialOperator  = ":="
)

// Credential is the network-authentication record paired 1:1 with an
// Identity. Username mirrors the identity's email, Value its phone; the
// phone doubles as the CHAP shared secret, so it is stored as-is.
type Credential struct {
	Username  string
	Attribute string
	Operator  string
	Value     string
}
