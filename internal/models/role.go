package models

// Role determines which console actions an identity may perform.
type Role string

const (
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
	RoleAuditor  Role = "auditor"
)

// ParseRole maps a raw role token to a known Role. Unrecognized or empty
// tokens fall back to operator, so a bad token never grants more than the
// baseline role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleAuditor:
		return RoleAuditor
	default:
		return RoleOperator
	}
}
