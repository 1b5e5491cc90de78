package domain

// Role is the staff tier supplied by the identity collaborator. The
// ledger treats it as an opaque capability token; all permission
// decisions go through the Can* functions below so the rules live in
// exactly one place.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleStaffManager   Role = "staff_manager"
	RoleDepartmentHead Role = "department_head"
	RoleStudent        Role = "student"
	RoleLecturer       Role = "lecturer"
	RoleStaff          Role = "staff"
)

// Identity is the resolved caller of an API operation.
type Identity struct {
	UserID string
	Name   string
	Role   Role
}

// CanApprove reports whether the role may approve/reject loans,
// process returns, and manage damage report priority/status.
func CanApprove(r Role) bool {
	return r == RoleAdmin || r == RoleStaffManager
}

// CanManageAssets reports whether the role may create, update or
// delete registry entries.
func CanManageAssets(r Role) bool {
	return r == RoleAdmin
}

// CanViewAllLoans reports whether the role sees every loan in
// listings; requester-class roles only see their own.
func CanViewAllLoans(r Role) bool {
	return CanApprove(r) || r == RoleDepartmentHead
}

// CanViewStats reports whether the role may read the aggregate
// dashboard figures.
func CanViewStats(r Role) bool {
	return CanApprove(r) || r == RoleDepartmentHead
}
