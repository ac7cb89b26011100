package auth

const (
	RoleHR     = "hr"
	RoleViewer = "viewer"
)

const (
	PermEmployeesRead  = "employees.read"
	PermEmployeesWrite = "employees.write"
)

var RolePermissions = map[string][]string{
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
	},
	RoleViewer: {
		PermEmployeesRead,
	},
}

// OperatorContext is the authenticated caller attached to a request.
type OperatorContext struct {
	OperatorID string
	Email      string
	Role       string
}

func (o OperatorContext) Can(permission string) bool {
	for _, granted := range RolePermissions[o.Role] {
		if granted == permission {
			return true
		}
	}
	return false
}

func ValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
