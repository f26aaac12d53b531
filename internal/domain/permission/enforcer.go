package permission

// PermissionEnforcer answers role capability questions. Implementations keep
// the rule set in memory so a check never performs I/O.
type PermissionEnforcer interface {
	Enforce(role string, resource string, action string) (bool, error)
	AddPolicy(role string, resource string, action string) error
	RemovePolicy(role string, resource string, action string) error
	GetPermissionsForRole(role string) ([][]string, error)
}
