package permission

import "ticketapp/internal/shared/authorization"

type Resource string

const (
	ResourceTicket       Resource = "ticket"
	ResourceAdminConsole Resource = "admin_console"
	ResourceUser         Resource = "user"
)

type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionEditOwn Action = "edit_own"
	ActionDelete  Action = "delete"
	ActionAccess  Action = "access"
	ActionManage  Action = "manage"
)

// Rule grants action on resource to role.
type Rule struct {
	Role     authorization.UserRole
	Resource Resource
	Action   Action
}

// DefaultRules is the rule set loaded when no stored rules exist.
func DefaultRules() []Rule {
	return []Rule{
		{authorization.RoleAdmin, ResourceTicket, ActionView},
		{authorization.RoleAdmin, ResourceTicket, ActionCreate},
		{authorization.RoleAdmin, ResourceTicket, ActionEdit},
		{authorization.RoleAdmin, ResourceTicket, ActionDelete},
		{authorization.RoleAdmin, ResourceAdminConsole, ActionAccess},
		{authorization.RoleAdmin, ResourceUser, ActionDelete},
		{authorization.RoleAdmin, ResourceUser, ActionManage},
		{authorization.RoleUser, ResourceTicket, ActionView},
		{authorization.RoleUser, ResourceTicket, ActionCreate},
		{authorization.RoleUser, ResourceTicket, ActionEditOwn},
	}
}
