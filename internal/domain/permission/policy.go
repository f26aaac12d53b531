// Package permission decides what an actor may do with tickets and users.
// Decisions are pure functions of already-loaded records.
package permission

import (
	"golang.org/x/text/cases"

	"ticketapp/internal/domain/ticket"
	"ticketapp/internal/shared/logger"
)

type Policy struct {
	enforcer PermissionEnforcer
	logger   logger.Interface
}

func NewPolicy(enforcer PermissionEnforcer, log logger.Interface) *Policy {
	return &Policy{
		enforcer: enforcer,
		logger:   log,
	}
}

func (p *Policy) allowed(actor Actor, resource Resource, action Action) bool {
	if actor.IsZero() || !actor.Role.IsValid() {
		return false
	}

	ok, err := p.enforcer.Enforce(actor.Role.String(), string(resource), string(action))
	if err != nil {
		p.logger.Errorw("permission check failed",
			"role", actor.Role,
			"resource", resource,
			"action", action,
			"error", err,
		)
		return false
	}
	return ok
}

// CanView reports whether actor may read tickets.
func (p *Policy) CanView(actor Actor) bool {
	return p.allowed(actor, ResourceTicket, ActionView)
}

// CanCreate reports whether actor may file new tickets.
func (p *Policy) CanCreate(actor Actor) bool {
	return p.allowed(actor, ResourceTicket, ActionCreate)
}

// CanEdit grants edit rights to admins, the ticket's creator and its
// assignee. The assignee is matched by id; a case-insensitive name match is
// kept for rows whose assignee was recorded by name only.
func (p *Policy) CanEdit(actor Actor, t *ticket.Ticket) bool {
	if t == nil {
		return false
	}
	if p.allowed(actor, ResourceTicket, ActionEdit) {
		return true
	}
	if !p.allowed(actor, ResourceTicket, ActionEditOwn) {
		return false
	}

	if sameName(t.CreatedBy, actor.Username) {
		return true
	}
	if t.AssigneeID != nil && *t.AssigneeID == actor.ID {
		return true
	}
	return sameName(t.AssigneeName, actor.Username)
}

func (p *Policy) CanDelete(actor Actor, t *ticket.Ticket) bool {
	if t == nil {
		return false
	}
	return p.allowed(actor, ResourceTicket, ActionDelete)
}

func (p *Policy) CanAccessAdminConsole(actor Actor) bool {
	return p.allowed(actor, ResourceAdminConsole, ActionAccess)
}

// CanManageUsers covers creating users and changing roles.
func (p *Policy) CanManageUsers(actor Actor) bool {
	return p.allowed(actor, ResourceUser, ActionManage)
}

// CanDeleteUser refuses self-deletion even for admins.
func (p *Policy) CanDeleteUser(actor Actor, targetID uint) bool {
	if targetID == actor.ID {
		return false
	}
	return p.allowed(actor, ResourceUser, ActionDelete)
}

func sameName(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return cases.Fold().String(a) == cases.Fold().String(b)
}
