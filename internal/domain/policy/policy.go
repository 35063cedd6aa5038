package policy

import (
	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
)

// Action names an operation guarded by the capability table
type Action string

const (
	ActionProfessionalUpdate Action = "professional:update"
	ActionPortfolioManage    Action = "portfolio:manage"
	ActionCompanyUpdate      Action = "company:update"
	ActionIndicationCreate   Action = "indication:create"
	ActionImageUpload        Action = "image:upload"
	ActionUsersManage        Action = "users:manage"
	ActionStatsView          Action = "stats:view"
)

// Scope is how far a granted action reaches
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAny
)

func (s Scope) String() string {
	switch s {
	case ScopeOwn:
		return "own"
	case ScopeAny:
		return "any"
	}
	return "none"
}

// Actions lists every guarded action
var Actions = []Action{
	ActionProfessionalUpdate,
	ActionPortfolioManage,
	ActionCompanyUpdate,
	ActionIndicationCreate,
	ActionImageUpload,
	ActionUsersManage,
	ActionStatsView,
}

// capabilities is the role -> action -> scope table.
// Anything not listed resolves to ScopeNone.
var capabilities = map[entities.UserRole]map[Action]Scope{
	entities.UserRoleAdmin: allActions(ScopeAny),
	entities.UserRoleProfessional: {
		ActionProfessionalUpdate: ScopeOwn,
		ActionPortfolioManage:    ScopeOwn,
		ActionIndicationCreate:   ScopeOwn,
		ActionImageUpload:        ScopeOwn,
	},
	entities.UserRoleCompany: {
		ActionCompanyUpdate: ScopeOwn,
		ActionImageUpload:   ScopeOwn,
	},
	entities.UserRoleClient: {
		ActionImageUpload: ScopeOwn,
	},
}

func allActions(s Scope) map[Action]Scope {
	out := make(map[Action]Scope, len(Actions))
	for _, a := range Actions {
		out[a] = s
	}
	return out
}

// ScopeFor resolves the scope a role holds on an action
func ScopeFor(role entities.UserRole, action Action) Scope {
	return capabilities[role][action]
}

// Allows reports whether role holds action at any scope
func Allows(role entities.UserRole, action Action) bool {
	return ScopeFor(role, action) != ScopeNone
}

// CanActOn decides a mutation on a resource owned by owner.
// A resource without an owning user can only be reached with ScopeAny.
func CanActOn(user *entities.User, action Action, owner uuid.NullUUID) bool {
	if user == nil {
		return false
	}
	switch ScopeFor(user.Role, action) {
	case ScopeAny:
		return true
	case ScopeOwn:
		return owner.Valid && owner.UUID == user.ID
	}
	return false
}
