package policy

import (
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Operation identifies a gated command kind.
type Operation string

const (
	OpCredit Operation = "credit"
	OpDebit  Operation = "debit"
	OpReset  Operation = "reset"
	OpUndo   Operation = "undo"
	OpView   Operation = "view"
)

// Actor is the invoking user as seen by the policy: identity, guild roles
// and the effective permission bitfield in the invoking channel.
type Actor struct {
	ID          string
	RoleIDs     []string
	Permissions int64
}

// RateLimitConfig configures the per-actor command rate limit. Disabled by
// default, matching the reference behavior's always-false spam check.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Policy gates every command behind a role check and a permission check,
// with a rate-limit hook. Allow-lists are configuration, not code.
type Policy struct {
	allowedRoles  map[Operation][]string
	requiredPerms map[Operation]int64

	rateCfg  RateLimitConfig
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a Policy from the per-operation role allow-lists.
// Credit, debit and undo additionally require the Manage Messages
// permission; view requires none.
func New(allowedRoles map[Operation][]string, rateCfg RateLimitConfig) *Policy {
	return &Policy{
		allowedRoles: allowedRoles,
		requiredPerms: map[Operation]int64{
			OpCredit: discordgo.PermissionManageMessages,
			OpDebit:  discordgo.PermissionManageMessages,
			OpUndo:   discordgo.PermissionManageMessages,
			OpView:   0,
		},
		rateCfg:  rateCfg,
		limiters: make(map[string]*rate.Limiter),
	}
}

// HasRequiredRole reports whether the actor holds at least one of the roles
// allow-listed for the operation.
func (p *Policy) HasRequiredRole(actor Actor, op Operation) bool {
	allowed := p.allowedRoles[op]
	for _, roleID := range actor.RoleIDs {
		for _, allowedID := range allowed {
			if roleID == allowedID {
				return true
			}
		}
	}
	return false
}

// HasRequiredPermission reports whether the actor's permission bitfield
// carries the bits the operation requires. Operations with no mapping
// default to permitted.
func (p *Policy) HasRequiredPermission(actor Actor, op Operation) bool {
	required, ok := p.requiredPerms[op]
	if !ok {
		return true
	}
	return actor.Permissions&required == required
}

// IsRateLimited reports whether the actor has exhausted its token bucket.
// Always false when rate limiting is disabled.
func (p *Policy) IsRateLimited(actor Actor, op Operation) bool {
	if !p.rateCfg.Enabled {
		return false
	}

	p.mu.Lock()
	limiter, ok := p.limiters[actor.ID]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(p.rateCfg.RPS), p.rateCfg.Burst)
		p.limiters[actor.ID] = limiter
	}
	p.mu.Unlock()

	return !limiter.Allow()
}

// Allow reports whether the actor may invoke the operation: role check and
// permission check must both pass, and the actor must not be rate-limited.
func (p *Policy) Allow(actor Actor, op Operation) bool {
	return p.HasRequiredRole(actor, op) &&
		p.HasRequiredPermission(actor, op) &&
		!p.IsRateLimited(actor, op)
}
