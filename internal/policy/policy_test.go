package policy

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func testPolicy(rateCfg RateLimitConfig) *Policy {
	return New(map[Operation][]string{
		OpCredit: {"role-admin"},
		OpDebit:  {"role-admin"},
		OpUndo:   {"role-admin"},
		OpReset:  {"role-boss"},
		OpView:   {"role-staff", "role-admin"},
	}, rateCfg)
}

func TestHasRequiredRole(t *testing.T) {
	p := testPolicy(RateLimitConfig{})

	admin := Actor{ID: "1", RoleIDs: []string{"role-admin"}}
	staff := Actor{ID: "2", RoleIDs: []string{"role-staff"}}
	nobody := Actor{ID: "3", RoleIDs: []string{"role-guest"}}

	assert.True(t, p.HasRequiredRole(admin, OpCredit))
	assert.True(t, p.HasRequiredRole(admin, OpView))
	assert.False(t, p.HasRequiredRole(staff, OpCredit))
	assert.True(t, p.HasRequiredRole(staff, OpView))
	assert.False(t, p.HasRequiredRole(nobody, OpView))
	assert.False(t, p.HasRequiredRole(Actor{ID: "4"}, OpCredit))
}

func TestHasRequiredPermission(t *testing.T) {
	p := testPolicy(RateLimitConfig{})

	manager := Actor{ID: "1", Permissions: discordgo.PermissionManageMessages}
	plain := Actor{ID: "2"}

	assert.True(t, p.HasRequiredPermission(manager, OpCredit))
	assert.True(t, p.HasRequiredPermission(manager, OpDebit))
	assert.True(t, p.HasRequiredPermission(manager, OpUndo))
	assert.False(t, p.HasRequiredPermission(plain, OpCredit))
	assert.False(t, p.HasRequiredPermission(plain, OpUndo))

	// View requires no permission; unmapped operations default to permitted.
	assert.True(t, p.HasRequiredPermission(plain, OpView))
	assert.True(t, p.HasRequiredPermission(plain, OpReset))
}

func TestAllowRequiresBothChecks(t *testing.T) {
	p := testPolicy(RateLimitConfig{})

	// Allowed role but missing Manage Messages.
	roleOnly := Actor{ID: "1", RoleIDs: []string{"role-admin"}}
	assert.False(t, p.Allow(roleOnly, OpCredit))

	// Manage Messages but no allowed role.
	permOnly := Actor{ID: "2", RoleIDs: []string{"role-guest"}, Permissions: discordgo.PermissionManageMessages}
	assert.False(t, p.Allow(permOnly, OpCredit))

	// Both.
	both := Actor{ID: "3", RoleIDs: []string{"role-admin"}, Permissions: discordgo.PermissionManageMessages}
	assert.True(t, p.Allow(both, OpCredit))
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	p := testPolicy(RateLimitConfig{})
	actor := Actor{ID: "1"}

	for i := 0; i < 100; i++ {
		assert.False(t, p.IsRateLimited(actor, OpCredit))
	}
}

func TestRateLimitEnabled(t *testing.T) {
	p := testPolicy(RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 2})
	actor := Actor{ID: "1"}
	other := Actor{ID: "2"}

	assert.False(t, p.IsRateLimited(actor, OpCredit))
	assert.False(t, p.IsRateLimited(actor, OpCredit))
	assert.True(t, p.IsRateLimited(actor, OpCredit), "burst exhausted")

	// Buckets are per actor.
	assert.False(t, p.IsRateLimited(other, OpCredit))
}
