package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		value string
		want  Role
	}{
		{"guest", RoleGuest},
		{"buyer", RoleBuyer},
		{"seller", RoleSeller},
		{"admin", RoleAdmin},
		{"Seller", RoleSeller},
		{"  ADMIN ", RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			role, err := ParseRole(tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestParseRole_Unknown(t *testing.T) {
	_, err := ParseRole("superuser")
	assert.True(t, errors.Is(err, ErrUnknownRole))

	_, err = ParseRole("")
	assert.True(t, errors.Is(err, ErrUnknownRole))
}

func TestRole_In(t *testing.T) {
	assert.True(t, RoleSeller.In(RoleSeller, RoleAdmin))
	assert.True(t, RoleAdmin.In(RoleSeller, RoleAdmin))
	assert.False(t, RoleBuyer.In(RoleSeller, RoleAdmin))
	assert.False(t, RoleGuest.In())
}
