package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskhive/taskhive-api/internal/models"
)

func TestCanMutateTask(t *testing.T) {
	task := models.Task{ID: 7, CreatedByID: 42}

	tests := []struct {
		name     string
		identity Identity
		want     bool
	}{
		{
			name:     "admin may mutate any task",
			identity: Identity{ID: 1, Role: models.RoleAdmin},
			want:     true,
		},
		{
			name:     "creator may mutate own task",
			identity: Identity{ID: 42, Role: models.RoleUser},
			want:     true,
		},
		{
			name:     "other user may not mutate",
			identity: Identity{ID: 99, Role: models.RoleUser},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanMutateTask(tt.identity, task))
		})
	}
}

func TestIdentity_IsAdmin(t *testing.T) {
	assert.True(t, Identity{Role: models.RoleAdmin}.IsAdmin())
	assert.False(t, Identity{Role: models.RoleUser}.IsAdmin())
	assert.False(t, Identity{}.IsAdmin())
}
