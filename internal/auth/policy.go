package auth

import "github.com/taskhive/taskhive-api/internal/models"

// CanMutateTask reports whether the caller may update or delete the task.
// Admins may mutate any task; everyone else only tasks they created.
// Reads are unrestricted and never consult this policy.
func CanMutateTask(identity Identity, task models.Task) bool {
	if identity.IsAdmin() {
		return true
	}
	return identity.ID == task.CreatedByID
}
