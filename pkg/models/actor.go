package models

// Actor describe a quien ejecuta una acción de moderación, tal como lo
// entrega el adaptador de plataforma: identidad, flag de administrador
// y el conjunto de roles que posee.
type Actor struct {
	ID      string
	IsAdmin bool
	RoleIDs []string
}

// HasRole reports whether the actor holds the given role.
func (a Actor) HasRole(roleID string) bool {
	for _, r := range a.RoleIDs {
		if r == roleID {
			return true
		}
	}
	return false
}
