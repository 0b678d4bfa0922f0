package moderation

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// WarnEvaluation es el resultado de evaluar la política de advertencias
// después de registrar una nueva.
type WarnEvaluation struct {
	// CurrentCount es el número de advertencias activas dentro de la
	// ventana de expiración, incluyendo la recién añadida.
	CurrentCount int

	// AutoBanTriggered indica que se alcanzó el límite configurado.
	// La comparación es >=: llegar justo al límite banea.
	AutoBanTriggered bool
}

// EvaluateWarn calcula el recuento de advertencias activas del usuario
// y decide si dispara el auto-ban. Debe llamarse después de que la
// advertencia ya fue añadida al ledger. El llamador es responsable de
// limpiar las advertencias y registrar el ban si se dispara.
func EvaluateWarn(ctx context.Context, ledger LedgerStore, userID string, settings *models.GuildSettings) (WarnEvaluation, error) {
	count, err := ledger.ActiveWarnCount(ctx, userID, time.Now(), WarnExpiry)
	if err != nil {
		return WarnEvaluation{}, err
	}
	return WarnEvaluation{
		CurrentCount:     count,
		AutoBanTriggered: count >= settings.MaxWarnings,
	}, nil
}

// IsAuthorized decide si el actor puede ejecutar acciones de
// moderación: administrador, usuario en whitelist, o portador de algún
// rol de la whitelist. Tres condiciones independientes unidas por OR;
// no hay listas de denegación ni jerarquía de roles.
func IsAuthorized(actor models.Actor, settings *models.GuildSettings) bool {
	if actor.IsAdmin {
		return true
	}
	for _, id := range settings.WhitelistUsers {
		if id == actor.ID {
			return true
		}
	}
	for _, roleID := range settings.WhitelistRoles {
		if actor.HasRole(roleID) {
			return true
		}
	}
	return false
}
