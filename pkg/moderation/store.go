// Package moderation contiene el núcleo del sistema de moderación: el
// ledger de castigos, la configuración por guild, el evaluador de
// políticas y el orquestador de acciones. No realiza I/O de plataforma;
// los efectos externos (roles, timeouts, notificaciones) se inyectan.
package moderation

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// WarnExpiry es la ventana deslizante durante la cual una advertencia
// cuenta para el auto-ban. Se evalúa en cada consulta; las advertencias
// expiradas permanecen en el historial hasta que se limpian.
const WarnExpiry = 7 * 24 * time.Hour

// LedgerStore es el registro duradero de castigos por usuario.
// Las implementaciones deben ser seguras para uso concurrente.
type LedgerStore interface {
	// Append añade un registro nuevo asignando id y timestamp.
	// La escritura es todo-o-nada.
	Append(ctx context.Context, userID string, kind models.PunishmentKind, reason string) (*models.PunishmentRecord, error)

	// History devuelve todos los registros del usuario ordenados por
	// timestamp descendente.
	History(ctx context.Context, userID string) ([]models.PunishmentRecord, error)

	// ActiveWarnCount cuenta las advertencias con timestamp
	// estrictamente posterior a now-window.
	ActiveWarnCount(ctx context.Context, userID string, now time.Time, window time.Duration) (int, error)

	// RemoveMostRecentWarn borra exactamente la advertencia de mayor
	// timestamp (desempate: mayor id). Devuelve false si no había.
	RemoveMostRecentWarn(ctx context.Context, userID string) (bool, error)

	// ClearWarns borra todas las advertencias del usuario.
	ClearWarns(ctx context.Context, userID string) error
}

// SettingsStore persiste la configuración de moderación por guild.
type SettingsStore interface {
	// Get devuelve la configuración existente, o crea y devuelve la
	// configuración por defecto de forma atómica si no existe.
	Get(ctx context.Context, guildID string) (*models.GuildSettings, error)

	// Update fusiona el patch sobre la fila actual y la reescribe
	// completa. Sin control de concurrencia: gana la última escritura.
	Update(ctx context.Context, guildID string, patch models.SettingsPatch) error
}

// Effector aplica los efectos de plataforma de una acción. El núcleo lo
// trata como colaborador externo: un fallo aquí no se reintenta.
type Effector interface {
	// Quarantine retira los roles no gestionados del miembro y le
	// asigna el rol de baneado.
	Quarantine(ctx context.Context, guildID, userID, banRoleID string) error

	// Restore retira el rol de baneado y asigna el rol de miembro.
	Restore(ctx context.Context, guildID, userID, banRoleID, memberRoleID string) error

	// Timeout silencia al miembro hasta until.
	Timeout(ctx context.Context, guildID, userID string, until time.Time) error

	// ClearTimeout retira el silencio del miembro.
	ClearTimeout(ctx context.Context, guildID, userID string) error

	// IsMember reports whether the user is currently in the guild.
	IsMember(ctx context.Context, guildID, userID string) bool
}
