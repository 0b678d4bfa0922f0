// Package adapter conecta el núcleo de moderación con Discord: efectos
// de plataforma (roles, timeouts) y el espejo de auditoría al canal de
// logs del guild.
package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// DiscordEffector aplica los efectos de moderación sobre discordgo
type DiscordEffector struct {
	session *discordgo.Session
}

// NewDiscordEffector crea el effector sobre una sesión activa
func NewDiscordEffector(session *discordgo.Session) *DiscordEffector {
	return &DiscordEffector{session: session}
}

var _ moderation.Effector = (*DiscordEffector)(nil)

// member busca al miembro en el state y cae al fetch de API
func (e *DiscordEffector) member(guildID, userID string) (*discordgo.Member, error) {
	if m, err := e.session.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	return e.session.GuildMember(guildID, userID)
}

// managedRoles devuelve el conjunto de roles gestionados por
// integraciones, que Discord no permite quitar manualmente
func (e *DiscordEffector) managedRoles(guildID string) (map[string]bool, error) {
	roles, err := e.session.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	managed := make(map[string]bool, len(roles))
	for _, r := range roles {
		if r.Managed {
			managed[r.ID] = true
		}
	}
	return managed, nil
}

// Quarantine retira todos los roles no gestionados del miembro y le
// asigna el rol de cuarentena
func (e *DiscordEffector) Quarantine(_ context.Context, guildID, userID, banRoleID string) error {
	m, err := e.member(guildID, userID)
	if err != nil {
		return fmt.Errorf("miembro %s no disponible: %w", userID, err)
	}

	managed, err := e.managedRoles(guildID)
	if err != nil {
		return fmt.Errorf("no se pudieron leer los roles del guild: %w", err)
	}

	for _, roleID := range m.Roles {
		if managed[roleID] || roleID == banRoleID {
			continue
		}
		if err := e.session.GuildMemberRoleRemove(guildID, userID, roleID); err != nil {
			return fmt.Errorf("no se pudo quitar el rol %s: %w", roleID, err)
		}
	}

	if err := e.session.GuildMemberRoleAdd(guildID, userID, banRoleID); err != nil {
		return fmt.Errorf("no se pudo asignar el rol de cuarentena: %w", err)
	}
	return nil
}

// Restore quita el rol de cuarentena y devuelve el rol de miembro
func (e *DiscordEffector) Restore(_ context.Context, guildID, userID, banRoleID, memberRoleID string) error {
	if err := e.session.GuildMemberRoleRemove(guildID, userID, banRoleID); err != nil {
		return fmt.Errorf("no se pudo quitar el rol de cuarentena: %w", err)
	}
	if err := e.session.GuildMemberRoleAdd(guildID, userID, memberRoleID); err != nil {
		return fmt.Errorf("no se pudo devolver el rol de miembro: %w", err)
	}
	return nil
}

// Timeout silencia al miembro hasta la fecha dada
func (e *DiscordEffector) Timeout(_ context.Context, guildID, userID string, until time.Time) error {
	if err := e.session.GuildMemberTimeout(guildID, userID, &until); err != nil {
		return fmt.Errorf("no se pudo aplicar el timeout: %w", err)
	}
	return nil
}

// ClearTimeout levanta el silencio del miembro
func (e *DiscordEffector) ClearTimeout(_ context.Context, guildID, userID string) error {
	if err := e.session.GuildMemberTimeout(guildID, userID, nil); err != nil {
		return fmt.Errorf("no se pudo levantar el timeout: %w", err)
	}
	return nil
}

// IsMember indica si el usuario sigue en el guild
func (e *DiscordEffector) IsMember(_ context.Context, guildID, userID string) bool {
	if _, err := e.member(guildID, userID); err != nil {
		logger.Debug(fmt.Sprintf("Miembro %s no encontrado en %s", userID, guildID), "Effector")
		return false
	}
	return true
}
