package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// Colores de embed por tipo de acción
const (
	colorPunish  = 0xE74C3C
	colorWarn    = 0xF39C12
	colorMute    = 0x9B59B6
	colorRelease = 0x2ECC71
)

// actionTitle devuelve el encabezado en español de cada acción
func actionTitle(kind moderation.ActionKind) string {
	switch kind {
	case moderation.ActionBan:
		return "🔨 Usuario baneado"
	case moderation.ActionWarn:
		return "⚠️ Usuario advertido"
	case moderation.ActionMute:
		return "🔇 Usuario silenciado"
	case moderation.ActionUnban:
		return "🔓 Ban retirado"
	case moderation.ActionUnwarn:
		return "📝 Advertencia retirada"
	case moderation.ActionUnmute:
		return "🔊 Silencio retirado"
	}
	return "Acción de moderación"
}

func actionColor(kind moderation.ActionKind) int {
	switch kind {
	case moderation.ActionBan:
		return colorPunish
	case moderation.ActionWarn:
		return colorWarn
	case moderation.ActionMute:
		return colorMute
	}
	return colorRelease
}

// ChannelNotifier espeja los eventos de auditoría al canal de logs
// configurado en cada guild. Un guild sin canal configurado
// simplemente no recibe el espejo.
type ChannelNotifier struct {
	session  *discordgo.Session
	settings moderation.SettingsStore
}

// NewChannelNotifier crea el notifier del canal de logs
func NewChannelNotifier(session *discordgo.Session, settings moderation.SettingsStore) *ChannelNotifier {
	return &ChannelNotifier{session: session, settings: settings}
}

var _ moderation.Notifier = (*ChannelNotifier)(nil)

// Notify publica el embed de auditoría, best-effort
func (n *ChannelNotifier) Notify(ctx context.Context, event moderation.AuditEvent) {
	settings, err := n.settings.Get(ctx, event.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo leer la configuración de %s: %v", event.GuildID, err), "AuditLog")
		return
	}
	if settings.LogChannelID == "" {
		return
	}

	embed := n.buildEmbed(event)
	if _, err := n.session.ChannelMessageSendEmbed(settings.LogChannelID, embed); err != nil {
		logger.Error(fmt.Sprintf("No se pudo enviar el log de auditoría a %s: %v", settings.LogChannelID, err), "AuditLog")
	}
}

func (n *ChannelNotifier) buildEmbed(event moderation.AuditEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: actionTitle(event.Kind),
		Color: actionColor(event.Kind),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s>", event.TargetID), Inline: true},
			{Name: "Moderador", Value: fmt.Sprintf("<@%s>", event.ModeratorID), Inline: true},
			{Name: "Razón", Value: event.Reason},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("💫 - PancyGuard | ID %s", event.ID),
		},
		Timestamp: time.UnixMilli(event.Timestamp).Format(time.RFC3339),
	}

	if event.Duration != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Duración", Value: event.Duration, Inline: true,
		})
	}
	if event.Kind == moderation.ActionWarn {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Advertencias",
			Value:  fmt.Sprintf("%d/%d", event.WarnCount, event.MaxWarnings),
			Inline: true,
		})
	}
	if event.AutoBan {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Escalada", Value: "Ban automático por límite de advertencias",
		})
	}
	return embed
}
