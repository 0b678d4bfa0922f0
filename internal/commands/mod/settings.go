package mod

import (
	"context"
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// SettingsMenuID es el custom id del selector del panel de configuración
const SettingsMenuID = "settings_menu"

// Valores del selector; cada uno abre un modal propio
const (
	SettingBanRole     = "banRole"
	SettingMemberRole  = "memberRole"
	SettingLogChannel  = "logChannel"
	SettingMaxWarnings = "maxWarnings"
	SettingWhitelistR  = "whitelistRoles"
	SettingWhitelistU  = "whitelistUsers"
)

// createSettingsCommand crea el subcomando /mod settings. La
// autorización se decide en el handler con la whitelist del guild, no
// con permisos de Discord, para que los moderadores no administradores
// también puedan configurar.
func createSettingsCommand() *discord.Command {
	return discord.NewCommand(
		"settings",
		"Panel de configuración de moderación del servidor",
		"mod",
		settingsHandler,
	)
}

func formatRole(id string) string {
	if id == "" {
		return "Sin configurar"
	}
	return fmt.Sprintf("<@&%s>", id)
}

func formatChannel(id string) string {
	if id == "" {
		return "Sin configurar"
	}
	return fmt.Sprintf("<#%s>", id)
}

func formatList(ids []string, mention string) string {
	if len(ids) == 0 {
		return "Vacía"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("<%s%s>", mention, id)
	}
	return strings.Join(parts, ", ")
}

// SettingsDashboardEmbed construye el embed del panel con la
// configuración actual del guild
func SettingsDashboardEmbed(settings *models.GuildSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚙️ - Configuración de moderación",
		Description: "Selecciona un ajuste en el menú para modificarlo.",
		Color:       0x95A5A6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Rol de cuarentena", Value: formatRole(settings.BanRoleID), Inline: true},
			{Name: "Rol de miembro", Value: formatRole(settings.MemberRoleID), Inline: true},
			{Name: "Canal de logs", Value: formatChannel(settings.LogChannelID), Inline: true},
			{Name: "Límite de advertencias", Value: fmt.Sprintf("%d", settings.MaxWarnings), Inline: true},
			{Name: "Whitelist de roles", Value: formatList(settings.WhitelistRoles, "@&")},
			{Name: "Whitelist de usuarios", Value: formatList(settings.WhitelistUsers, "@")},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - PancyGuard",
		},
	}
}

// SettingsMenuComponents construye el selector de ajustes
func SettingsMenuComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    SettingsMenuID,
					Placeholder: "Selecciona el ajuste a modificar",
					Options: []discordgo.SelectMenuOption{
						{Label: "Rol de cuarentena", Value: SettingBanRole, Description: "Rol que sustituye a los demás al banear", Emoji: &discordgo.ComponentEmoji{Name: "🔨"}},
						{Label: "Rol de miembro", Value: SettingMemberRole, Description: "Rol devuelto al retirar un ban", Emoji: &discordgo.ComponentEmoji{Name: "🔓"}},
						{Label: "Canal de logs", Value: SettingLogChannel, Description: "Canal donde se espejan las acciones", Emoji: &discordgo.ComponentEmoji{Name: "📋"}},
						{Label: "Límite de advertencias", Value: SettingMaxWarnings, Description: "Advertencias activas antes del ban automático", Emoji: &discordgo.ComponentEmoji{Name: "⚠️"}},
						{Label: "Whitelist de roles", Value: SettingWhitelistR, Description: "Roles autorizados a moderar", Emoji: &discordgo.ComponentEmoji{Name: "🛡️"}},
						{Label: "Whitelist de usuarios", Value: SettingWhitelistU, Description: "Usuarios autorizados a moderar", Emoji: &discordgo.ComponentEmoji{Name: "👤"}},
					},
				},
			},
		},
	}
}

func settingsHandler(ctx *discord.CommandContext) error {
	settings, err := service.Settings.Get(context.Background(), ctx.Interaction.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo la configuración de %s: %v", ctx.Interaction.GuildID, err), "CMD-Settings")
		return ctx.ReplyEphemeral("❌ Error al consultar la base de datos.")
	}

	if !moderation.IsAuthorized(moderatorActor(ctx.Member()), settings) {
		return ctx.ReplyEphemeral("❌ No estás autorizado para modificar la configuración de moderación.")
	}

	return ctx.ReplyComponents(SettingsDashboardEmbed(settings), SettingsMenuComponents(), true)
}
