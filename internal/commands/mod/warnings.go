package mod

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand crea el subcomando /mod warnings
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"Historial de sanciones de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a consultar (por defecto, tú mismo)",
			Required:    false,
		},
	)
}

func kindIcon(kind models.PunishmentKind) string {
	switch kind {
	case models.PunishmentBan:
		return "🔨"
	case models.PunishmentWarn:
		return "⚠️"
	case models.PunishmentMute:
		return "🔇"
	}
	return "❔"
}

func warningsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		target := ctx.GetUserOption("usuario")
		isSelf := false

		perms, err := ctx.Session.UserChannelPermissions(ctx.User().ID, ctx.Interaction.ChannelID)
		if err != nil {
			perms = 0
		}
		isModerator := (perms & discordgo.PermissionManageMessages) != 0

		if target == nil {
			target = ctx.User()
			isSelf = true
		}

		if !isSelf && !isModerator {
			ctx.ReplyEphemeral("❌ No tienes permisos para ver el historial de otro usuario.")
			return
		}

		bg := context.Background()
		history, err := service.Ledger.History(bg, target.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando el historial de %s: %v", target.ID, err), "CMD-Warnings")
			ctx.ReplyEphemeral("❌ Error al consultar la base de datos.")
			return
		}

		activeWarns, err := service.Ledger.ActiveWarnCount(bg, target.ID, time.Now(), moderation.WarnExpiry)
		if err != nil {
			logger.Error(fmt.Sprintf("Error contando advertencias de %s: %v", target.ID, err), "CMD-Warnings")
			ctx.ReplyEphemeral("❌ Error al consultar la base de datos.")
			return
		}

		if len(history) == 0 {
			ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
				Title:       fmt.Sprintf("🔖 - Historial de %s", target.Username),
				Color:       0x00FF00,
				Description: fmt.Sprintf("No se han encontrado sanciones del usuario\n\n> 💫 - **Advertencias activas:** 0\n> 🕒 - **Fecha de consulta:** <t:%d>", time.Now().Unix()),
				Footer: &discordgo.MessageEmbedFooter{
					Text: "💫 - PancyGuard",
				},
			})
			return
		}

		var description string
		const maxEntries = 10
		for idx, rec := range history {
			if idx >= maxEntries {
				description += fmt.Sprintf("... y %d sanciones más\n\n", len(history)-maxEntries)
				break
			}
			description += fmt.Sprintf("> %s **%s** — %s\n> **ID:** %d | **Fecha:** <t:%d>\n\n",
				kindIcon(rec.Kind), rec.Kind, rec.Reason, rec.ID, rec.Timestamp/1000)
		}
		description += fmt.Sprintf("> 💫 - **Advertencias activas:** %d\n> 🕒 - **Fecha de consulta:** <t:%d>", activeWarns, time.Now().Unix())

		ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 - Historial de %s (%s)", target.Username, target.ID),
			Color:       0xFFA500,
			Description: description,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 - PancyGuard",
			},
		})
	}()

	return nil
}
