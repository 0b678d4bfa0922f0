package mod

import (
	"context"
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createActionCommand crea el subcomando /mod action
func createActionCommand() *discord.Command {
	return discord.NewCommand(
		"action",
		"Abre el panel de moderación sobre un usuario",
		"mod",
		actionHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario objetivo de la acción",
			Required:    true,
		},
	)
}

// moderatorActor describe al invocante para la política de autorización
func moderatorActor(member *discordgo.Member) models.Actor {
	if member == nil || member.User == nil {
		return models.Actor{}
	}
	return models.Actor{
		ID:      member.User.ID,
		IsAdmin: member.Permissions&discordgo.PermissionAdministrator != 0,
		RoleIDs: member.Roles,
	}
}

// canModerate consulta la configuración del guild y aplica la misma
// política de whitelist que el orquestador, antes de renderizar nada
func canModerate(ctx context.Context, guildID string, actor models.Actor) (bool, error) {
	settings, err := service.Settings.Get(ctx, guildID)
	if err != nil {
		return false, err
	}
	return moderation.IsAuthorized(actor, settings), nil
}

func actionHandler(ctx *discord.CommandContext) error {
	target := ctx.GetUserOption("usuario")
	if target == nil {
		return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
	}
	if target.Bot {
		return ctx.ReplyEphemeral("❌ No se puede moderar a un bot.")
	}
	if target.ID == ctx.User().ID {
		return ctx.ReplyEphemeral("❌ No puedes moderarte a ti mismo.")
	}

	ok, err := canModerate(context.Background(), ctx.Interaction.GuildID, moderatorActor(ctx.Member()))
	if err != nil {
		logger.Error(fmt.Sprintf("Error leyendo la configuración de %s: %v", ctx.Interaction.GuildID, err), "CMD-Action")
		return ctx.ReplyEphemeral("❌ Error al consultar la base de datos.")
	}
	if !ok {
		return ctx.ReplyEphemeral("❌ No estás autorizado para ejecutar acciones de moderación en este servidor.")
	}

	embed := ActionMenuEmbed(target)
	components := ActionMenuComponents(target.ID, false)

	if err := ctx.ReplyComponents(embed, components, false); err != nil {
		return err
	}

	ScheduleMenuDisable(ctx.Session, ctx.Interaction.Interaction, target.ID)
	return nil
}
