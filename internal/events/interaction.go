package events

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

const backPrefix = "back:"

// RegisterInteractionEvents registra el manejo de componentes y modales.
// Los slash commands los despacha el CommandHandler.
func RegisterInteractionEvents(client *discord.ExtendedClient) {
	client.Session.AddHandler(onInteractionCreate)
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionMessageComponent:
		handleComponent(s, i)
	case discordgo.InteractionModalSubmit:
		handleModal(s, i)
	}
}

// replyEphemeral responde a la interacción con un mensaje efímero
func replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error respondiendo interacción: %v", err), "Interaction")
	}
}

// isMenuOwner comprueba que quien pulsa es quien invocó el menú
func isMenuOwner(i *discordgo.InteractionCreate) bool {
	if i.Member == nil || i.Message == nil || i.Message.Interaction == nil {
		return true
	}
	return i.Message.Interaction.User.ID == i.Member.User.ID
}

func actorFromMember(member *discordgo.Member) models.Actor {
	return models.Actor{
		ID:      member.User.ID,
		IsAdmin: member.Permissions&discordgo.PermissionAdministrator != 0,
		RoleIDs: member.Roles,
	}
}

func handleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer errors.RecoverMiddleware()()

	if i.Member == nil {
		return
	}
	if !isMenuOwner(i) {
		replyEphemeral(s, i, "❌ Este menú pertenece a otro moderador.")
		return
	}

	customID := i.MessageComponentData().CustomID
	logger.Debug(fmt.Sprintf("Componente pulsado: %s", customID), "Interaction")

	if customID == mod.SettingsMenuID {
		handleSettingsSelect(s, i)
		return
	}

	if target, ok := strings.CutPrefix(customID, backPrefix); ok {
		handleBack(s, i, target)
		return
	}

	kind, _, err := moderation.DecodeCustomID(customID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Componente no reconocido: %s", customID), "Interaction")
		return
	}

	if err := s.InteractionRespond(i.Interaction, buildActionModal(kind, customID)); err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el modal de %s: %v", kind, err), "Interaction")
	}
}

// handleBack vuelve de una confirmación al panel de acciones
func handleBack(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) {
	target, err := s.User(targetID)
	if err != nil {
		replyEphemeral(s, i, "❌ No se pudo recuperar al usuario del menú.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{mod.ActionMenuEmbed(target)},
			Components: mod.ActionMenuComponents(targetID, false),
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error volviendo al menú: %v", err), "Interaction")
		return
	}

	if i.Message != nil {
		mod.ScheduleMenuDisableForMessage(s, i.Message.ChannelID, i.Message.ID, targetID)
	}
}

func handleModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer errors.RecoverMiddleware()()

	if i.Member == nil {
		return
	}

	data := i.ModalSubmitData()
	logger.Debug(fmt.Sprintf("Modal enviado: %s", data.CustomID), "Interaction")

	if field, ok := strings.CutPrefix(data.CustomID, settingsModalPrefix); ok {
		handleSettingsModal(s, i, field, modalValues(data))
		return
	}

	kind, targetID, err := moderation.DecodeCustomID(data.CustomID)
	if err != nil {
		logger.Warn(fmt.Sprintf("Modal no reconocido: %s", data.CustomID), "Interaction")
		return
	}

	values := modalValues(data)
	req := moderation.ActionRequest{
		Kind:     kind,
		GuildID:  i.GuildID,
		TargetID: targetID,
		Reason:   strings.TrimSpace(values[fieldReason]),
		Duration: strings.TrimSpace(values[fieldDuration]),
	}

	res, err := service.Execute(context.Background(), actorFromMember(i.Member), req)
	if err != nil {
		replyEphemeral(s, i, actionErrorMessage(err))
		return
	}

	embed := confirmationEmbed(res, targetID)
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Volver al menú",
					Style:    discordgo.SecondaryButton,
					CustomID: backPrefix + targetID,
					Emoji:    &discordgo.ComponentEmoji{Name: "↩️"},
				},
			},
		},
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error confirmando la acción: %v", err), "Interaction")
	}
}

// actionErrorMessage traduce los rechazos del orquestador a mensajes
// para el moderador
func actionErrorMessage(err error) string {
	switch {
	case stderrors.Is(err, moderation.ErrUnauthorized):
		return "❌ No estás autorizado para ejecutar acciones de moderación en este servidor."
	case stderrors.Is(err, moderation.ErrUnconfigured):
		return fmt.Sprintf("❌ Configuración incompleta: %v. Usa `/mod settings`.", err)
	case stderrors.Is(err, moderation.ErrNotFound):
		return fmt.Sprintf("❌ %v.", err)
	}
	logger.Error(fmt.Sprintf("Error ejecutando acción: %v", err), "Interaction")
	return "❌ Ocurrió un error ejecutando la acción. Inténtalo de nuevo."
}

func confirmationEmbed(res *moderation.ActionResult, targetID string) *discordgo.MessageEmbed {
	event := res.Event

	embed := &discordgo.MessageEmbed{
		Color: 0x2ECC71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usuario", Value: fmt.Sprintf("<@%s>", targetID), Inline: true},
			{Name: "Razón", Value: event.Reason, Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - PancyGuard",
		},
		Timestamp: time.UnixMilli(event.Timestamp).Format(time.RFC3339),
	}

	switch {
	case res.AutoBanned:
		embed.Title = "⛔ Ban automático aplicado"
		embed.Color = 0xE74C3C
		embed.Description = fmt.Sprintf("El usuario alcanzó el límite de advertencias (%d/%d) y fue puesto en cuarentena.", event.WarnCount, event.MaxWarnings)
	case res.AutoBanDegraded:
		embed.Title = "⚠️ Advertencia registrada — límite alcanzado"
		embed.Color = 0xF39C12
		embed.Description = fmt.Sprintf("El usuario alcanzó el límite de advertencias (%d/%d), pero el ban automático no pudo aplicarse: revisa el rol de cuarentena en `/mod settings` o la presencia del miembro.", res.Evaluation.CurrentCount, event.MaxWarnings)
	case event.Kind == moderation.ActionWarn:
		embed.Title = "⚠️ Advertencia registrada"
		embed.Color = 0xF39C12
		embed.Description = fmt.Sprintf("Advertencias activas: %d/%d.", event.WarnCount, event.MaxWarnings)
	case event.Kind == moderation.ActionBan:
		embed.Title = "🔨 Usuario baneado"
		embed.Color = 0xE74C3C
	case event.Kind == moderation.ActionMute:
		embed.Title = "🔇 Usuario silenciado"
		embed.Description = fmt.Sprintf("Silenciado hasta <t:%d:R>.", res.MuteUntil.Unix())
	case event.Kind == moderation.ActionUnban:
		embed.Title = "🔓 Ban retirado"
	case event.Kind == moderation.ActionUnwarn:
		embed.Title = "📝 Advertencia retirada"
	case event.Kind == moderation.ActionUnmute:
		embed.Title = "🔊 Silencio retirado"
	}

	if event.Duration != "" && event.Kind == moderation.ActionBan {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Duración declarada", Value: event.Duration, Inline: true,
		})
	}

	return embed
}

// handleSettingsSelect abre el modal del ajuste elegido en el panel
func handleSettingsSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}

	modal := buildSettingsModal(values[0])
	if modal == nil {
		logger.Warn(fmt.Sprintf("Ajuste desconocido: %s", values[0]), "Interaction")
		return
	}

	if err := s.InteractionRespond(i.Interaction, modal); err != nil {
		logger.Error(fmt.Sprintf("Error abriendo el modal de configuración: %v", err), "Interaction")
	}
}

// splitIDList separa una lista de ids escrita a mano
func splitIDList(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "<>@&#!")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// handleSettingsModal aplica el ajuste enviado y reenvía el panel
func handleSettingsModal(s *discordgo.Session, i *discordgo.InteractionCreate, field string, values map[string]string) {
	value := strings.TrimSpace(values[fieldValue])

	var patch models.SettingsPatch
	switch field {
	case mod.SettingBanRole:
		patch.BanRoleID = &value
	case mod.SettingMemberRole:
		patch.MemberRoleID = &value
	case mod.SettingLogChannel:
		patch.LogChannelID = &value
	case mod.SettingMaxWarnings:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			replyEphemeral(s, i, "❌ El límite de advertencias debe ser un número mayor que cero.")
			return
		}
		patch.MaxWarnings = &n
	case mod.SettingWhitelistR:
		list := splitIDList(value)
		patch.WhitelistRoles = &list
	case mod.SettingWhitelistU:
		list := splitIDList(value)
		patch.WhitelistUsers = &list
	default:
		logger.Warn(fmt.Sprintf("Ajuste desconocido en modal: %s", field), "Interaction")
		return
	}

	ctx := context.Background()
	if err := service.Settings.Update(ctx, i.GuildID, patch); err != nil {
		logger.Error(fmt.Sprintf("Error guardando la configuración de %s: %v", i.GuildID, err), "Interaction")
		replyEphemeral(s, i, "❌ Error al guardar la configuración.")
		return
	}

	settings, err := service.Settings.Get(ctx, i.GuildID)
	if err != nil {
		replyEphemeral(s, i, "✅ Configuración guardada.")
		return
	}

	embed := mod.SettingsDashboardEmbed(settings)
	embed.Description = "✅ Configuración guardada.\n" + embed.Description

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: mod.SettingsMenuComponents(),
			Flags:      discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error reenviando el panel de configuración: %v", err), "Interaction")
	}
}
