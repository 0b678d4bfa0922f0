package events

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// Custom ids de los campos de los modales
const (
	fieldReason   = "razon"
	fieldDuration = "duracion"
	fieldValue    = "valor"
)

// modalTitle devuelve el título del formulario de cada acción
func modalTitle(kind moderation.ActionKind) string {
	switch kind {
	case moderation.ActionBan:
		return "Banear usuario"
	case moderation.ActionWarn:
		return "Advertir usuario"
	case moderation.ActionMute:
		return "Silenciar usuario"
	case moderation.ActionUnban:
		return "Retirar ban"
	case moderation.ActionUnwarn:
		return "Retirar advertencia"
	case moderation.ActionUnmute:
		return "Retirar silencio"
	}
	return "Acción de moderación"
}

// buildActionModal construye el formulario de una acción. El custom id
// del modal reutiliza la codificación acción:objetivo del botón.
func buildActionModal(kind moderation.ActionKind, customID string) *discordgo.InteractionResponse {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    fieldReason,
					Label:       "Razón",
					Style:       discordgo.TextInputParagraph,
					Placeholder: "Razón de la acción (opcional)",
					Required:    false,
					MaxLength:   512,
				},
			},
		},
	}

	// Solo ban y mute llevan duración; en ban es informativa
	if kind == moderation.ActionBan || kind == moderation.ActionMute {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    fieldDuration,
					Label:       "Duración",
					Style:       discordgo.TextInputShort,
					Placeholder: "Ej: 30m, 2h, 1d (mute: por defecto 1h)",
					Required:    false,
					MaxLength:   16,
				},
			},
		})
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      modalTitle(kind),
			Components: rows,
		},
	}
}

// Etiquetas y pistas del modal de cada ajuste del panel de configuración
var settingModalFields = map[string]struct {
	title       string
	label       string
	placeholder string
}{
	mod.SettingBanRole:     {"Rol de cuarentena", "ID del rol", "ID del rol; vacío para desconfigurar"},
	mod.SettingMemberRole:  {"Rol de miembro", "ID del rol", "ID del rol; vacío para desconfigurar"},
	mod.SettingLogChannel:  {"Canal de logs", "ID del canal", "ID del canal; vacío para desconfigurar"},
	mod.SettingMaxWarnings: {"Límite de advertencias", "Número de advertencias", "Ej: 3"},
	mod.SettingWhitelistR:  {"Whitelist de roles", "IDs separados por comas", "Reemplaza la lista completa; vacío para limpiar"},
	mod.SettingWhitelistU:  {"Whitelist de usuarios", "IDs separados por comas", "Reemplaza la lista completa; vacío para limpiar"},
}

const settingsModalPrefix = "settings:"

// buildSettingsModal construye el formulario de un ajuste concreto
func buildSettingsModal(field string) *discordgo.InteractionResponse {
	meta, ok := settingModalFields[field]
	if !ok {
		return nil
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: settingsModalPrefix + field,
			Title:    meta.title,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    fieldValue,
							Label:       meta.label,
							Style:       discordgo.TextInputShort,
							Placeholder: meta.placeholder,
							Required:    false,
							MaxLength:   512,
						},
					},
				},
			},
		},
	}
}

// modalValues extrae los campos de texto de un modal enviado
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, component := range data.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range row.Components {
			if input, ok := c.(*discordgo.TextInput); ok {
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
