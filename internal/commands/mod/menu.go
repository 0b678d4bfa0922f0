package mod

import (
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// menuLifetime es el tiempo que el menú acepta pulsaciones
const menuLifetime = 60 * time.Second

// ActionMenuEmbed construye el embed del panel de moderación
func ActionMenuEmbed(target *discordgo.User) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🛡️ - Panel de moderación",
		Description: fmt.Sprintf("Acciones disponibles sobre <@%s>.\nSelecciona una acción; se pedirá la razón en un formulario.", target.ID),
		Color:       0x3498DB,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: target.AvatarURL(""),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - PancyGuard | El menú se desactiva en 60 segundos",
		},
	}
}

// ActionMenuComponents construye las dos filas de botones del panel.
// Los custom ids llevan la acción y el objetivo codificados.
func ActionMenuComponents(targetID string, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Ban",
					Style:    discordgo.DangerButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionBan, targetID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Advertir",
					Style:    discordgo.PrimaryButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionWarn, targetID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Silenciar",
					Style:    discordgo.SecondaryButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionMute, targetID),
					Disabled: disabled,
				},
			},
		},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Unban",
					Style:    discordgo.SuccessButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionUnban, targetID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Quitar advertencia",
					Style:    discordgo.SuccessButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionUnwarn, targetID),
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "Quitar silencio",
					Style:    discordgo.SuccessButton,
					CustomID: moderation.EncodeCustomID(moderation.ActionUnmute, targetID),
					Disabled: disabled,
				},
			},
		},
	}
}

var (
	menuTimersMu sync.Mutex
	menuTimers   = make(map[string]*time.Timer)
)

// ScheduleMenuDisable programa la desactivación del menú tras su
// tiempo de vida. Reprogramar sobre el mismo mensaje cancela el timer
// anterior.
func ScheduleMenuDisable(s *discordgo.Session, i *discordgo.Interaction, targetID string) {
	go func() {
		msg, err := s.InteractionResponse(i)
		if err != nil {
			logger.Warn(fmt.Sprintf("No se pudo localizar el mensaje del menú: %v", err), "ActionMenu")
			return
		}
		ScheduleMenuDisableForMessage(s, msg.ChannelID, msg.ID, targetID)
	}()
}

// ScheduleMenuDisableForMessage programa la desactivación sobre un
// mensaje ya conocido
func ScheduleMenuDisableForMessage(s *discordgo.Session, channelID, messageID, targetID string) {
	menuTimersMu.Lock()
	if t, ok := menuTimers[messageID]; ok {
		t.Stop()
	}
	menuTimers[messageID] = time.AfterFunc(menuLifetime, func() {
		menuTimersMu.Lock()
		delete(menuTimers, messageID)
		menuTimersMu.Unlock()

		disabled := ActionMenuComponents(targetID, true)
		_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         messageID,
			Channel:    channelID,
			Components: &disabled,
		})
		if err != nil {
			logger.Debug(fmt.Sprintf("No se pudo desactivar el menú %s: %v", messageID, err), "ActionMenu")
		}
	})
	menuTimersMu.Unlock()
}

// CancelMenuDisable cancela el timer de desactivación de un menú
func CancelMenuDisable(messageID string) {
	menuTimersMu.Lock()
	if t, ok := menuTimers[messageID]; ok {
		t.Stop()
		delete(menuTimers, messageID)
	}
	menuTimersMu.Unlock()
}
