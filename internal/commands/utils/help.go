package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createHelpCommand crea el subcomando /utils help
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra los comandos disponibles",
		"utils",
		helpHandler,
	)
}

func helpHandler(ctx *discord.CommandContext) error {
	embed := &discordgo.MessageEmbed{
		Title:       "❓ - Ayuda de PancyGuard",
		Description: "Bot de moderación de PancyStudios. Comandos disponibles:",
		Color:       0x3498DB,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "🛡️ Moderación",
				Value: "`/mod action` — Panel de acciones sobre un usuario\n`/mod warnings` — Historial de sanciones\n`/mod settings` — Configuración del servidor",
			},
			{
				Name:  "🔧 Utilidad",
				Value: "`/utils ping` — Latencia del bot\n`/utils status` — Estado del bot\n`/utils help` — Esta ayuda",
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 - PancyGuard | Developed by PancyStudios",
		},
	}
	return ctx.ReplyEphemeralEmbed(embed)
}
