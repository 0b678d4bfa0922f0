// Package dev agrupa los comandos de desarrollo, registrados solo en
// el servidor de desarrollo.
package dev

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Register registra el grupo /dev en el servidor de desarrollo
func Register(client *discord.ExtendedClient) {
	evalCmd := CreateEvalCommand()

	devGroup := &discordgo.ApplicationCommand{
		Name:        "dev",
		Description: "Comandos de desarrollo",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        evalCmd.Name,
				Description: evalCmd.Description,
				Options:     evalCmd.Options,
			},
		},
	}

	client.Commands.Set("dev.eval", evalCmd)
	client.CommandHandler.AddDevCommand(devGroup)
}
