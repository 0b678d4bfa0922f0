// Package utils agrupa los comandos de utilidad bajo /utils.
package utils

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
)

// RegisterUtilCommands registra el grupo /utils con sus subcomandos
func RegisterUtilCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Comandos de utilidad",
		createPingCommand(),
		createStatusCommand(),
		createHelpCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)

	logger.Debug("Comandos de utilidad registrados", "Commands")
}
