// Package mod agrupa los comandos de moderación bajo /mod.
package mod

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
)

// service es el orquestador compartido por los comandos del grupo
var service *moderation.Service

// Setup inyecta el orquestador de moderación
func Setup(svc *moderation.Service) {
	service = svc
}

// RegisterModCommands registra el grupo /mod con sus subcomandos
func RegisterModCommands(client *discord.ExtendedClient) {
	group := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		createActionCommand(),
		createSettingsCommand(),
		createWarningsCommand(),
	)
	client.CommandHandler.AddGlobalCommand(group)

	logger.Debug("Comandos de moderación registrados", "Commands")
}
