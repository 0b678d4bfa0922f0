// Package commands registra todos los comandos del bot, organizados en
// subdirectorios por categoría (mod, utils, dev).
package commands

import (
	"github.com/PancyStudios/PancyGuardGo/internal/commands/dev"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/mod"
	"github.com/PancyStudios/PancyGuardGo/internal/commands/utils"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
)

// RegisterAll registra todos los comandos con el cliente de Discord
func RegisterAll(client *discord.ExtendedClient, service *moderation.Service) {
	mod.Setup(service)

	// Moderación (/mod action, /mod settings, /mod warnings)
	mod.RegisterModCommands(client)

	// Utilidad (/utils ping, /utils status, /utils help)
	utils.RegisterUtilCommands(client)

	// Desarrollo (/dev eval, solo en el servidor de desarrollo)
	dev.Register(client)
}
