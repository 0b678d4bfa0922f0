// Package events registra los eventos del bot: conexión, guilds y la
// capa de interacción del panel de moderación (botones y modales).
package events

import (
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
)

// service es el orquestador que ejecuta las acciones del panel
var service *moderation.Service

// RegisterAll registra todos los eventos con el cliente de Discord
func RegisterAll(client *discord.ExtendedClient, svc *moderation.Service) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	service = svc

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)
	RegisterInteractionEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
