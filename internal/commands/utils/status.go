package utils

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
)

// createStatusCommand crea el subcomando /utils status
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		statusHandler,
	)
}

func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		mqttStatus := "🔴 | Desconectado"
		if pub := mqtt.Get(); pub != nil && pub.IsConnected() {
			mqttStatus = "🟢 | En linea"
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Estado del Bot**\n"+
				"• Bot: 🟢 Online\n"+
				"• Base de datos: %s\n"+
				"• MQTT: %s\n"+
				"• Servidores: %d\n"+
				"• Uptime: %s",
			dbStatus,
			mqttStatus,
			ctx.Client.GuildCount(),
			ctx.Client.Uptime().Round(time.Second),
		))
	}()
	return nil
}
