package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
)

// createPingCommand crea el subcomando /utils ping
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Comprueba la latencia del bot y de la base de datos",
		"utils",
		pingHandler,
	)
}

// dbLatencyLine describe la latencia de la base de datos, o su ausencia
// cuando el bot corre con stores en memoria
func dbLatencyLine(db *database.Database) string {
	if db == nil {
		return "📀 Base de datos: sin conexión"
	}
	rtt, err := db.Ping()
	if err != nil {
		return "📀 Base de datos: sin conexión"
	}
	return fmt.Sprintf("📀 Base de datos: %dms", rtt.Milliseconds())
}

func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		gateway := ctx.Client.Session.HeartbeatLatency().Milliseconds()
		ctx.Reply(fmt.Sprintf("🏓 Pong!\n🌐 Gateway: %dms\n%s", gateway, dbLatencyLine(database.Get())))
	}()
	return nil
}
