// Package main es la utilidad de sincronización de slash commands.
// Elimina los comandos obsoletos de Discord y registra los actuales.
//
// Uso:
//
//	go run cmd/sync-commands/main.go [opciones]
//
// Opciones:
//
//	-list         Lista los comandos registrados
//	-clean        Elimina todos los comandos sin registrar nuevos
//	-guild <id>   Opera sobre un servidor concreto en vez de global
//	-sync         Sincroniza (elimina obsoletos, registra actuales); por defecto
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/PancyStudios/PancyGuardGo/internal/adapter"
	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

func main() {
	listCmd := flag.Bool("list", false, "Lista los comandos registrados")
	cleanCmd := flag.Bool("clean", false, "Elimina todos los comandos sin registrar nuevos")
	guildID := flag.String("guild", "", "Servidor objetivo (vacío para global)")
	syncCmd := flag.Bool("sync", false, "Sincroniza los comandos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error cargando la configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook)
	defer log.Close()

	logger.System("Iniciando utilidad de sincronización de comandos...", "SyncCommands")

	client, err := discord.NewClient(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creando el cliente de Discord: %v", err), "SyncCommands")
		os.Exit(1)
	}

	if err := client.Session.Open(); err != nil {
		logger.Critical(fmt.Sprintf("Error conectando a Discord: %v", err), "SyncCommands")
		os.Exit(1)
	}
	defer client.Session.Close()

	logger.Success("Conectado a Discord", "SyncCommands")

	// Solo se necesitan las definiciones de comandos; los handlers no
	// se ejecutan desde esta utilidad
	service := moderation.NewService(
		moderation.NewMemoryLedger(),
		moderation.NewMemorySettings(),
		adapter.NewDiscordEffector(client.Session),
		nil,
	)
	commands.RegisterAll(client, service)

	switch {
	case *listCmd:
		listCommands(client, *guildID)
	case *cleanCmd:
		cleanCommands(client, *guildID)
	case *syncCmd:
		syncCommands(client, *guildID)
	default:
		syncCommands(client, *guildID)
	}

	logger.Success("Operación completada exitosamente", "SyncCommands")
}

// listCommands lista los comandos registrados en Discord
func listCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("📋 Listando comandos registrados...", "SyncCommands")

	var cmds []*discordgo.ApplicationCommand
	var err error

	if guildID != "" {
		cmds, err = client.CommandHandler.ListGuildCommands(guildID)
	} else {
		cmds, err = client.CommandHandler.ListGlobalCommands()
	}

	if err != nil {
		logger.Error(fmt.Sprintf("Error obteniendo comandos: %v", err), "SyncCommands")
		return
	}

	if len(cmds) == 0 {
		logger.Info("No hay comandos registrados", "SyncCommands")
		return
	}

	logger.Info(fmt.Sprintf("Comandos encontrados: %d", len(cmds)), "SyncCommands")
	for i, cmd := range cmds {
		logger.Info(fmt.Sprintf("  %d. /%s - %s (ID: %s)", i+1, cmd.Name, cmd.Description, cmd.ID), "SyncCommands")
	}
}

// cleanCommands elimina todos los comandos de Discord
func cleanCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("🧹 Eliminando todos los comandos...", "SyncCommands")

	var err error
	if guildID != "" {
		err = client.CommandHandler.UnregisterGuildCommands(guildID)
	} else {
		err = client.CommandHandler.UnregisterCommands()
	}

	if err != nil {
		logger.Error(fmt.Sprintf("Error eliminando comandos: %v", err), "SyncCommands")
		return
	}

	logger.Success("✅ Todos los comandos han sido eliminados", "SyncCommands")
}

// syncCommands elimina los comandos obsoletos y registra los actuales
func syncCommands(client *discord.ExtendedClient, guildID string) {
	logger.Info("🔄 Sincronizando comandos...", "SyncCommands")

	if guildID != "" {
		// Los comandos de guild solo se limpian; el bot principal los
		// registra al arrancar
		if err := client.CommandHandler.UnregisterGuildCommands(guildID); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando comandos de guild: %v", err), "SyncCommands")
			return
		}
		logger.Success("✅ Comandos de guild eliminados. El bot principal los registrará de nuevo.", "SyncCommands")
		return
	}

	if err := client.CommandHandler.SyncCommands(); err != nil {
		logger.Error(fmt.Sprintf("Error sincronizando comandos: %v", err), "SyncCommands")
		return
	}
	logger.Success("✅ Comandos sincronizados correctamente", "SyncCommands")
}
