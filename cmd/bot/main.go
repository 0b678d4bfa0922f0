// Package main es el punto de entrada de PancyGuard Go. Inicializa
// todos los sistemas y arranca el bot de Discord.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyGuardGo/internal/adapter"
	"github.com/PancyStudios/PancyGuardGo/internal/commands"
	"github.com/PancyStudios/PancyGuardGo/internal/events"
	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/PancyStudios/PancyGuardGo/pkg/errors"
	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/PancyStudios/PancyGuardGo/pkg/mqtt"
	"github.com/PancyStudios/PancyGuardGo/pkg/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error cargando la configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(cfg.ErrorWebhook)
	defer log.Close()

	logger.System("Iniciando PancyGuard Go...", "Main")

	// Manejador global de errores: apaga el bot si se desborda
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})

	// Base de datos; sin ella se usan stores en memoria (despliegue
	// efímero: el historial no sobrevive al reinicio)
	var ledger moderation.LedgerStore
	var settings moderation.SettingsStore

	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error conectando a la base de datos: %v", err), "Main")
		logger.Warn("Usando stores en memoria: las sanciones no persistirán", "Main")
		ledger = moderation.NewMemoryLedger()
		settings = moderation.NewMemorySettings()
	} else {
		defer func() { _ = db.Disconnect() }()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := db.EnsureIndexes(ctx); err != nil {
			logger.Warn(fmt.Sprintf("Error creando índices: %v", err), "Main")
		}
		cancel()

		ledger = database.NewMongoLedger(db)
		settings = database.NewMongoSettings(db)
	}

	// MQTT: espejo de auditoría para otros servicios
	mqttClientID := "pancyguard"
	if !cfg.IsProd() {
		mqttClientID = "pancyguard_canary"
	}
	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
		cfg.MQTTTopic,
	)
	defer mqttClient.Destroy()

	// Servidor web: estado y feed de auditoría
	webServer := web.Init()
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creando el cliente de Discord: %v", err), "Main")
		os.Exit(1)
	}

	// Núcleo de moderación: stores + efectos + fan-out de auditoría
	notifier := moderation.MultiNotifier{
		adapter.NewChannelNotifier(discordClient.Session, settings),
		mqttClient,
		webServer.Feed(),
	}
	service := moderation.NewService(
		ledger,
		settings,
		adapter.NewDiscordEffector(discordClient.Session),
		notifier,
	)

	commands.RegisterAll(discordClient, service)
	events.RegisterAll(discordClient, service)

	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error arrancando el cliente de Discord: %v", err), "Main")
		os.Exit(1)
	}
	defer func() { _ = discordClient.Stop() }()

	logger.Success("PancyGuard Go iniciado correctamente!", "Main")

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando PancyGuard Go...", "Main")
}
