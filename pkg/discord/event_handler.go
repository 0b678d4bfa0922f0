package discord

import (
	"sync"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler gestiona el registro de eventos con la sesión
type EventHandler struct {
	client *ExtendedClient
	events []interface{}
	mu     sync.Mutex
}

// NewEventHandler crea un EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{
		client: client,
		events: make([]interface{}, 0),
	}
}

// RegisterEvent añade un handler a la sesión de Discord
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.mu.Lock()
	eh.events = append(eh.events, handler)
	eh.mu.Unlock()
	logger.Debug("Evento registrado", "EventHandler")
}

// Firmas de los eventos que usa el bot

// ReadyHandler se llama cuando el bot está listo
type ReadyHandler func(s *discordgo.Session, r *discordgo.Ready)

// GuildCreateHandler se llama cuando el bot entra a un guild
type GuildCreateHandler func(s *discordgo.Session, g *discordgo.GuildCreate)

// GuildDeleteHandler se llama cuando el bot sale de un guild
type GuildDeleteHandler func(s *discordgo.Session, g *discordgo.GuildDelete)

// InteractionCreateHandler se llama en cada interacción
type InteractionCreateHandler func(s *discordgo.Session, i *discordgo.InteractionCreate)

// OnReady registra un handler de Ready
func (eh *EventHandler) OnReady(handler ReadyHandler) {
	eh.RegisterEvent(handler)
}

// OnGuildCreate registra un handler de GuildCreate
func (eh *EventHandler) OnGuildCreate(handler GuildCreateHandler) {
	eh.RegisterEvent(handler)
}

// OnGuildDelete registra un handler de GuildDelete
func (eh *EventHandler) OnGuildDelete(handler GuildDeleteHandler) {
	eh.RegisterEvent(handler)
}

// OnInteractionCreate registra un handler de InteractionCreate
func (eh *EventHandler) OnInteractionCreate(handler InteractionCreateHandler) {
	eh.RegisterEvent(handler)
}
