// Package mqtt publica los eventos de auditoría de moderación en un
// broker MQTT para que otros servicios de PancyStudios los consuman.
package mqtt

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// AuditMessage es el sobre que viaja por el broker
type AuditMessage struct {
	CorrelationID string                `json:"correlationId"`
	Source        string                `json:"source"`
	Event         moderation.AuditEvent `json:"event"`
}

// Publisher publica eventos de auditoría en un topic fijo
type Publisher struct {
	client   mqtt.Client
	topic    string
	clientID string
}

var (
	publisher *Publisher
	once      sync.Once
)

// Init inicializa el publisher global y conecta al broker
func Init(host, port, username, password, clientID, topic string) *Publisher {
	once.Do(func() {
		publisher = NewPublisher(host, port, username, password, clientID, topic)
	})
	return publisher
}

// Get devuelve el publisher global
func Get() *Publisher {
	return publisher
}

// NewPublisher crea un Publisher y abre la conexión. La conexión es
// best-effort: el bot funciona igual si el broker no está disponible.
func NewPublisher(host, port, username, password, clientID, topic string) *Publisher {
	p := &Publisher{
		topic:    topic,
		clientID: clientID,
	}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.NewString())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Conectado al broker MQTT como %s", clientID), "MQTT")
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("Conexión MQTT perdida: %v", err), "MQTT")
		})

	p.client = mqtt.NewClient(opts)

	token := p.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error de conexión MQTT: %v", token.Error()), "MQTT")
	}

	return p
}

// Destroy cierra la conexión con el broker
func (p *Publisher) Destroy() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
		logger.System("Conexión MQTT cerrada exitosamente.", "MQTT")
	}
}

// IsConnected indica si hay conexión con el broker
func (p *Publisher) IsConnected() bool {
	return p.client != nil && p.client.IsConnected()
}

// Notify implementa moderation.Notifier: publica el evento y traga
// cualquier fallo del broker.
func (p *Publisher) Notify(_ context.Context, event moderation.AuditEvent) {
	if !p.IsConnected() {
		return
	}

	msg := AuditMessage{
		CorrelationID: uuid.NewString(),
		Source:        p.clientID,
		Event:         event,
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo serializar el evento de auditoría: %v", err), "MQTT")
		return
	}

	token := p.client.Publish(p.topic, 0, false, jsonData)
	token.Wait()
	if token.Error() != nil {
		logger.Error(fmt.Sprintf("Error publicando evento de auditoría: %v", token.Error()), "MQTT")
	}
}
