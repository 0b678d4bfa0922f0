package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEvent es el registro de una acción ejecutada, listo para
// espejarse en el canal de logs, MQTT y el feed web.
type AuditEvent struct {
	ID          string     `json:"id"`
	GuildID     string     `json:"guildId"`
	Kind        ActionKind `json:"kind"`
	TargetID    string     `json:"targetId"`
	ModeratorID string     `json:"moderatorId"`
	Reason      string     `json:"reason"`
	Duration    string     `json:"duration,omitempty"`
	WarnCount   int        `json:"warnCount,omitempty"`
	MaxWarnings int        `json:"maxWarnings,omitempty"`
	AutoBan     bool       `json:"autoBan,omitempty"`
	Timestamp   int64      `json:"timestamp"`
}

// NewAuditEvent construye un evento con id propio y timestamp actual
func NewAuditEvent(guildID string, kind ActionKind, targetID, moderatorID, reason string) AuditEvent {
	return AuditEvent{
		ID:          uuid.NewString(),
		GuildID:     guildID,
		Kind:        kind,
		TargetID:    targetID,
		ModeratorID: moderatorID,
		Reason:      reason,
		Timestamp:   time.Now().UnixMilli(),
	}
}

// Notifier espeja eventos de auditoría hacia el exterior. Es
// best-effort: las implementaciones registran sus fallos y los tragan,
// nunca interrumpen la acción que los originó.
type Notifier interface {
	Notify(ctx context.Context, event AuditEvent)
}

// MultiNotifier fan-out a varios notifiers en orden
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event AuditEvent) {
	for _, n := range m {
		n.Notify(ctx, event)
	}
}

// NopNotifier descarta todos los eventos. Útil en tests.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, AuditEvent) {}
