package moderation

import (
	"fmt"
	"strings"
	"time"
)

// ActionKind identifica una acción de moderación. Los identificadores
// opacos de la UI se decodifican a este enum una sola vez en la
// frontera; el núcleo nunca parsea strings de componentes.
type ActionKind string

const (
	ActionBan    ActionKind = "ban"
	ActionWarn   ActionKind = "warn"
	ActionMute   ActionKind = "mute"
	ActionUnban  ActionKind = "unban"
	ActionUnwarn ActionKind = "unwarn"
	ActionUnmute ActionKind = "unmute"
)

// actionKinds es la tabla cerrada de acciones válidas
var actionKinds = map[ActionKind]bool{
	ActionBan:    true,
	ActionWarn:   true,
	ActionMute:   true,
	ActionUnban:  true,
	ActionUnwarn: true,
	ActionUnmute: true,
}

// IsValid reports whether k is a known action kind.
func (k ActionKind) IsValid() bool {
	return actionKinds[k]
}

// IsRemoval reports whether the action lifts a punishment instead of
// applying one.
func (k ActionKind) IsRemoval() bool {
	switch k {
	case ActionUnban, ActionUnwarn, ActionUnmute:
		return true
	}
	return false
}

// ActionRequest es la intención de moderación ya tipada que recibe el
// orquestador: acción + objetivo + razón + duración opcional (texto
// libre; solo mute la convierte en tiempo real).
type ActionRequest struct {
	Kind     ActionKind
	GuildID  string
	TargetID string
	Reason   string
	Duration string
}

const customIDSeparator = ":"

// EncodeCustomID serializa una acción y su objetivo en un custom id de
// componente. El id de usuario de Discord es numérico, así que el
// separador no puede aparecer dentro del objetivo.
func EncodeCustomID(kind ActionKind, targetID string) string {
	return string(kind) + customIDSeparator + targetID
}

// DecodeCustomID recupera la acción y el objetivo de un custom id
// producido por EncodeCustomID. Rechaza acciones fuera de la tabla.
func DecodeCustomID(customID string) (ActionKind, string, error) {
	kindStr, targetID, ok := strings.Cut(customID, customIDSeparator)
	if !ok || targetID == "" {
		return "", "", fmt.Errorf("custom id malformado: %q", customID)
	}
	kind := ActionKind(kindStr)
	if !kind.IsValid() {
		return "", "", fmt.Errorf("acción desconocida: %q", kindStr)
	}
	return kind, targetID, nil
}

// Límites de duración de mute. Discord no acepta timeouts de más de 28
// días.
const (
	DefaultMuteDuration = time.Hour
	MaxMuteDuration     = 28 * 24 * time.Hour
)

// ParseMuteDuration convierte el texto de duración del modal ("30m",
// "2h", "1d") en una duración real. Texto vacío o inválido cae en la
// duración por defecto de 1 hora; el resultado se recorta al máximo de
// la plataforma.
func ParseMuteDuration(text string) time.Duration {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return DefaultMuteDuration
	}

	// time.ParseDuration no conoce el sufijo de días
	if n, ok := strings.CutSuffix(text, "d"); ok {
		text = n + "h"
		d, err := time.ParseDuration(text)
		if err != nil || d <= 0 {
			return DefaultMuteDuration
		}
		d *= 24
		if d > MaxMuteDuration {
			return MaxMuteDuration
		}
		return d
	}

	d, err := time.ParseDuration(text)
	if err != nil || d <= 0 {
		return DefaultMuteDuration
	}
	if d > MaxMuteDuration {
		return MaxMuteDuration
	}
	return d
}
