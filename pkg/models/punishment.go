package models

// PunishmentKind es el tipo de castigo almacenado en el historial
type PunishmentKind string

const (
	PunishmentBan  PunishmentKind = "ban"
	PunishmentWarn PunishmentKind = "warn"
	PunishmentMute PunishmentKind = "mute"
)

// IsValid reports whether the kind is one of the stored punishment kinds.
// Unban/unwarn/unmute are removals, never stored.
func (k PunishmentKind) IsValid() bool {
	switch k {
	case PunishmentBan, PunishmentWarn, PunishmentMute:
		return true
	}
	return false
}

// DefaultReason se usa cuando el moderador no especifica una razón
const DefaultReason = "No especificada"

// PunishmentRecord representa una entrada del historial de castigos.
// Los registros son inmutables una vez creados; solo pueden borrarse.
type PunishmentRecord struct {
	ID        int64          `bson:"id" json:"id"`
	UserID    string         `bson:"userId" json:"userId"`
	Kind      PunishmentKind `bson:"kind" json:"kind"`
	Reason    string         `bson:"reason" json:"reason"`
	Timestamp int64          `bson:"timestamp" json:"timestamp"` // ms desde epoch, asignado por el store
}
