package moderation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// MemoryLedger es una implementación en memoria de LedgerStore con la
// misma semántica que la versión Mongo. Se usa como doble en tests y en
// despliegues efímeros sin base de datos.
type MemoryLedger struct {
	mu      sync.RWMutex
	nextID  int64
	records []models.PunishmentRecord
}

// NewMemoryLedger crea un ledger vacío
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{nextID: 1}
}

func (m *MemoryLedger) Append(_ context.Context, userID string, kind models.PunishmentKind, reason string) (*models.PunishmentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reason == "" {
		reason = models.DefaultReason
	}
	rec := models.PunishmentRecord{
		ID:        m.nextID,
		UserID:    userID,
		Kind:      kind,
		Reason:    reason,
		Timestamp: time.Now().UnixMilli(),
	}
	m.nextID++
	m.records = append(m.records, rec)
	return &rec, nil
}

func (m *MemoryLedger) History(_ context.Context, userID string) ([]models.PunishmentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.PunishmentRecord
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp > out[j].Timestamp
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryLedger) ActiveWarnCount(_ context.Context, userID string, now time.Time, window time.Duration) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cutoff := now.UnixMilli() - window.Milliseconds()
	count := 0
	for _, r := range m.records {
		if r.UserID == userID && r.Kind == models.PunishmentWarn && r.Timestamp > cutoff {
			count++
		}
	}
	return count, nil
}

func (m *MemoryLedger) RemoveMostRecentWarn(_ context.Context, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	victim := -1
	for i, r := range m.records {
		if r.UserID != userID || r.Kind != models.PunishmentWarn {
			continue
		}
		if victim == -1 {
			victim = i
			continue
		}
		v := m.records[victim]
		if r.Timestamp > v.Timestamp || (r.Timestamp == v.Timestamp && r.ID > v.ID) {
			victim = i
		}
	}
	if victim == -1 {
		return false, nil
	}
	m.records = append(m.records[:victim], m.records[victim+1:]...)
	return true, nil
}

func (m *MemoryLedger) ClearWarns(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	for _, r := range m.records {
		if r.UserID == userID && r.Kind == models.PunishmentWarn {
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return nil
}

// backdateWarn mueve el timestamp de un registro existente. Solo para
// tests de la ventana de expiración.
func (m *MemoryLedger) backdateWarn(id int64, ts int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Timestamp = ts
		}
	}
}

// MemorySettings es una implementación en memoria de SettingsStore
type MemorySettings struct {
	mu     sync.RWMutex
	guilds map[string]models.GuildSettings
}

// NewMemorySettings crea un store de configuración vacío
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{guilds: make(map[string]models.GuildSettings)}
}

func (m *MemorySettings) Get(_ context.Context, guildID string) (*models.GuildSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.guilds[guildID]
	if !ok {
		s = models.DefaultGuildSettings(guildID)
		m.guilds[guildID] = s
	}
	out := s
	out.WhitelistRoles = append([]string{}, s.WhitelistRoles...)
	out.WhitelistUsers = append([]string{}, s.WhitelistUsers...)
	return &out, nil
}

func (m *MemorySettings) Update(_ context.Context, guildID string, patch models.SettingsPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.guilds[guildID]
	if !ok {
		s = models.DefaultGuildSettings(guildID)
	}
	m.guilds[guildID] = patch.Apply(s)
	return nil
}
