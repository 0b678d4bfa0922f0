package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestMemoryLedgerAppend(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	rec, err := ledger.Append(ctx, "user1", models.PunishmentWarn, "spam")
	if err != nil {
		t.Fatalf("Append devolvió error: %v", err)
	}
	if rec.ID != 1 {
		t.Errorf("ID = %v, want 1", rec.ID)
	}
	if rec.Kind != models.PunishmentWarn {
		t.Errorf("Kind = %v, want %v", rec.Kind, models.PunishmentWarn)
	}

	rec2, err := ledger.Append(ctx, "user1", models.PunishmentMute, "")
	if err != nil {
		t.Fatalf("Append devolvió error: %v", err)
	}
	if rec2.ID != 2 {
		t.Errorf("ID = %v, want 2 (los ids son crecientes)", rec2.ID)
	}
	if rec2.Reason != models.DefaultReason {
		t.Errorf("Reason = %v, want %v", rec2.Reason, models.DefaultReason)
	}
}

func TestMemoryLedgerHistoryOrder(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	a, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "a")
	b, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "b")
	ledger.Append(ctx, "otro", models.PunishmentBan, "ajeno")

	// Mismo timestamp: el id desempata
	now := time.Now().UnixMilli()
	ledger.backdateWarn(a.ID, now)
	ledger.backdateWarn(b.ID, now)

	hist, err := ledger.History(ctx, "user1")
	if err != nil {
		t.Fatalf("History devolvió error: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("len(History) = %v, want 2", len(hist))
	}
	if hist[0].ID != b.ID || hist[1].ID != a.ID {
		t.Errorf("orden = [%v %v], want [%v %v] (más reciente primero)", hist[0].ID, hist[1].ID, b.ID, a.ID)
	}
}

func TestMemoryLedgerActiveWarnCountWindow(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	now := time.Now()

	inside, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "dentro")
	boundary, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "límite")
	outside, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "fuera")
	ledger.Append(ctx, "user1", models.PunishmentMute, "no es warn")

	cutoff := now.UnixMilli() - WarnExpiry.Milliseconds()
	ledger.backdateWarn(inside.ID, cutoff+1)
	ledger.backdateWarn(boundary.ID, cutoff)
	ledger.backdateWarn(outside.ID, cutoff-1)

	count, err := ledger.ActiveWarnCount(ctx, "user1", now, WarnExpiry)
	if err != nil {
		t.Fatalf("ActiveWarnCount devolvió error: %v", err)
	}
	// El corte es estricto: un timestamp exactamente en el límite expira
	if count != 1 {
		t.Errorf("ActiveWarnCount = %v, want 1", count)
	}
}

func TestMemoryLedgerRemoveMostRecentWarn(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	w1, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "primera")
	w2, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "segunda")
	w3, _ := ledger.Append(ctx, "user1", models.PunishmentWarn, "tercera")

	// Empate de timestamps: debe caer la de mayor id
	now := time.Now().UnixMilli()
	ledger.backdateWarn(w1.ID, now)
	ledger.backdateWarn(w2.ID, now)
	ledger.backdateWarn(w3.ID, now)

	removed, err := ledger.RemoveMostRecentWarn(ctx, "user1")
	if err != nil {
		t.Fatalf("RemoveMostRecentWarn devolvió error: %v", err)
	}
	if !removed {
		t.Fatal("RemoveMostRecentWarn = false, want true")
	}

	hist, _ := ledger.History(ctx, "user1")
	for _, r := range hist {
		if r.ID == w3.ID {
			t.Error("la advertencia más reciente sigue en el historial")
		}
	}
	if len(hist) != 2 {
		t.Errorf("len(History) = %v, want 2", len(hist))
	}
}

func TestMemoryLedgerRemoveMostRecentWarnEmpty(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	ledger.Append(ctx, "user1", models.PunishmentBan, "no es warn")

	removed, err := ledger.RemoveMostRecentWarn(ctx, "user1")
	if err != nil {
		t.Fatalf("RemoveMostRecentWarn devolvió error: %v", err)
	}
	if removed {
		t.Error("RemoveMostRecentWarn = true sin advertencias")
	}
}

func TestMemoryLedgerClearWarns(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()

	ledger.Append(ctx, "user1", models.PunishmentWarn, "uno")
	ledger.Append(ctx, "user1", models.PunishmentWarn, "dos")
	ledger.Append(ctx, "user1", models.PunishmentBan, "se conserva")
	ledger.Append(ctx, "otro", models.PunishmentWarn, "ajeno")

	if err := ledger.ClearWarns(ctx, "user1"); err != nil {
		t.Fatalf("ClearWarns devolvió error: %v", err)
	}

	count, _ := ledger.ActiveWarnCount(ctx, "user1", time.Now(), WarnExpiry)
	if count != 0 {
		t.Errorf("ActiveWarnCount tras ClearWarns = %v, want 0", count)
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 1 || hist[0].Kind != models.PunishmentBan {
		t.Error("ClearWarns tocó registros que no son advertencias")
	}

	otherCount, _ := ledger.ActiveWarnCount(ctx, "otro", time.Now(), WarnExpiry)
	if otherCount != 1 {
		t.Error("ClearWarns tocó advertencias de otro usuario")
	}
}

func TestMemorySettingsGetCreatesDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()

	s, err := store.Get(ctx, "guild1")
	if err != nil {
		t.Fatalf("Get devolvió error: %v", err)
	}
	if s.GuildID != "guild1" {
		t.Errorf("GuildID = %v, want guild1", s.GuildID)
	}
	if s.MaxWarnings != models.DefaultMaxWarnings {
		t.Errorf("MaxWarnings = %v, want %v", s.MaxWarnings, models.DefaultMaxWarnings)
	}
	if s.WhitelistRoles == nil || s.WhitelistUsers == nil {
		t.Error("las whitelists por defecto deben ser listas vacías, no nil")
	}

	// La segunda lectura devuelve el mismo documento, no uno nuevo
	again, _ := store.Get(ctx, "guild1")
	if again.MaxWarnings != s.MaxWarnings {
		t.Error("Get no es idempotente")
	}
}

func TestMemorySettingsUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()

	banRole := "role-ban"
	max := 5
	roles := []string{"role-staff"}
	err := store.Update(ctx, "guild1", models.SettingsPatch{
		BanRoleID:      &banRole,
		MaxWarnings:    &max,
		WhitelistRoles: &roles,
	})
	if err != nil {
		t.Fatalf("Update devolvió error: %v", err)
	}

	s, _ := store.Get(ctx, "guild1")
	if s.BanRoleID != "role-ban" {
		t.Errorf("BanRoleID = %v, want role-ban", s.BanRoleID)
	}
	if s.MaxWarnings != 5 {
		t.Errorf("MaxWarnings = %v, want 5", s.MaxWarnings)
	}
	if len(s.WhitelistRoles) != 1 || s.WhitelistRoles[0] != "role-staff" {
		t.Errorf("WhitelistRoles = %v, want [role-staff]", s.WhitelistRoles)
	}

	// Un patch parcial conserva lo no tocado
	member := "role-member"
	store.Update(ctx, "guild1", models.SettingsPatch{MemberRoleID: &member})
	s, _ = store.Get(ctx, "guild1")
	if s.BanRoleID != "role-ban" || s.MemberRoleID != "role-member" || s.MaxWarnings != 5 {
		t.Error("el patch parcial pisó campos que no incluía")
	}
}

func TestMemorySettingsGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()

	roles := []string{"role-a"}
	store.Update(ctx, "guild1", models.SettingsPatch{WhitelistRoles: &roles})

	s, _ := store.Get(ctx, "guild1")
	s.WhitelistRoles[0] = "mutado"

	fresh, _ := store.Get(ctx, "guild1")
	if fresh.WhitelistRoles[0] != "role-a" {
		t.Error("mutar el resultado de Get afecta al store")
	}
}
