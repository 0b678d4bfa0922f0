package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

func TestEvaluateWarnBelowLimit(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	settings := models.DefaultGuildSettings("guild1")

	for i := 0; i < settings.MaxWarnings-1; i++ {
		if _, err := ledger.Append(ctx, "user1", models.PunishmentWarn, "spam"); err != nil {
			t.Fatalf("Append devolvió error: %v", err)
		}
	}

	eval, err := EvaluateWarn(ctx, ledger, "user1", &settings)
	if err != nil {
		t.Fatalf("EvaluateWarn devolvió error: %v", err)
	}
	if eval.CurrentCount != settings.MaxWarnings-1 {
		t.Errorf("CurrentCount = %v, want %v", eval.CurrentCount, settings.MaxWarnings-1)
	}
	if eval.AutoBanTriggered {
		t.Error("AutoBanTriggered = true por debajo del límite")
	}
}

func TestEvaluateWarnAtLimit(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	settings := models.DefaultGuildSettings("guild1")

	for i := 0; i < settings.MaxWarnings; i++ {
		if _, err := ledger.Append(ctx, "user1", models.PunishmentWarn, "spam"); err != nil {
			t.Fatalf("Append devolvió error: %v", err)
		}
	}

	eval, err := EvaluateWarn(ctx, ledger, "user1", &settings)
	if err != nil {
		t.Fatalf("EvaluateWarn devolvió error: %v", err)
	}
	if !eval.AutoBanTriggered {
		t.Error("AutoBanTriggered = false al alcanzar el límite")
	}
}

func TestEvaluateWarnIgnoresExpired(t *testing.T) {
	ctx := context.Background()
	ledger := NewMemoryLedger()
	settings := models.DefaultGuildSettings("guild1")
	settings.MaxWarnings = 2

	old, err := ledger.Append(ctx, "user1", models.PunishmentWarn, "viejo")
	if err != nil {
		t.Fatalf("Append devolvió error: %v", err)
	}
	ledger.backdateWarn(old.ID, time.Now().Add(-8*24*time.Hour).UnixMilli())

	if _, err := ledger.Append(ctx, "user1", models.PunishmentWarn, "reciente"); err != nil {
		t.Fatalf("Append devolvió error: %v", err)
	}

	eval, err := EvaluateWarn(ctx, ledger, "user1", &settings)
	if err != nil {
		t.Fatalf("EvaluateWarn devolvió error: %v", err)
	}
	if eval.CurrentCount != 1 {
		t.Errorf("CurrentCount = %v, want 1 (la advertencia expirada no cuenta)", eval.CurrentCount)
	}
	if eval.AutoBanTriggered {
		t.Error("AutoBanTriggered = true con una sola advertencia activa")
	}
}

func TestIsAuthorized(t *testing.T) {
	settings := models.DefaultGuildSettings("guild1")
	settings.WhitelistUsers = []string{"mod1"}
	settings.WhitelistRoles = []string{"role-staff"}

	cases := []struct {
		name  string
		actor models.Actor
		want  bool
	}{
		{"admin", models.Actor{ID: "x", IsAdmin: true}, true},
		{"usuario en whitelist", models.Actor{ID: "mod1"}, true},
		{"rol en whitelist", models.Actor{ID: "y", RoleIDs: []string{"role-staff", "otro"}}, true},
		{"sin permisos", models.Actor{ID: "z", RoleIDs: []string{"otro"}}, false},
	}
	for _, c := range cases {
		if got := IsAuthorized(c.actor, &settings); got != c.want {
			t.Errorf("%s: IsAuthorized = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsAuthorizedEmptyWhitelists(t *testing.T) {
	settings := models.DefaultGuildSettings("guild1")
	if IsAuthorized(models.Actor{ID: "u"}, &settings) {
		t.Error("IsAuthorized = true sin admin ni whitelist")
	}
}
