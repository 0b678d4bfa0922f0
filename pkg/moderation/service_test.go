package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// fakeEffector registra las llamadas de efectos de plataforma
type fakeEffector struct {
	members      map[string]bool
	quarantined  []string
	restored     []string
	timedOut     map[string]time.Time
	clearedTimes []string
	failNext     error
}

func newFakeEffector(members ...string) *fakeEffector {
	f := &fakeEffector{
		members:  make(map[string]bool),
		timedOut: make(map[string]time.Time),
	}
	for _, m := range members {
		f.members[m] = true
	}
	return f
}

func (f *fakeEffector) Quarantine(_ context.Context, _, userID, _ string) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.quarantined = append(f.quarantined, userID)
	return nil
}

func (f *fakeEffector) Restore(_ context.Context, _, userID, _, _ string) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.restored = append(f.restored, userID)
	return nil
}

func (f *fakeEffector) Timeout(_ context.Context, _, userID string, until time.Time) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.timedOut[userID] = until
	return nil
}

func (f *fakeEffector) ClearTimeout(_ context.Context, _, userID string) error {
	f.clearedTimes = append(f.clearedTimes, userID)
	return nil
}

func (f *fakeEffector) IsMember(_ context.Context, _, userID string) bool {
	return f.members[userID]
}

// recordingNotifier acumula los eventos notificados
type recordingNotifier struct {
	events []AuditEvent
}

func (r *recordingNotifier) Notify(_ context.Context, event AuditEvent) {
	r.events = append(r.events, event)
}

func newTestService(effector Effector, notifier Notifier) (*Service, *MemoryLedger, *MemorySettings) {
	ledger := NewMemoryLedger()
	settings := NewMemorySettings()
	return NewService(ledger, settings, effector, notifier), ledger, settings
}

func configureGuild(t *testing.T, store *MemorySettings, guildID string) {
	t.Helper()
	banRole := "role-ban"
	memberRole := "role-member"
	err := store.Update(context.Background(), guildID, models.SettingsPatch{
		BanRoleID:    &banRole,
		MemberRoleID: &memberRole,
	})
	if err != nil {
		t.Fatalf("Update devolvió error: %v", err)
	}
}

var admin = models.Actor{ID: "mod1", IsAdmin: true}

func TestExecuteUnauthorized(t *testing.T) {
	ctx := context.Background()
	svc, ledger, _ := newTestService(newFakeEffector("user1"), nil)

	req := ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1", Reason: "spam"}
	_, err := svc.Execute(ctx, models.Actor{ID: "intruso"}, req)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 0 {
		t.Error("el rechazo de permisos escribió en el ledger")
	}
}

func TestExecuteInvalidKind(t *testing.T) {
	svc, _, _ := newTestService(newFakeEffector(), nil)
	_, err := svc.Execute(context.Background(), admin, ActionRequest{Kind: "kick", GuildID: "g1", TargetID: "u"})
	if err == nil {
		t.Fatal("Execute aceptó una acción desconocida")
	}
}

func TestExecuteBan(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	notifier := &recordingNotifier{}
	svc, ledger, settings := newTestService(effector, notifier)
	configureGuild(t, settings, "g1")

	// Advertencias previas que el ban debe limpiar
	ledger.Append(ctx, "user1", models.PunishmentWarn, "previa")

	res, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionBan, GuildID: "g1", TargetID: "user1", Reason: "grave"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}

	if len(effector.quarantined) != 1 || effector.quarantined[0] != "user1" {
		t.Error("el ban no aplicó la cuarentena")
	}

	count, _ := ledger.ActiveWarnCount(ctx, "user1", time.Now(), WarnExpiry)
	if count != 0 {
		t.Errorf("advertencias activas tras el ban = %v, want 0", count)
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 1 || hist[0].Kind != models.PunishmentBan {
		t.Errorf("el historial tras el ban = %v, want solo el ban", hist)
	}
	if hist[0].Reason != "grave" {
		t.Errorf("Reason = %v, want grave", hist[0].Reason)
	}

	if res.Event.Kind != ActionBan || res.Event.TargetID != "user1" || res.Event.ModeratorID != "mod1" {
		t.Error("el evento de auditoría no refleja la acción")
	}
	if len(notifier.events) != 1 {
		t.Errorf("eventos notificados = %v, want 1", len(notifier.events))
	}
}

func TestExecuteBanUnconfigured(t *testing.T) {
	svc, _, _ := newTestService(newFakeEffector("user1"), nil)

	_, err := svc.Execute(context.Background(), admin, ActionRequest{Kind: ActionBan, GuildID: "g1", TargetID: "user1"})
	if !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("err = %v, want ErrUnconfigured", err)
	}
}

func TestExecuteBanTargetMissing(t *testing.T) {
	svc, _, settings := newTestService(newFakeEffector(), nil)
	configureGuild(t, settings, "g1")

	_, err := svc.Execute(context.Background(), admin, ActionRequest{Kind: ActionBan, GuildID: "g1", TargetID: "fantasma"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteWarnBelowLimit(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	svc, _, settings := newTestService(newFakeEffector("user1"), notifier)
	configureGuild(t, settings, "g1")

	res, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1", Reason: "spam"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}
	if res.AutoBanned {
		t.Error("AutoBanned = true con una sola advertencia")
	}
	if res.Evaluation == nil || res.Evaluation.CurrentCount != 1 {
		t.Errorf("Evaluation = %+v, want CurrentCount 1", res.Evaluation)
	}
	if res.Event.WarnCount != 1 || res.Event.MaxWarnings != models.DefaultMaxWarnings {
		t.Error("el evento no lleva el recuento de advertencias")
	}
}

func TestExecuteWarnEmptyReasonDefaults(t *testing.T) {
	ctx := context.Background()
	svc, ledger, _ := newTestService(newFakeEffector("user1"), nil)

	_, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 1 || hist[0].Reason != models.DefaultReason {
		t.Errorf("Reason = %v, want %v", hist[0].Reason, models.DefaultReason)
	}
}

func TestExecuteWarnAutoBan(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	notifier := &recordingNotifier{}
	svc, ledger, settings := newTestService(effector, notifier)
	configureGuild(t, settings, "g1")

	req := ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1", Reason: "spam"}
	var res *ActionResult
	var err error
	for i := 0; i < models.DefaultMaxWarnings; i++ {
		res, err = svc.Execute(ctx, admin, req)
		if err != nil {
			t.Fatalf("Execute devolvió error: %v", err)
		}
	}

	if !res.AutoBanned {
		t.Fatal("la tercera advertencia no escaló a auto-ban")
	}
	if !res.Event.AutoBan || res.Event.Kind != ActionBan {
		t.Error("el evento final no es un ban automático")
	}
	if !strings.Contains(res.Event.Reason, "3/3") {
		t.Errorf("Reason = %v, want contiene 3/3", res.Event.Reason)
	}

	if len(effector.quarantined) != 1 {
		t.Error("el auto-ban no aplicó la cuarentena")
	}

	count, _ := ledger.ActiveWarnCount(ctx, "user1", time.Now(), WarnExpiry)
	if count != 0 {
		t.Errorf("advertencias activas tras el auto-ban = %v, want 0", count)
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 1 || hist[0].Kind != models.PunishmentBan {
		t.Error("el historial tras el auto-ban debe contener solo el ban")
	}

	// 3 eventos warn + 1 evento ban
	if len(notifier.events) != 4 {
		t.Errorf("eventos notificados = %v, want 4", len(notifier.events))
	}
}

func TestExecuteWarnAutoBanDegraded(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	// Sin rol de ban configurado: el límite se alcanza pero no hay ban
	svc, ledger, _ := newTestService(newFakeEffector("user1"), notifier)

	req := ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1", Reason: "spam"}
	var res *ActionResult
	var err error
	for i := 0; i < models.DefaultMaxWarnings; i++ {
		res, err = svc.Execute(ctx, admin, req)
		if err != nil {
			t.Fatalf("Execute devolvió error: %v", err)
		}
	}

	if res.AutoBanned {
		t.Error("AutoBanned = true sin rol de cuarentena")
	}
	if !res.AutoBanDegraded {
		t.Error("AutoBanDegraded = false, want true")
	}

	// Las advertencias se conservan: no hubo ban que las limpiara
	count, _ := ledger.ActiveWarnCount(ctx, "user1", time.Now(), WarnExpiry)
	if count != models.DefaultMaxWarnings {
		t.Errorf("advertencias activas = %v, want %v", count, models.DefaultMaxWarnings)
	}
}

func TestExecuteMute(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	svc, ledger, _ := newTestService(effector, nil)

	before := time.Now()
	res, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionMute, GuildID: "g1", TargetID: "user1", Reason: "flood", Duration: "30m"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}

	until, ok := effector.timedOut["user1"]
	if !ok {
		t.Fatal("el mute no aplicó el timeout")
	}
	want := before.Add(30 * time.Minute)
	if until.Before(want) || until.After(want.Add(5*time.Second)) {
		t.Errorf("timeout hasta %v, want ~%v", until, want)
	}
	if res.MuteUntil != until {
		t.Error("MuteUntil no coincide con el timeout aplicado")
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 1 || hist[0].Kind != models.PunishmentMute {
		t.Error("el mute no quedó en el ledger")
	}
}

func TestExecuteUnban(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	svc, ledger, settings := newTestService(effector, nil)
	configureGuild(t, settings, "g1")

	res, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionUnban, GuildID: "g1", TargetID: "user1"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}
	if len(effector.restored) != 1 || effector.restored[0] != "user1" {
		t.Error("el unban no restauró al miembro")
	}
	if res.Event.Kind != ActionUnban {
		t.Errorf("Event.Kind = %v, want %v", res.Event.Kind, ActionUnban)
	}

	// El levantamiento no escribe en el ledger
	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 0 {
		t.Error("el unban escribió en el ledger")
	}
}

func TestExecuteUnbanUnconfigured(t *testing.T) {
	ctx := context.Background()
	svc, _, settings := newTestService(newFakeEffector("user1"), nil)

	// Solo el rol de ban, falta el de miembro
	banRole := "role-ban"
	settings.Update(ctx, "g1", models.SettingsPatch{BanRoleID: &banRole})

	_, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionUnban, GuildID: "g1", TargetID: "user1"})
	if !errors.Is(err, ErrUnconfigured) {
		t.Fatalf("err = %v, want ErrUnconfigured", err)
	}
}

func TestExecuteUnwarn(t *testing.T) {
	ctx := context.Background()
	svc, ledger, _ := newTestService(newFakeEffector("user1"), nil)

	svc.Execute(ctx, admin, ActionRequest{Kind: ActionWarn, GuildID: "g1", TargetID: "user1", Reason: "spam"})

	_, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionUnwarn, GuildID: "g1", TargetID: "user1"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}

	count, _ := ledger.ActiveWarnCount(ctx, "user1", time.Now(), WarnExpiry)
	if count != 0 {
		t.Errorf("advertencias tras el unwarn = %v, want 0", count)
	}
}

func TestExecuteUnwarnWithoutWarns(t *testing.T) {
	svc, _, _ := newTestService(newFakeEffector("user1"), nil)

	_, err := svc.Execute(context.Background(), admin, ActionRequest{Kind: ActionUnwarn, GuildID: "g1", TargetID: "user1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteUnmute(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	svc, ledger, _ := newTestService(effector, nil)

	_, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionUnmute, GuildID: "g1", TargetID: "user1"})
	if err != nil {
		t.Fatalf("Execute devolvió error: %v", err)
	}
	if len(effector.clearedTimes) != 1 {
		t.Error("el unmute no levantó el timeout")
	}

	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 0 {
		t.Error("el unmute escribió en el ledger")
	}
}

func TestExecuteEffectorFailurePropagates(t *testing.T) {
	ctx := context.Background()
	effector := newFakeEffector("user1")
	effector.failNext = errors.New("discord caído")
	svc, ledger, settings := newTestService(effector, nil)
	configureGuild(t, settings, "g1")

	_, err := svc.Execute(ctx, admin, ActionRequest{Kind: ActionBan, GuildID: "g1", TargetID: "user1"})
	if err == nil {
		t.Fatal("Execute no propagó el fallo del effector")
	}

	// El efecto falló antes de escribir: el ledger queda intacto
	hist, _ := ledger.History(ctx, "user1")
	if len(hist) != 0 {
		t.Error("el fallo del effector dejó escritura en el ledger")
	}
}
