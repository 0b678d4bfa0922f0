package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/models"
)

// Service es el orquestador de acciones: dada una intención tipada,
// valida permisos y configuración, escribe en el ledger, evalúa la
// política de advertencias y pide los efectos de plataforma. Los
// colaboradores se inyectan para que los tests usen stores en memoria.
type Service struct {
	Ledger   LedgerStore
	Settings SettingsStore
	Effector Effector
	Notifier Notifier
}

// NewService crea un orquestador con los colaboradores dados. Un
// Notifier nil se sustituye por NopNotifier.
func NewService(ledger LedgerStore, settings SettingsStore, effector Effector, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		Ledger:   ledger,
		Settings: settings,
		Effector: effector,
		Notifier: notifier,
	}
}

// ActionResult resume lo que pasó al ejecutar una acción, para que la
// UI componga su confirmación.
type ActionResult struct {
	Event AuditEvent

	// Evaluation se rellena en acciones warn
	Evaluation *WarnEvaluation

	// AutoBanned indica que la advertencia escaló a ban automático
	AutoBanned bool

	// AutoBanDegraded indica que el límite se alcanzó pero el ban no
	// pudo aplicarse (miembro ausente o rol sin configurar)
	AutoBanDegraded bool

	// MuteUntil es el fin del silencio en acciones mute
	MuteUntil time.Time
}

// Execute ejecuta una acción de moderación de principio a fin. Los
// rechazos (ErrUnauthorized, ErrUnconfigured, ErrNotFound) ocurren
// antes de cualquier escritura en el ledger; un fallo de plataforma
// posterior a una escritura deja el registro en pie sin corrección.
func (s *Service) Execute(ctx context.Context, actor models.Actor, req ActionRequest) (*ActionResult, error) {
	if !req.Kind.IsValid() {
		return nil, fmt.Errorf("acción inválida: %q", req.Kind)
	}

	settings, err := s.Settings.Get(ctx, req.GuildID)
	if err != nil {
		return nil, err
	}

	if !IsAuthorized(actor, settings) {
		return nil, ErrUnauthorized
	}

	if req.Reason == "" {
		req.Reason = models.DefaultReason
	}

	switch req.Kind {
	case ActionBan:
		return s.ban(ctx, actor, req, settings)
	case ActionWarn:
		return s.warn(ctx, actor, req, settings)
	case ActionMute:
		return s.mute(ctx, actor, req)
	case ActionUnban:
		return s.unban(ctx, actor, req, settings)
	case ActionUnwarn:
		return s.unwarn(ctx, actor, req)
	case ActionUnmute:
		return s.unmute(ctx, actor, req)
	}
	return nil, fmt.Errorf("acción inválida: %q", req.Kind)
}

// quarantine aplica la secuencia completa de ban: rol de cuarentena,
// limpieza de advertencias y registro en el ledger. Un ban reinicia el
// historial de advertencias.
func (s *Service) quarantine(ctx context.Context, req ActionRequest, settings *models.GuildSettings, reason string) error {
	if err := s.Effector.Quarantine(ctx, req.GuildID, req.TargetID, settings.BanRoleID); err != nil {
		return err
	}
	if err := s.Ledger.ClearWarns(ctx, req.TargetID); err != nil {
		return err
	}
	if _, err := s.Ledger.Append(ctx, req.TargetID, models.PunishmentBan, reason); err != nil {
		return err
	}
	return nil
}

func (s *Service) ban(ctx context.Context, actor models.Actor, req ActionRequest, settings *models.GuildSettings) (*ActionResult, error) {
	if settings.BanRoleID == "" {
		return nil, fmt.Errorf("%w: falta el rol de cuarentena", ErrUnconfigured)
	}
	if !s.Effector.IsMember(ctx, req.GuildID, req.TargetID) {
		return nil, ErrNotFound
	}

	if err := s.quarantine(ctx, req, settings, req.Reason); err != nil {
		return nil, err
	}

	event := NewAuditEvent(req.GuildID, ActionBan, req.TargetID, actor.ID, req.Reason)
	event.Duration = req.Duration
	s.Notifier.Notify(ctx, event)
	return &ActionResult{Event: event}, nil
}

func (s *Service) warn(ctx context.Context, actor models.Actor, req ActionRequest, settings *models.GuildSettings) (*ActionResult, error) {
	if _, err := s.Ledger.Append(ctx, req.TargetID, models.PunishmentWarn, req.Reason); err != nil {
		return nil, err
	}

	eval, err := EvaluateWarn(ctx, s.Ledger, req.TargetID, settings)
	if err != nil {
		return nil, err
	}

	event := NewAuditEvent(req.GuildID, ActionWarn, req.TargetID, actor.ID, req.Reason)
	event.WarnCount = eval.CurrentCount
	event.MaxWarnings = settings.MaxWarnings
	s.Notifier.Notify(ctx, event)

	result := &ActionResult{Event: event, Evaluation: &eval}
	if !eval.AutoBanTriggered {
		return result, nil
	}

	// El límite se alcanzó: intentar la escalada a ban automático
	if settings.BanRoleID == "" || !s.Effector.IsMember(ctx, req.GuildID, req.TargetID) {
		logger.Warn(fmt.Sprintf("Auto-ban no aplicado a %s: miembro ausente o rol sin configurar", req.TargetID), "Moderation")
		result.AutoBanDegraded = true
		return result, nil
	}

	autoReason := fmt.Sprintf("Auto-ban: límite de advertencias alcanzado (%d/%d)", eval.CurrentCount, settings.MaxWarnings)
	if err := s.quarantine(ctx, req, settings, autoReason); err != nil {
		return nil, err
	}

	banEvent := NewAuditEvent(req.GuildID, ActionBan, req.TargetID, actor.ID, autoReason)
	banEvent.AutoBan = true
	banEvent.WarnCount = eval.CurrentCount
	banEvent.MaxWarnings = settings.MaxWarnings
	s.Notifier.Notify(ctx, banEvent)

	result.Event = banEvent
	result.AutoBanned = true
	return result, nil
}

func (s *Service) mute(ctx context.Context, actor models.Actor, req ActionRequest) (*ActionResult, error) {
	if !s.Effector.IsMember(ctx, req.GuildID, req.TargetID) {
		return nil, ErrNotFound
	}

	until := time.Now().Add(ParseMuteDuration(req.Duration))
	if err := s.Effector.Timeout(ctx, req.GuildID, req.TargetID, until); err != nil {
		return nil, err
	}
	if _, err := s.Ledger.Append(ctx, req.TargetID, models.PunishmentMute, req.Reason); err != nil {
		return nil, err
	}

	event := NewAuditEvent(req.GuildID, ActionMute, req.TargetID, actor.ID, req.Reason)
	event.Duration = req.Duration
	s.Notifier.Notify(ctx, event)
	return &ActionResult{Event: event, MuteUntil: until}, nil
}

func (s *Service) unban(ctx context.Context, actor models.Actor, req ActionRequest, settings *models.GuildSettings) (*ActionResult, error) {
	if settings.BanRoleID == "" || settings.MemberRoleID == "" {
		return nil, fmt.Errorf("%w: faltan los roles de cuarentena o de miembro", ErrUnconfigured)
	}
	if !s.Effector.IsMember(ctx, req.GuildID, req.TargetID) {
		return nil, ErrNotFound
	}

	if err := s.Effector.Restore(ctx, req.GuildID, req.TargetID, settings.BanRoleID, settings.MemberRoleID); err != nil {
		return nil, err
	}

	event := NewAuditEvent(req.GuildID, ActionUnban, req.TargetID, actor.ID, req.Reason)
	s.Notifier.Notify(ctx, event)
	return &ActionResult{Event: event}, nil
}

func (s *Service) unwarn(ctx context.Context, actor models.Actor, req ActionRequest) (*ActionResult, error) {
	removed, err := s.Ledger.RemoveMostRecentWarn(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, fmt.Errorf("%w: el usuario no tiene advertencias", ErrNotFound)
	}

	event := NewAuditEvent(req.GuildID, ActionUnwarn, req.TargetID, actor.ID, req.Reason)
	s.Notifier.Notify(ctx, event)
	return &ActionResult{Event: event}, nil
}

func (s *Service) unmute(ctx context.Context, actor models.Actor, req ActionRequest) (*ActionResult, error) {
	if !s.Effector.IsMember(ctx, req.GuildID, req.TargetID) {
		return nil, ErrNotFound
	}

	if err := s.Effector.ClearTimeout(ctx, req.GuildID, req.TargetID); err != nil {
		return nil, err
	}

	event := NewAuditEvent(req.GuildID, ActionUnmute, req.TargetID, actor.ID, req.Reason)
	s.Notifier.Notify(ctx, event)
	return &ActionResult{Event: event}, nil
}
