package commands

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parcelhub/internal/core/domain/model/shipment"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
)

// SweepResult summarizes one sweep for logs and the statistics endpoint.
type SweepResult struct {
	// Emitted counts fresh violations per rule that produced alerts.
	Emitted map[services.ViolationKind]int
	// Suppressed counts violations skipped because their marker was live.
	Suppressed int
}

// CheckSLACommandHandler runs the periodic service-level sweep. The three
// rules evaluate concurrently, each against its own repository snapshot and
// under its own timeout; one stuck or failing rule never aborts the others.
// A violation already carrying a live deduplication marker is skipped
// silently. Everything the sweep emits is a side channel: marker writes,
// violation records, notifications and broadcasts are logged on failure and
// never bubble up.
type CheckSLACommandHandler struct {
	uowFactory  ShipmentUoWFactory
	policy      services.SLAPolicy
	cache       ports.Cache
	notifier    ports.NotificationSender
	audit       ports.AuditLogger
	events      ports.EventPublisher
	ruleTimeout time.Duration
	logger      *slog.Logger
}

// NewCheckSLACommandHandler creates a handler for the sweep.
func NewCheckSLACommandHandler(
	uowFactory ShipmentUoWFactory,
	policy services.SLAPolicy,
	cache ports.Cache,
	notifier ports.NotificationSender,
	audit ports.AuditLogger,
	events ports.EventPublisher,
	ruleTimeout time.Duration,
	logger *slog.Logger,
) CheckSLACommandHandler {
	return CheckSLACommandHandler{
		uowFactory:  uowFactory,
		policy:      policy,
		cache:       cache,
		notifier:    notifier,
		audit:       audit,
		events:      events,
		ruleTimeout: ruleTimeout,
		logger:      logger,
	}
}

// Handle runs one sweep and reports what it emitted.
func (h *CheckSLACommandHandler) Handle(ctx context.Context, cmd CheckSLACommand) (SweepResult, error) {
	if err := cmd.Validate(); err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{
		Emitted: make(map[services.ViolationKind]int),
	}

	rules := []struct {
		kind  services.ViolationKind
		fetch func(ctx context.Context, repo ports.ShipmentRepository) ([]*shipment.Shipment, error)
	}{
		{
			kind: services.PickupOverdue,
			fetch: func(ctx context.Context, repo ports.ShipmentRepository) ([]*shipment.Shipment, error) {
				return repo.GetAllPendingOlderThan(ctx, cmd.Now().Add(-h.policy.PickupThreshold()))
			},
		},
		{
			kind: services.DeliveryOverdue,
			fetch: func(ctx context.Context, repo ports.ShipmentRepository) ([]*shipment.Shipment, error) {
				return repo.GetAllInDeliveryOlderThan(ctx, cmd.Now().Add(-h.policy.DeliveryThreshold()))
			},
		},
		{
			kind: services.InTransitStale,
			fetch: func(ctx context.Context, repo ports.ShipmentRepository) ([]*shipment.Shipment, error) {
				return repo.GetAllInTransitNotUpdatedSince(ctx, cmd.Now().Add(-h.policy.StaleThreshold()))
			},
		},
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, rule := range rules {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ruleCtx, cancel := context.WithTimeout(ctx, h.ruleTimeout)
			defer cancel()

			emitted, suppressed, err := h.runRule(ruleCtx, cmd.Now(), rule.kind, rule.fetch)
			if err != nil {
				h.logger.Error("sla rule failed", "rule", rule.kind.String(), "error", err)
				return
			}

			mu.Lock()
			result.Emitted[rule.kind] = emitted
			result.Suppressed += suppressed
			mu.Unlock()
		}()
	}
	wg.Wait()

	return result, nil
}

func (h *CheckSLACommandHandler) runRule(
	ctx context.Context,
	now time.Time,
	kind services.ViolationKind,
	fetch func(ctx context.Context, repo ports.ShipmentRepository) ([]*shipment.Shipment, error),
) (emitted, suppressed int, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	candidates, err := fetch(ctx, uow.ShipmentRepository())
	if err != nil {
		return 0, 0, err
	}

	for _, sh := range candidates {
		violations, evalErr := h.policy.Evaluate(sh, now)
		if evalErr != nil {
			h.logger.Warn("skipping malformed shipment in sweep",
				"rule", kind.String(), "error", evalErr)
			continue
		}

		for _, v := range violations {
			if v.Kind != kind {
				continue
			}

			key := h.policy.MarkerKey(v.Kind, v.ShipmentID)
			marked, existsErr := h.cache.Exists(ctx, key)
			if existsErr != nil {
				h.logger.Warn("dedup marker check failed", "key", key, "error", existsErr)
				continue
			}
			if marked {
				suppressed++
				continue
			}

			if setErr := h.cache.SetWithTTL(ctx, key, now.Format(time.RFC3339), h.policy.MarkerTTL(v.Kind)); setErr != nil {
				h.logger.Warn("dedup marker set failed", "key", key, "error", setErr)
			}

			h.emit(ctx, v)
			emitted++
		}
	}

	return emitted, suppressed, nil
}

func (h *CheckSLACommandHandler) emit(ctx context.Context, v services.Violation) {
	if err := h.audit.Append(ctx, ports.AuditEntry{
		Actor:       ports.SystemActor,
		EntityType:  "shipment",
		EntityID:    v.ShipmentID,
		Action:      "sla_violation",
		Description: fmt.Sprintf("%s overdue by %s", v.Kind, v.Overdue),
	}); err != nil {
		h.logger.Warn("sla audit append failed", "awb", v.AWB, "error", err)
	}

	if err := h.notifier.Send(ctx, ports.Notification{
		Recipient: v.MerchantID,
		Channel:   ports.ChannelEmail,
		Title:     "Service level breach",
		Body:      fmt.Sprintf("Shipment %s breached the %s threshold.", v.AWB, v.Kind),
		Data: map[string]string{
			"awb":  v.AWB,
			"rule": v.Kind.String(),
		},
	}); err != nil {
		h.logger.Warn("sla notification failed", "awb", v.AWB, "error", err)
	}

	for _, topic := range []string{"shipment." + v.AWB, "merchant." + v.MerchantID} {
		if err := h.events.Publish(ctx, ports.Event{
			Topic: topic,
			Kind:  "sla.violation",
			Payload: map[string]string{
				"awb":     v.AWB,
				"rule":    v.Kind.String(),
				"overdue": v.Overdue.String(),
			},
		}); err != nil {
			h.logger.Warn("sla event publish failed", "topic", topic, "error", err)
		}
	}
}
