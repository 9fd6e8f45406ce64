package commands

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/ports"
	"dispatch/internal/observability"
)

// ReportLocationCommandHandler records driver location fixes. This is the
// hottest write path in the system, so it runs on a driver-scoped unit of
// work and never contends with order or handover operations.
//
// After commit the fix fans out to observers: the event publisher (websocket
// subscribers, broker) and the geo index. Both are best-effort.
type ReportLocationCommandHandler struct {
	uowFactory DriverUoWFactory
	clock      ports.Clock
	publisher  ports.EventPublisher
	geoIndex   ports.DriverGeoIndex
}

// NewReportLocationCommandHandler creates a handler for location reports.
// The publisher and geo index may be nil when the deployment runs without
// live streaming or proximity queries.
func NewReportLocationCommandHandler(
	uowFactory DriverUoWFactory,
	clock ports.Clock,
	publisher ports.EventPublisher,
	geoIndex ports.DriverGeoIndex,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  publisher,
		geoIndex:   geoIndex,
	}
}

// Handle processes the location report and returns the updated driver. The
// new fix overwrites the previous one entirely and re-marks the driver
// active; only the latest fix is retained.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, cmd ReportLocationCommand) (*driver.Driver, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reportedAt := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reporter, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	if err = reporter.ReportFix(cmd.Location(), reportedAt); err != nil {
		return nil, err
	}

	if err = uow.DriverRepository().Update(ctx, reporter); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	observability.LocationUpdatesTotal.Inc()

	if h.publisher != nil {
		event := ports.DriverLocationEvent{
			DriverID:  reporter.ID().String(),
			Latitude:  cmd.Location().Latitude(),
			Longitude: cmd.Location().Longitude(),
			At:        reportedAt,
		}
		if err := h.publisher.PublishDriverLocation(ctx, event); err != nil {
			observability.NotificationFailuresTotal.Inc()
		}
	}
	if h.geoIndex != nil {
		if err := h.geoIndex.Upsert(ctx, reporter.ID(), cmd.Location(), reportedAt); err != nil {
			observability.NotificationFailuresTotal.Inc()
		}
	}

	return reporter, nil
}
