package cmd

import (
	"fmt"
	"log/slog"

	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/cache"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/adapters/out/rmq"
	"parcelhub/internal/core/application/usecases/commands"
	"parcelhub/internal/core/application/usecases/queries"
	"parcelhub/internal/core/domain/services"
	"parcelhub/internal/core/ports"
	"parcelhub/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and handler once at startup. Nothing
// in the application reaches for global state; whatever a component needs
// arrives through its constructor.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	memCache   *cache.MemoryCache
	policy     services.SLAPolicy
	notifier   ports.NotificationSender
	audit      ports.AuditLogger
	events     ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph over an open database
// connection and an established broker client.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	rmqClient *rmq.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	policy, err := services.NewSLAPolicy(
		cfg.SLAPickupThreshold,
		cfg.SLADeliveryThreshold,
		cfg.SLAStaleThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("build sla policy: %w", err)
	}

	notifier, err := rmq.NewNotificationSender(rmqClient)
	if err != nil {
		return nil, err
	}
	audit, err := rmq.NewAuditLogger(rmqClient)
	if err != nil {
		return nil, err
	}
	events, err := rmq.NewEventPublisher(rmqClient)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		memCache:   cache.NewMemoryCache(),
		policy:     policy,
		notifier:   notifier,
		audit:      audit,
		events:     events,
		logger:     logger,
	}, nil
}

// Close releases resources owned by the root itself. The database and
// broker connections belong to main, which opened them.
func (c *CompositionRoot) Close() {
	c.memCache.Close()
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) manifestUoWFactory() commands.ManifestUoWFactory {
	return FuncManifestUoWFactory(func() commands.ManifestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pickupUoWFactory() commands.PickupUoWFactory {
	return FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderLocationUoWFactory() commands.RiderLocationUoWFactory {
	return FuncRiderLocationUoWFactory(func() commands.RiderLocationUoW {
		return c.uowFactory.Create()
	})
}

// CreateCheckSLACommandHandler builds the sweep handler for the job manager.
func (c *CompositionRoot) CreateCheckSLACommandHandler() commands.CheckSLACommandHandler {
	return commands.NewCheckSLACommandHandler(
		c.shipmentUoWFactory(),
		c.policy,
		c.memCache,
		c.notifier,
		c.audit,
		c.events,
		c.cfg.SLARuleTimeout,
		c.logger,
	)
}

// CreateJobManager builds the scheduled-job coordinator.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCheckSLACommandHandler(), c.cfg.SLASweepSpec, c.logger)
}

// CreateHTTPHandlers builds the full handler set for the REST server.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateShipment:      commands.NewCreateShipmentCommandHandler(c.pickupUoWFactory()),
		CancelShipment:      commands.NewCancelShipmentCommandHandler(c.shipmentUoWFactory()),
		AssignPickup:        commands.NewAssignPickupCommandHandler(c.pickupUoWFactory()),
		CompletePickup:      commands.NewCompletePickupCommandHandler(c.pickupUoWFactory()),
		InboundScan:         commands.NewInboundScanCommandHandler(c.manifestUoWFactory()),
		OutboundScan:        commands.NewOutboundScanCommandHandler(c.shipmentUoWFactory()),
		GenerateOtp:         commands.NewGenerateOtpCommandHandler(c.shipmentUoWFactory(), c.notifier, c.logger),
		CompleteDelivery:    commands.NewCompleteDeliveryCommandHandler(c.shipmentUoWFactory(), c.notifier, c.audit, c.events, c.logger),
		FailDelivery:        commands.NewFailDeliveryCommandHandler(c.shipmentUoWFactory(), c.notifier, c.audit, c.events, c.logger),
		MarkRTO:             commands.NewMarkRTOCommandHandler(c.shipmentUoWFactory(), c.audit, c.events, c.logger),
		CompleteRTOReturn:   commands.NewCompleteRTOReturnCommandHandler(c.shipmentUoWFactory()),
		CreateManifest:      commands.NewCreateManifestCommandHandler(c.manifestUoWFactory()),
		ReceiveManifest:     commands.NewReceiveManifestCommandHandler(c.manifestUoWFactory()),
		CloseManifest:       commands.NewCloseManifestCommandHandler(c.manifestUoWFactory()),
		RecordRiderLocation: commands.NewRecordRiderLocationCommandHandler(c.riderLocationUoWFactory()),

		TrackShipment:    queries.NewTrackShipmentQueryHandler(c.gormDB),
		ShipmentTimeline: queries.NewGetShipmentTimelineQueryHandler(c.gormDB, c.memCache, c.logger),
		ListManifests:    queries.NewListManifestsQueryHandler(c.gormDB),
		HubInventory:     queries.NewGetHubInventoryQueryHandler(c.gormDB),
		SLAStatistics:    queries.NewGetSLAStatisticsQueryHandler(c.gormDB, c.policy),
		CheckShipmentSLA: queries.NewCheckShipmentSLAQueryHandler(c.gormDB, c.policy),
	}
}

// Function adapters narrowing the gorm unit of work to each handler's
// transactional surface.
type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncManifestUoWFactory func() commands.ManifestUoW

func (f FuncManifestUoWFactory) Create() commands.ManifestUoW {
	return f()
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}

type FuncRiderLocationUoWFactory func() commands.RiderLocationUoW

func (f FuncRiderLocationUoWFactory) Create() commands.RiderLocationUoW {
	return f()
}
