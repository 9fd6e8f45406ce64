package cmd

import (
	"fmt"
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/fanout"
	"dispatch/internal/adapters/out/inmem"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/notify"
	pg "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/cashrepo"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/redisgeo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot wires the selected storage backend, the outbound adapters,
// and the shared policies, and hands out fully-constructed handlers.
type CompositionRoot struct {
	logger *slog.Logger
	clock  ports.Clock

	freshness   driver.FreshnessPolicy
	overCollect order.OverCollectPolicy

	uowFactory ports.UnitOfWorkFactory

	notifier  ports.Notifier
	publisher ports.EventPublisher
	geoIndex  ports.DriverGeoIndex

	getOrdersHandler    queries.GetOrdersHandler
	getOrderHandler     queries.GetOrderHandler
	getDriversHandler   queries.GetDriversHandler
	getHandoversHandler queries.GetHandoversHandler

	closers []func() error
}

// NewCompositionRoot builds the object graph from config. The hub, when
// given, receives every committed event alongside Kafka.
func NewCompositionRoot(config Config, logger *slog.Logger, hub ports.EventPublisher) (*CompositionRoot, error) {
	root := &CompositionRoot{
		logger: logger,
		clock:  ports.SystemClock(),
		freshness: driver.FreshnessPolicy{
			ActiveWithin: config.DriverActiveWithin,
			OfflineAfter: config.DriverOfflineAfter,
		},
		overCollect: overCollectPolicy(config.CashOverCollect),
	}
	if err := root.freshness.Validate(); err != nil {
		return nil, fmt.Errorf("freshness policy: %w", err)
	}

	switch config.StorageDriver {
	case "postgres":
		db, err := gorm.Open(postgres.Open(postgresDSN(config)), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.AutoMigrate(
			&orderrepo.OrderDTO{},
			&orderrepo.TimelineEntryDTO{},
			&driverrepo.DriverDTO{},
			&driverrepo.ActiveOrderDTO{},
			&cashrepo.HandoverDTO{},
		); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}

		root.uowFactory = pg.NewGormUnitOfWorkFactory(db)
		root.getOrdersHandler = queries.NewGetOrdersQueryHandler(db)
		root.getOrderHandler = queries.NewGetOrderQueryHandler(db)
		root.getDriversHandler = queries.NewGetDriversQueryHandler(db, root.clock, root.freshness)
		root.getHandoversHandler = queries.NewGetHandoversQueryHandler(db)
	case "memory":
		store := inmem.NewStore()
		root.uowFactory = inmem.NewUnitOfWorkFactory(store)
		root.getOrdersHandler = inmem.NewGetOrdersQueryHandler(store)
		root.getOrderHandler = inmem.NewGetOrderQueryHandler(store)
		root.getDriversHandler = inmem.NewGetDriversQueryHandler(store, root.clock, root.freshness)
		root.getHandoversHandler = inmem.NewGetHandoversQueryHandler(store)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}

	if config.NotifyWebhookURL != "" {
		root.notifier = notify.NewWebhookNotifier(config.NotifyWebhookURL, logger)
	}

	targets := make([]ports.EventPublisher, 0, 2)
	if hub != nil {
		targets = append(targets, hub)
	}
	if len(config.KafkaBrokers) > 0 {
		producer := kafka.NewPublisher(
			config.KafkaBrokers,
			config.KafkaOrderChangedTopic,
			config.KafkaDriverLocationTopic,
		)
		root.closers = append(root.closers, producer.Close)
		targets = append(targets, producer)
	}
	if len(targets) > 0 {
		root.publisher = fanout.NewPublisher(targets...)
	}

	if config.RedisAddr != "" {
		index := redisgeo.NewIndex(config.RedisAddr, config.RedisPassword, config.RedisGeoKey)
		root.closers = append(root.closers, index.Close)
		root.geoIndex = index
	}

	return root, nil
}

// Close releases every adapter that holds a connection.
func (c *CompositionRoot) Close() {
	for _, closer := range c.closers {
		if err := closer(); err != nil {
			c.logger.Warn("adapter close failed", "error", err)
		}
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateDriverCommandHandler() commands.CreateDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.clock, c.notifier, c.publisher, c.overCollect)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.clock, c.publisher, c.geoIndex)
}

func (c *CompositionRoot) CreateRefreshDriverActivityCommandHandler() commands.RefreshDriverActivityCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefreshDriverActivityCommandHandler(f, c.clock, c.freshness)
}

func (c *CompositionRoot) CreateDispatchPendingOrderCommandHandler() commands.DispatchPendingOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchPendingOrderCommandHandler(f, c.clock, c.freshness, c.notifier)
}

func (c *CompositionRoot) CreateRegisterHandoverCommandHandler() commands.RegisterHandoverCommandHandler {
	var f commands.HandoverUoWFactory = FuncHandoverUoWFactory(func() commands.HandoverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterHandoverCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateResolveHandoverCommandHandler() commands.ResolveHandoverCommandHandler {
	var f commands.HandoverUoWFactory = FuncHandoverUoWFactory(func() commands.HandoverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveHandoverCommandHandler(f)
}

// HTTPHandlers bundles everything the REST server needs.
func (c *CompositionRoot) HTTPHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateOrder:      c.CreateCreateOrderCommandHandler(),
		CreateDriver:     c.CreateCreateDriverCommandHandler(),
		AssignOrder:      c.CreateAssignOrderCommandHandler(),
		TransitionOrder:  c.CreateTransitionOrderCommandHandler(),
		ReleaseOrder:     c.CreateReleaseOrderCommandHandler(),
		ReportLocation:   c.CreateReportLocationCommandHandler(),
		Dispatch:         c.CreateDispatchPendingOrderCommandHandler(),
		RegisterHandover: c.CreateRegisterHandoverCommandHandler(),
		ResolveHandover:  c.CreateResolveHandoverCommandHandler(),

		GetOrders:    c.getOrdersHandler,
		GetOrder:     c.getOrderHandler,
		GetDrivers:   c.getDriversHandler,
		GetHandovers: c.getHandoversHandler,
	}
}

func overCollectPolicy(value string) order.OverCollectPolicy {
	if value == "with_note" {
		return order.OverCollectWithNote
	}
	return order.OverCollectForbid
}

func postgresDSN(config Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncHandoverUoWFactory func() commands.HandoverUoW

func (f FuncHandoverUoWFactory) Create() commands.HandoverUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
