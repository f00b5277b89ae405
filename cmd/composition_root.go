package cmd

import (
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/payment"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/eventrepo"
	"shipping/internal/adapters/out/postgres/matchrepo"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/services"
	"shipping/internal/jobs"
	"shipping/internal/pkg/clock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	clock      clock.Clock
	matcher    services.HostMatcher
	serviceFee kernel.Money
	gateway    *payment.Client
	verifier   *payment.WebhookVerifier
	publisher  *eventrepo.GormEventPublisher
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	origins, destinations, err := cfg.Coverage()
	if err != nil {
		return CompositionRoot{}, err
	}

	serviceFee, err := cfg.ServiceFee()
	if err != nil {
		return CompositionRoot{}, err
	}

	clk := clock.NewSystem()

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      clk,
		matcher:    services.NewHostMatcher(origins, destinations),
		serviceFee: serviceFee,
		gateway: payment.NewClient(payment.Config{
			BaseURL:    cfg.PaymentBaseURL,
			APIKey:     cfg.PaymentAPIKey,
			SuccessURL: cfg.PaymentSuccessURL,
			CancelURL:  cfg.PaymentCancelURL,
			SessionTTL: cfg.CheckoutSessionTTL,
		}, nil, clk, logger),
		verifier:  payment.NewWebhookVerifier(cfg.PaymentWebhookSecret, clk),
		publisher: eventrepo.NewGormEventPublisher(gormDB, logger),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderLinkageUoWFactory = FuncOrderLinkageUoWFactory(func() commands.OrderLinkageUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.clock)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.uowFactoryForSaga(), c.matcher, c.gateway, c.publisher, c.clock, c.serviceFee)
}

func (c *CompositionRoot) CreateCompleteServicePaymentCommandHandler() commands.CompleteServicePaymentCommandHandler {
	return commands.NewCompleteServicePaymentCommandHandler(c.uowFactoryForSaga(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteShipmentPaymentCommandHandler() commands.CompleteShipmentPaymentCommandHandler {
	return commands.NewCompleteShipmentPaymentCommandHandler(c.orderUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateDispatchPaymentWebhookCommandHandler() commands.DispatchPaymentWebhookCommandHandler {
	service := c.CreateCompleteServicePaymentCommandHandler()
	shipment := c.CreateCompleteShipmentPaymentCommandHandler()
	return commands.NewDispatchPaymentWebhookCommandHandler(&service, &shipment)
}

func (c *CompositionRoot) CreateRecordItemReceiptCommandHandler() commands.RecordItemReceiptCommandHandler {
	return commands.NewRecordItemReceiptCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateSubmitShipmentInfoCommandHandler() commands.SubmitShipmentInfoCommandHandler {
	return commands.NewSubmitShipmentInfoCommandHandler(c.orderUoWFactory(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreatePayShipmentCommandHandler() commands.PayShipmentCommandHandler {
	return commands.NewPayShipmentCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateReapExpiredMatchesCommandHandler() commands.ReapExpiredMatchesCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReapExpiredMatchesCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetHostOrdersQueryHandler() queries.GetHostOrdersQueryHandler {
	return queries.NewGetHostOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateFindMatchQueryHandler() queries.FindMatchQueryHandler {
	return queries.NewFindMatchQueryHandler(matchrepo.NewGormMatchRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(c.publisher)
}

// CreateServer wires every use case into the HTTP server.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	confirmOrder := c.CreateConfirmOrderCommandHandler()
	recordItemReceipt := c.CreateRecordItemReceiptCommandHandler()
	submitShipmentInfo := c.CreateSubmitShipmentInfoCommandHandler()
	payShipment := c.CreatePayShipmentCommandHandler()
	dispatch := c.CreateDispatchPaymentWebhookCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		CreateOrder:            &createOrder,
		ConfirmOrder:           &confirmOrder,
		RecordItemReceipt:      &recordItemReceipt,
		SubmitShipmentInfo:     &submitShipmentInfo,
		PayShipment:            &payShipment,
		DispatchPaymentWebhook: &dispatch,
		GetOrder:               c.CreateGetOrderQueryHandler(),
		GetHostOrders:          c.CreateGetHostOrdersQueryHandler(),
		FindMatch:              c.CreateFindMatchQueryHandler(),
		GetOrderEvents:         c.CreateGetOrderEventsQueryHandler(),
	}, c.verifier, c.logger)
}

// CreateJobManager wires the scheduled jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reaper := c.CreateReapExpiredMatchesCommandHandler()
	return jobs.NewJobManager(&reaper, c.cfg.MatchTTL, c.cfg.ReaperSchedule, c.logger)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryForSaga() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderLinkageUoWFactory func() commands.OrderLinkageUoW

func (f FuncOrderLinkageUoWFactory) Create() commands.OrderLinkageUoW {
	return f()
}

type FuncMatchUoWFactory func() commands.MatchUoW

func (f FuncMatchUoWFactory) Create() commands.MatchUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
