package queries_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/linkagerepo"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/pgtest"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repositories' aggregate tracker; queries do not track.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type ReadModelQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	orders    *orderrepo.GormOrderRepository
	linkage   *linkagerepo.GormLinkageRepository
}

func (suite *ReadModelQueriesTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&linkagerepo.HostOrderDTO{},
	))
	suite.orders = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.linkage = linkagerepo.NewGormLinkageRepository(db)
}

func (suite *ReadModelQueriesTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db, "orders", "order_items", "host_orders"))
}

func (suite *ReadModelQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ReadModelQueriesTestSuite) TestGetOrder_Drafted() {
	ctx := context.Background()
	o := pgtest.DraftedOrder(suite.T(), 2)
	suite.Require().NoError(suite.orders.Add(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.ID)
	suite.Equal(o.CustomerID(), view.CustomerID)
	suite.Equal("US", view.OriginCountry)
	suite.Equal("DE", view.Destination.Country)
	suite.Equal("Berlin", view.Destination.City)
	suite.Equal("Drafted", view.Status)
	suite.True(decimal.RequireFromString("42.50").Equal(view.ShipmentCostEstimate.Amount))
	suite.Equal("USD", view.ShipmentCostEstimate.Currency)
	suite.Nil(view.HostID)
	suite.Nil(view.FinalShipmentCost)
	suite.Nil(view.TotalWeightKg)

	suite.Require().Len(view.Items, 2)
	suite.Equal(o.Items()[0].ID(), view.Items[0].ID)
	suite.Equal(o.Items()[1].ID(), view.Items[1].ID)
	suite.Nil(view.Items[0].ReceivedDate)
	suite.Empty(view.Items[0].Photos)
}

func (suite *ReadModelQueriesTestSuite) TestGetOrder_Finalized() {
	ctx := context.Background()
	o := pgtest.DraftedOrder(suite.T(), 1)
	hostID := kernel.NewUUID()
	received := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)

	suite.Require().NoError(o.Confirm(hostID))
	suite.Require().NoError(o.RecordItemReceipt(hostID, o.Items()[0].ID(), received, []string{"p1.jpg"}))
	weight, err := kernel.NewWeight(decimal.RequireFromString("2.5"))
	suite.Require().NoError(err)
	cost, err := kernel.NewMoney(decimal.RequireFromString("25.00"), "USD")
	suite.Require().NoError(err)
	url := "https://calc.example.com/r/1"
	suite.Require().NoError(o.Finalize(hostID, weight, cost, &url))
	suite.Require().NoError(suite.orders.Add(ctx, o))

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal("Finalized", view.Status)
	suite.Require().NotNil(view.HostID)
	suite.Equal(hostID, *view.HostID)
	suite.Require().NotNil(view.TotalWeightKg)
	suite.True(decimal.RequireFromString("2.5").Equal(*view.TotalWeightKg))
	suite.Require().NotNil(view.FinalShipmentCost)
	suite.True(decimal.RequireFromString("25").Equal(view.FinalShipmentCost.Amount))
	suite.Equal(&url, view.CalculatorResultURL)
	suite.Require().NotNil(view.Items[0].ReceivedDate)
	suite.True(received.Equal(*view.Items[0].ReceivedDate))
	suite.Equal([]string{"p1.jpg"}, view.Items[0].Photos)
}

func (suite *ReadModelQueriesTestSuite) TestGetOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(view)
}

func (suite *ReadModelQueriesTestSuite) TestGetHostOrders() {
	ctx := context.Background()
	hostID := kernel.NewUUID()
	o := pgtest.DraftedOrder(suite.T(), 1)
	suite.Require().NoError(o.Confirm(hostID))
	suite.Require().NoError(suite.orders.Add(ctx, o))
	orphan := kernel.NewUUID()

	suite.Require().NoError(suite.linkage.LinkHostOrder(ctx, hostID, o.ID()))
	suite.Require().NoError(suite.linkage.LinkHostOrder(ctx, hostID, orphan))
	suite.Require().NoError(suite.linkage.LinkHostOrder(ctx, kernel.NewUUID(), kernel.NewUUID()))

	query, err := queries.NewGetHostOrdersQuery(hostID)
	suite.Require().NoError(err)

	result, err := queries.NewGetHostOrdersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	statuses := map[kernel.UUID]string{}
	for _, r := range result {
		statuses[r.OrderID] = r.Status
	}
	suite.Equal(map[kernel.UUID]string{o.ID(): "Confirmed", orphan: ""}, statuses)
}

func (suite *ReadModelQueriesTestSuite) TestGetHostOrders_UnknownHost() {
	query, err := queries.NewGetHostOrdersQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := queries.NewGetHostOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ReadModelQueriesTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().Error(err)
}

func TestReadModelQueriesTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ReadModelQueriesTestSuite))
}
