package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
)

func newSubmitShipmentInfoHandler(uow *MockUoW, publisher *MockEventPublisher) *commands.SubmitShipmentInfoCommandHandler {
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	h := commands.NewSubmitShipmentInfoCommandHandler(factory, publisher, fixedClock())
	return &h
}

func TestSubmitShipmentInfoCommandHandler_Handle(t *testing.T) {
	t.Run("should finalize when every item is complete", func(t *testing.T) {
		// Given
		hostID := kernel.NewUUID()
		o := newConfirmedOrder(t, hostID, 2)
		receiveAll(t, o, hostID)

		repo := new(MockOrderRepository)
		uow := newTxUoW()
		publisher := new(MockEventPublisher)
		uow.On("OrderRepository").Return(repo)
		mock.InOrder(
			repo.On("GetConfirmedForHost", mock.Anything, o.ID(), hostID).Return(o, nil).Once(),
			repo.On("Update", mock.Anything, o).Return(nil).Once(),
			uow.On("Commit", mock.Anything).Return(nil).Once(),
			publisher.On("Publish", mock.Anything, expectEvent(order.EventFinalized)).Once(),
		)

		cmd, err := commands.NewSubmitShipmentInfoCommand(o.ID(), hostID, kg(t, "3.4"), usd(t, "27.80"), " https://calc.example/r/1 ")
		require.NoError(t, err)

		// When
		err = newSubmitShipmentInfoHandler(uow, publisher).Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Finalized, o.Status())
		assert.Equal(t, "27.80 USD", o.FinalShipmentCost().String())
		assert.Equal(t, "3.4 kg", o.TotalWeight().String())
		require.NotNil(t, o.CalculatorResultURL())
		assert.Equal(t, "https://calc.example/r/1", *o.CalculatorResultURL())
		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("should list incomplete items and leave the order untouched", func(t *testing.T) {
		// Given
		hostID := kernel.NewUUID()
		o := newConfirmedOrder(t, hostID, 3)
		items := o.Items()
		require.NoError(t, o.RecordItemReceipt(hostID, items[1].ID(), now, []string{"https://img.example/1"}))

		repo := new(MockOrderRepository)
		uow := newTxUoW()
		publisher := new(MockEventPublisher)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetConfirmedForHost", mock.Anything, o.ID(), hostID).Return(o, nil).Once()

		cmd, _ := commands.NewSubmitShipmentInfoCommand(o.ID(), hostID, kg(t, "3.4"), usd(t, "27.80"), "")

		// When
		err := newSubmitShipmentInfoHandler(uow, publisher).Handle(t.Context(), cmd)

		// Then
		var incomplete *order.IncompleteItemsError
		require.ErrorAs(t, err, &incomplete)
		require.ErrorIs(t, err, order.ErrIncompleteItems)
		assert.Equal(t, []kernel.UUID{items[0].ID(), items[2].ID()}, incomplete.ItemIDs)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Nil(t, o.FinalShipmentCost())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("should read a miss as order not found", func(t *testing.T) {
		// Given
		orderID, hostID := kernel.NewUUID(), kernel.NewUUID()
		repo := new(MockOrderRepository)
		uow := newTxUoW()
		uow.On("OrderRepository").Return(repo)
		repo.On("GetConfirmedForHost", mock.Anything, orderID, hostID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

		cmd, _ := commands.NewSubmitShipmentInfoCommand(orderID, hostID, kg(t, "1"), usd(t, "10"), "")

		// When
		err := newSubmitShipmentInfoHandler(uow, new(MockEventPublisher)).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, commands.ErrOrderNotFound)
	})

	t.Run("should not publish when update fails", func(t *testing.T) {
		// Given
		hostID := kernel.NewUUID()
		o := newConfirmedOrder(t, hostID, 1)
		receiveAll(t, o, hostID)
		updateErr := errors.New("update failed")

		repo := new(MockOrderRepository)
		uow := newTxUoW()
		publisher := new(MockEventPublisher)
		uow.On("OrderRepository").Return(repo)
		repo.On("GetConfirmedForHost", mock.Anything, o.ID(), hostID).Return(o, nil).Once()
		repo.On("Update", mock.Anything, o).Return(updateErr).Once()

		cmd, _ := commands.NewSubmitShipmentInfoCommand(o.ID(), hostID, kg(t, "1"), usd(t, "10"), "")

		// When
		err := newSubmitShipmentInfoHandler(uow, publisher).Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, updateErr)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestNewSubmitShipmentInfoCommand(t *testing.T) {
	t.Run("should treat a blank calculator url as absent", func(t *testing.T) {
		cmd, err := commands.NewSubmitShipmentInfoCommand(kernel.NewUUID(), kernel.NewUUID(), kg(t, "1"), usd(t, "10"), "   ")
		require.NoError(t, err)
		assert.Nil(t, cmd.CalculatorResultURL())
	})

	t.Run("should reject missing ids", func(t *testing.T) {
		_, err := commands.NewSubmitShipmentInfoCommand(kernel.UUID{}, kernel.UUID{}, kg(t, "1"), usd(t, "10"), "")
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject zero-value weight", func(t *testing.T) {
		_, err := commands.NewSubmitShipmentInfoCommand(kernel.NewUUID(), kernel.NewUUID(), kernel.Weight{}, usd(t, "10"), "")
		require.Error(t, err)
	})
}
