package commands_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/match"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
)

type completeServiceFixture struct {
	orders    *MockOrderRepository
	matches   *MockMatchRepository
	linkage   *MockLinkageRepository
	uow       *MockUoW
	publisher *MockEventPublisher
	logs      *bytes.Buffer
	handler   commands.CompleteServicePaymentCommandHandler
}

func newCompleteServiceFixture() *completeServiceFixture {
	f := &completeServiceFixture{
		orders:    new(MockOrderRepository),
		matches:   new(MockMatchRepository),
		linkage:   new(MockLinkageRepository),
		uow:       newTxUoW(),
		publisher: new(MockEventPublisher),
		logs:      new(bytes.Buffer),
	}
	f.uow.On("OrderRepository").Return(f.orders)
	f.uow.On("MatchRepository").Return(f.matches)
	f.uow.On("LinkageRepository").Return(f.linkage).Maybe()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(f.uow)

	logger := slog.New(slog.NewTextHandler(f.logs, nil))
	f.handler = commands.NewCompleteServicePaymentCommandHandler(factory, f.publisher, fixedClock(), logger)
	return f
}

func TestCompleteServicePaymentCommandHandler_Handle(t *testing.T) {
	t.Run("should confirm the order with the matched host", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		o := newDraftedOrder(t, de, 1)
		hostID := kernel.NewUUID()
		m, err := match.NewMatch(o.ID(), hostID, now)
		require.NoError(t, err)
		cmd, _ := commands.NewCompleteServicePaymentCommand(m.ID())

		mock.InOrder(
			f.matches.On("Consume", mock.Anything, m.ID()).Return(m, nil).Once(),
			f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
			f.orders.On("Update", mock.Anything, o).Return(nil).Once(),
			f.linkage.On("LinkHostOrder", mock.Anything, hostID, o.ID()).Return(nil).Once(),
			f.uow.On("Commit", mock.Anything).Return(nil).Once(),
			f.publisher.On("Publish", mock.Anything, expectEvent(order.EventConfirmed)).Once(),
		)

		// When
		err = f.handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		require.NotNil(t, o.Host())
		assert.True(t, o.Host().IsEqual(hostID))
		f.matches.AssertExpectations(t)
		f.orders.AssertExpectations(t)
		f.linkage.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("should be a no-op when the match is missing", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		id := kernel.NewUUID()
		cmd, _ := commands.NewCompleteServicePaymentCommand(id)
		cmd = cmd.WithCheckoutSessionID("cs_late")
		f.matches.On("Consume", mock.Anything, id).Return(nil, match.ErrMatchNotFound).Once()

		// When
		err := f.handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		f.orders.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		assert.Contains(t, f.logs.String(), "Service payment without a live match")
		assert.Contains(t, f.logs.String(), "checkout_session_id=cs_late")
		assert.Contains(t, f.logs.String(), "match_id="+id.String())
	})

	t.Run("should consume a second paid match without touching a confirmed order", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		firstHost := kernel.NewUUID()
		o := newConfirmedOrder(t, firstHost, 1)
		m, _ := match.NewMatch(o.ID(), kernel.NewUUID(), now)
		cmd, _ := commands.NewCompleteServicePaymentCommand(m.ID())

		f.matches.On("Consume", mock.Anything, m.ID()).Return(m, nil).Once()
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		f.uow.On("Commit", mock.Anything).Return(nil).Once()

		// When
		err := f.handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		assert.True(t, o.Host().IsEqual(firstHost))
		f.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.linkage.AssertNotCalled(t, "LinkHostOrder", mock.Anything, mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		f.uow.AssertExpectations(t)
	})

	t.Run("should roll back when the order is gone", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		m, _ := match.NewMatch(kernel.NewUUID(), kernel.NewUUID(), now)
		cmd, _ := commands.NewCompleteServicePaymentCommand(m.ID())
		f.matches.On("Consume", mock.Anything, m.ID()).Return(m, nil).Once()
		f.orders.On("Get", mock.Anything, m.OrderID()).
			Return(nil, errs.NewObjectNotFoundError("order", m.OrderID().String())).Once()

		// When
		err := f.handler.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, commands.ErrOrderNotFound)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should roll back when linking fails", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		o := newDraftedOrder(t, de, 1)
		m, _ := match.NewMatch(o.ID(), kernel.NewUUID(), now)
		cmd, _ := commands.NewCompleteServicePaymentCommand(m.ID())
		linkErr := errors.New("link failed")

		f.matches.On("Consume", mock.Anything, m.ID()).Return(m, nil).Once()
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		f.orders.On("Update", mock.Anything, o).Return(nil).Once()
		f.linkage.On("LinkHostOrder", mock.Anything, m.HostID(), o.ID()).Return(linkErr).Once()

		// When
		err := f.handler.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, linkErr)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("should not publish when commit fails", func(t *testing.T) {
		// Given
		f := newCompleteServiceFixture()
		o := newDraftedOrder(t, de, 1)
		m, _ := match.NewMatch(o.ID(), kernel.NewUUID(), now)
		cmd, _ := commands.NewCompleteServicePaymentCommand(m.ID())
		commitErr := errors.New("serialization failure")

		f.matches.On("Consume", mock.Anything, m.ID()).Return(m, nil).Once()
		f.orders.On("Get", mock.Anything, o.ID()).Return(o, nil).Once()
		f.orders.On("Update", mock.Anything, o).Return(nil).Once()
		f.linkage.On("LinkHostOrder", mock.Anything, m.HostID(), o.ID()).Return(nil).Once()
		f.uow.On("Commit", mock.Anything).Return(commitErr).Once()

		// When
		err := f.handler.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, commitErr)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
