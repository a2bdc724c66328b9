package domain_test

import (
	"testing"

	"github.com/primeorcamentos/backoffice-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, domain.OrderStatusDraft.CanTransitionTo(domain.OrderStatusPending))
	assert.True(t, domain.OrderStatusPending.CanTransitionTo(domain.OrderStatusApproved))
	assert.True(t, domain.OrderStatusApproved.CanTransitionTo(domain.OrderStatusInProgress))
	assert.True(t, domain.OrderStatusInProgress.CanTransitionTo(domain.OrderStatusCompleted))
	assert.True(t, domain.OrderStatusCompleted.CanTransitionTo(domain.OrderStatusPaid))

	assert.False(t, domain.OrderStatusDraft.CanTransitionTo(domain.OrderStatusPaid))
	assert.False(t, domain.OrderStatusPending.CanTransitionTo(domain.OrderStatusDraft))
	assert.False(t, domain.OrderStatusCancelled.CanTransitionTo(domain.OrderStatusDraft))
	assert.False(t, domain.OrderStatusPaid.CanTransitionTo(domain.OrderStatusCancelled))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.OrderStatusCancelled.IsTerminal())
	assert.True(t, domain.OrderStatusPaid.IsTerminal())
	assert.False(t, domain.OrderStatusDraft.IsTerminal())
	assert.False(t, domain.OrderStatusCompleted.IsTerminal())
}

func TestOrder_IsLocked(t *testing.T) {
	o := &domain.Order{Status: domain.OrderStatusDraft}
	assert.False(t, o.IsLocked())

	for _, s := range []domain.OrderStatus{
		domain.OrderStatusCompleted, domain.OrderStatusCancelled, domain.OrderStatusPaid,
	} {
		o.Status = s
		assert.True(t, o.IsLocked(), "status %s should lock edits", s)
	}
}

func TestOrderType_NumberPrefix(t *testing.T) {
	assert.Equal(t, "QT", domain.OrderTypeQuote.NumberPrefix())
	assert.Equal(t, "OS", domain.OrderTypeServiceOrder.NumberPrefix())
	assert.Equal(t, "OB", domain.OrderTypeWorkOrder.NumberPrefix())
}
