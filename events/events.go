package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"lender/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCreditLimitAssigned EventType = "credit_limit_assigned"
	EventTypeLoanRequested       EventType = "loan_requested"
	EventTypeLoanRepaid          EventType = "loan_repaid"
	EventTypeGuildConfigured     EventType = "guild_configured"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CreditLimitAssignedEvent fires the first time a credit limit is
// derived for a user from an observed level.
type CreditLimitAssignedEvent struct {
	UserID string
	Level  int
	Limit  int64
}

func (e CreditLimitAssignedEvent) Type() EventType {
	return EventTypeCreditLimitAssigned
}

// LoanRequestedEvent fires when a loan is approved and reserved.
type LoanRequestedEvent struct {
	GuildID        string
	UserID         string
	Principal      int64
	EMI            decimal.Decimal
	Plan           models.RepaymentPlan
	DurationMonths int
	DueDate        time.Time
}

func (e LoanRequestedEvent) Type() EventType {
	return EventTypeLoanRequested
}

// LoanRepaidEvent fires on every repayment, partial or closing.
type LoanRepaidEvent struct {
	GuildID            string
	UserID             string
	Amount             int64
	RemainingPrincipal int64
	Closed             bool
}

func (e LoanRepaidEvent) Type() EventType {
	return EventTypeLoanRepaid
}

// GuildConfiguredEvent fires when the setup wizard completes.
type GuildConfiguredEvent struct {
	GuildID string
}

func (e GuildConfiguredEvent) Type() EventType {
	return EventTypeGuildConfigured
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Handlers run asynchronously so they never block the command path
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}
