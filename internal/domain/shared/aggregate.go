package shared

import (
	"time"

	"github.com/google/uuid"
)

// AggregateRoot is an entity that records domain events for its changes
type AggregateRoot interface {
	GetID() uuid.UUID
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot provides the identity and pending-event list for aggregates
type BaseAggregateRoot struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	domainEvents []DomainEvent
}

// NewBaseAggregateRoot creates a base aggregate root with a generated ID
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
	}
}

// GetID returns the aggregate ID
func (a *BaseAggregateRoot) GetID() uuid.UUID {
	return a.ID
}

// AddDomainEvent queues an event until the owner publishes it
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the pending events in the order they were raised
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the pending events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}
