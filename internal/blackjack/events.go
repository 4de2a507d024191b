package blackjack

import (
	"time"

	"github.com/lox/tablejack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeRoundStarted EventType = "round_started"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeTurnChanged  EventType = "turn_changed"
	EventTypeBetAdjusted  EventType = "bet_adjusted"
	EventTypeRoundEnded   EventType = "round_ended"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published after the deal for a new round completes
type RoundStartedEvent struct {
	Round     int
	Players   int
	FirstTurn int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published for every card that leaves the deck, both the
// opening deal and hits. Concealment is the presentation layer's problem;
// the event always carries the real card.
type CardDealtEvent struct {
	PlayerID  int
	Card      deck.Card
	Score     int
	Initial   bool // part of the opening two-card deal
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when the current player takes an action
type PlayerActionEvent struct {
	PlayerID  int
	Action    Action
	Score     int
	Busted    bool
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// TurnChangedEvent is published when the turn passes to another seat
type TurnChangedEvent struct {
	PlayerID  int
	Round     int
	timestamp time.Time
}

func (e TurnChangedEvent) EventType() EventType { return EventTypeTurnChanged }
func (e TurnChangedEvent) Timestamp() time.Time { return e.timestamp }

// BetAdjustedEvent is published when a bet adjustment is accepted
type BetAdjustedEvent struct {
	PlayerID  int
	Amount    int
	timestamp time.Time
}

func (e BetAdjustedEvent) EventType() EventType { return EventTypeBetAdjusted }
func (e BetAdjustedEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndedEvent is published once the dealer's turn completes, before the
// next round is dealt
type RoundEndedEvent struct {
	Round     int
	Results   []Result
	timestamp time.Time
}

func (e RoundEndedEvent) EventType() EventType { return EventTypeRoundEnded }
func (e RoundEndedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory, synchronous event bus
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
