package entities

import "time"

type Event struct {
	ID       int64
	Title    string
	Subtitle string
	Abstract string
	Location string
	Date     *time.Time
	Visible  bool
}

func NewEvent() Event {
	return Event{}
}

func (e Event) RecordID() int64          { return e.ID }
func (e Event) RecordKind() string       { return "event" }
func (e Event) DisplayName() string      { return e.Title }
func (e Event) SearchableText() []string { return []string{e.Title, e.Subtitle} }
func (e *Event) SetRecordID(id int64)    { e.ID = id }

// EventSpeaker links a speaker to an event by identifier.
type EventSpeaker struct {
	ID        int64
	EventID   int64
	SpeakerID int64
}

func NewEventSpeaker() EventSpeaker {
	return EventSpeaker{}
}

func (e EventSpeaker) RecordID() int64          { return e.ID }
func (e EventSpeaker) RecordKind() string       { return "event speaker" }
func (e EventSpeaker) DisplayName() string      { return "" }
func (e EventSpeaker) SearchableText() []string { return nil }
func (e *EventSpeaker) SetRecordID(id int64)    { e.ID = id }
