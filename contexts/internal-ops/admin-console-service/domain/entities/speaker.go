package entities

import "strings"

type Speaker struct {
	ID        int64
	FirstName string
	LastName  string
	Company   string
	Email     string
	Twitter   string
	Bio       string
}

func NewSpeaker() Speaker {
	return Speaker{}
}

func (s Speaker) RecordID() int64    { return s.ID }
func (s Speaker) RecordKind() string { return "speaker" }

func (s Speaker) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Speaker) SearchableText() []string {
	return []string{s.FirstName, s.LastName, s.Company}
}

func (s *Speaker) SetRecordID(id int64) { s.ID = id }
