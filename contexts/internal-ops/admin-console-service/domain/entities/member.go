package entities

import (
	"strings"
	"time"
)

type Member struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Address      string
	ZipCode      string
	City         string
	State        string
	Country      string
	MemberSince  *time.Time
	Admin        bool
	PasswordSalt string
	PasswordHash string
	Active       bool
}

func NewMember() Member {
	return Member{}
}

func (m Member) RecordID() int64    { return m.ID }
func (m Member) RecordKind() string { return "member" }

func (m Member) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

func (m Member) SearchableText() []string {
	return []string{m.FirstName, m.LastName, m.Email}
}

func (m *Member) SetRecordID(id int64) { m.ID = id }
