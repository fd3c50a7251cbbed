package http

import (
	"strings"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	domainerrors "komunumo/contexts/internal-ops/admin-console-service/domain/errors"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListRequest is the listing a client is looking at. Mutations carry it too
// so the refreshed rows can be returned with the result.
type ListRequest struct {
	Offset int
	Limit  int
	Filter string
}

type ListResponse[T any] struct {
	Items  []T    `json:"items"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
	Filter string `json:"filter"`
}

type RecordResponse[T any] struct {
	Record T `json:"record"`
}

// MutationResponse omits Listing when the refresh after the commit failed;
// FollowUpError then says why.
type MutationResponse[T any] struct {
	Outcome       string           `json:"outcome"`
	Record        T                `json:"record"`
	Listing       *ListResponse[T] `json:"listing,omitempty"`
	FollowUpError string           `json:"followup_error,omitempty"`
}

type DeleteResponse[T any] struct {
	Outcome       string           `json:"outcome"`
	Message       string           `json:"message,omitempty"`
	Listing       *ListResponse[T] `json:"listing,omitempty"`
	FollowUpError string           `json:"followup_error,omitempty"`
}

type AuditLogResponse struct {
	AuditID    string `json:"audit_id"`
	ActorID    string `json:"actor_id"`
	Action     string `json:"action"`
	TargetKind string `json:"target_kind"`
	TargetID   int64  `json:"target_id"`
	OccurredAt string `json:"occurred_at"`
	RequestID  string `json:"request_id,omitempty"`
}

type SponsorRequest struct {
	Name      string `json:"name"`
	Website   string `json:"website"`
	Logo      string `json:"logo"`
	Level     string `json:"level"`
	ValidFrom string `json:"valid_from"`
	ValidTo   string `json:"valid_to"`
}

func (r SponsorRequest) ApplyTo(item *entities.Sponsor) error {
	level := entities.SponsorLevel(strings.ToUpper(strings.TrimSpace(r.Level)))
	if !level.Valid() {
		return domainerrors.ErrInvalidInput
	}
	validFrom, err := parseOptional(r.ValidFrom, dateLayout)
	if err != nil {
		return err
	}
	validTo, err := parseOptional(r.ValidTo, dateLayout)
	if err != nil {
		return err
	}
	item.Name = strings.TrimSpace(r.Name)
	item.Website = strings.TrimSpace(r.Website)
	item.Logo = strings.TrimSpace(r.Logo)
	item.Level = level
	item.ValidFrom = validFrom
	item.ValidTo = validTo
	return nil
}

type SponsorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Website   string `json:"website"`
	Logo      string `json:"logo"`
	Level     string `json:"level"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
}

func NewSponsorResponse(item entities.Sponsor) SponsorResponse {
	return SponsorResponse{
		ID:        item.ID,
		Name:      item.Name,
		Website:   item.Website,
		Logo:      item.Logo,
		Level:     string(item.Level),
		ValidFrom: formatOptional(item.ValidFrom, dateLayout),
		ValidTo:   formatOptional(item.ValidTo, dateLayout),
	}
}

type SpeakerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Twitter   string `json:"twitter"`
	Bio       string `json:"bio"`
}

func (r SpeakerRequest) ApplyTo(item *entities.Speaker) error {
	item.FirstName = strings.TrimSpace(r.FirstName)
	item.LastName = strings.TrimSpace(r.LastName)
	item.Company = strings.TrimSpace(r.Company)
	item.Email = strings.TrimSpace(r.Email)
	item.Twitter = strings.TrimSpace(r.Twitter)
	item.Bio = r.Bio
	return nil
}

type SpeakerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Email     string `json:"email"`
	Twitter   string `json:"twitter"`
	Bio       string `json:"bio"`
}

func NewSpeakerResponse(item entities.Speaker) SpeakerResponse {
	return SpeakerResponse(item)
}

type EventRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Abstract string `json:"abstract"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Visible  bool   `json:"visible"`
}

func (r EventRequest) ApplyTo(item *entities.Event) error {
	date, err := parseOptional(r.Date, timestampLayout)
	if err != nil {
		return err
	}
	item.Title = strings.TrimSpace(r.Title)
	item.Subtitle = strings.TrimSpace(r.Subtitle)
	item.Abstract = r.Abstract
	item.Location = strings.TrimSpace(r.Location)
	item.Date = date
	item.Visible = r.Visible
	return nil
}

type EventResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Abstract string `json:"abstract"`
	Location string `json:"location"`
	Date     string `json:"date,omitempty"`
	Visible  bool   `json:"visible"`
}

func NewEventResponse(item entities.Event) EventResponse {
	return EventResponse{
		ID:       item.ID,
		Title:    item.Title,
		Subtitle: item.Subtitle,
		Abstract: item.Abstract,
		Location: item.Location,
		Date:     formatOptional(item.Date, timestampLayout),
		Visible:  item.Visible,
	}
}

// MemberRequest leaves password salt and hash untouched.
type MemberRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	MemberSince string `json:"member_since"`
	Admin       bool   `json:"admin"`
	Active      bool   `json:"active"`
}

func (r MemberRequest) ApplyTo(item *entities.Member) error {
	since, err := parseOptional(r.MemberSince, timestampLayout)
	if err != nil {
		return err
	}
	item.FirstName = strings.TrimSpace(r.FirstName)
	item.LastName = strings.TrimSpace(r.LastName)
	item.Email = strings.ToLower(strings.TrimSpace(r.Email))
	item.Address = strings.TrimSpace(r.Address)
	item.ZipCode = strings.TrimSpace(r.ZipCode)
	item.City = strings.TrimSpace(r.City)
	item.State = strings.TrimSpace(r.State)
	item.Country = strings.TrimSpace(r.Country)
	item.MemberSince = since
	item.Admin = r.Admin
	item.Active = r.Active
	return nil
}

type MemberResponse struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	MemberSince string `json:"member_since,omitempty"`
	Admin       bool   `json:"admin"`
	Active      bool   `json:"active"`
}

func NewMemberResponse(item entities.Member) MemberResponse {
	return MemberResponse{
		ID:          item.ID,
		FirstName:   item.FirstName,
		LastName:    item.LastName,
		Email:       item.Email,
		Address:     item.Address,
		ZipCode:     item.ZipCode,
		City:        item.City,
		State:       item.State,
		Country:     item.Country,
		MemberSince: formatOptional(item.MemberSince, timestampLayout),
		Admin:       item.Admin,
		Active:      item.Active,
	}
}

func parseOptional(raw string, layout string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(layout, raw)
	if err != nil {
		return nil, domainerrors.ErrInvalidInput
	}
	parsed = parsed.UTC()
	return &parsed, nil
}

func formatOptional(value *time.Time, layout string) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(layout)
}
