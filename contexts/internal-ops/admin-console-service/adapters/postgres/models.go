package postgresadapter

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
)

type sponsorModel struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string     `gorm:"column:name"`
	Website   string     `gorm:"column:website"`
	Logo      string     `gorm:"column:logo"`
	Level     string     `gorm:"column:level"`
	ValidFrom *time.Time `gorm:"column:valid_from;type:date"`
	ValidTo   *time.Time `gorm:"column:valid_to;type:date"`
}

func (sponsorModel) TableName() string {
	return "sponsor"
}

func NewSponsorRepository(db *gorm.DB, logger *slog.Logger) *Repository[entities.Sponsor, sponsorModel] {
	return newRepository(db, table[entities.Sponsor, sponsorModel]{
		searchColumns: []string{"name"},
		newRecord:     entities.NewSponsor,
		toModel: func(item entities.Sponsor) sponsorModel {
			return sponsorModel{
				ID:        item.ID,
				Name:      item.Name,
				Website:   item.Website,
				Logo:      item.Logo,
				Level:     string(item.Level),
				ValidFrom: utcDate(item.ValidFrom),
				ValidTo:   utcDate(item.ValidTo),
			}
		},
		toEntity: func(row sponsorModel) entities.Sponsor {
			return entities.Sponsor{
				ID:        row.ID,
				Name:      row.Name,
				Website:   row.Website,
				Logo:      row.Logo,
				Level:     entities.SponsorLevel(row.Level),
				ValidFrom: utcDate(row.ValidFrom),
				ValidTo:   utcDate(row.ValidTo),
			}
		},
	}, logger)
}

type speakerModel struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
	Company   string `gorm:"column:company"`
	Email     string `gorm:"column:email"`
	Twitter   string `gorm:"column:twitter"`
	Bio       string `gorm:"column:bio"`
}

func (speakerModel) TableName() string {
	return "speaker"
}

func NewSpeakerRepository(db *gorm.DB, logger *slog.Logger) *Repository[entities.Speaker, speakerModel] {
	return newRepository(db, table[entities.Speaker, speakerModel]{
		searchColumns: []string{"first_name", "last_name", "company"},
		newRecord:     entities.NewSpeaker,
		toModel: func(item entities.Speaker) speakerModel {
			return speakerModel{
				ID:        item.ID,
				FirstName: item.FirstName,
				LastName:  item.LastName,
				Company:   item.Company,
				Email:     item.Email,
				Twitter:   item.Twitter,
				Bio:       item.Bio,
			}
		},
		toEntity: func(row speakerModel) entities.Speaker {
			return entities.Speaker(row)
		},
	}, logger)
}

type eventModel struct {
	ID       int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Title    string     `gorm:"column:title"`
	Subtitle string     `gorm:"column:subtitle"`
	Abstract string     `gorm:"column:abstract"`
	Location string     `gorm:"column:location"`
	Date     *time.Time `gorm:"column:date"`
	Visible  bool       `gorm:"column:visible"`
}

func (eventModel) TableName() string {
	return "event"
}

func NewEventRepository(db *gorm.DB, logger *slog.Logger) *Repository[entities.Event, eventModel] {
	return newRepository(db, table[entities.Event, eventModel]{
		searchColumns: []string{"title", "subtitle"},
		newRecord:     entities.NewEvent,
		toModel: func(item entities.Event) eventModel {
			return eventModel{
				ID:       item.ID,
				Title:    item.Title,
				Subtitle: item.Subtitle,
				Abstract: item.Abstract,
				Location: item.Location,
				Date:     utcTime(item.Date),
				Visible:  item.Visible,
			}
		},
		toEntity: func(row eventModel) entities.Event {
			item := entities.Event(row)
			item.Date = utcTime(row.Date)
			return item
		},
	}, logger)
}

type eventSpeakerModel struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	EventID   int64 `gorm:"column:event_id"`
	SpeakerID int64 `gorm:"column:speaker_id"`
}

func (eventSpeakerModel) TableName() string {
	return "event_speaker"
}

func NewEventSpeakerRepository(db *gorm.DB, logger *slog.Logger) *Repository[entities.EventSpeaker, eventSpeakerModel] {
	return newRepository(db, table[entities.EventSpeaker, eventSpeakerModel]{
		newRecord: entities.NewEventSpeaker,
		toModel: func(item entities.EventSpeaker) eventSpeakerModel {
			return eventSpeakerModel(item)
		},
		toEntity: func(row eventSpeakerModel) entities.EventSpeaker {
			return entities.EventSpeaker(row)
		},
	}, logger)
}

type memberModel struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FirstName    string     `gorm:"column:first_name"`
	LastName     string     `gorm:"column:last_name"`
	Email        string     `gorm:"column:email"`
	Address      string     `gorm:"column:address"`
	ZipCode      string     `gorm:"column:zip_code"`
	City         string     `gorm:"column:city"`
	State        string     `gorm:"column:state"`
	Country      string     `gorm:"column:country"`
	MemberSince  *time.Time `gorm:"column:member_since"`
	Admin        bool       `gorm:"column:admin"`
	PasswordSalt string     `gorm:"column:password_salt"`
	PasswordHash string     `gorm:"column:password_hash"`
	Active       bool       `gorm:"column:active"`
}

func (memberModel) TableName() string {
	return "member"
}

func NewMemberRepository(db *gorm.DB, logger *slog.Logger) *Repository[entities.Member, memberModel] {
	return newRepository(db, table[entities.Member, memberModel]{
		searchColumns: []string{"first_name", "last_name", "email"},
		newRecord:     entities.NewMember,
		toModel: func(item entities.Member) memberModel {
			row := memberModel(item)
			row.MemberSince = utcTime(item.MemberSince)
			return row
		},
		toEntity: func(row memberModel) entities.Member {
			item := entities.Member(row)
			item.MemberSince = utcTime(row.MemberSince)
			return item
		},
	}, logger)
}

func utcTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	out := value.UTC()
	return &out
}

func utcDate(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	y, m, d := value.Date()
	out := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &out
}
