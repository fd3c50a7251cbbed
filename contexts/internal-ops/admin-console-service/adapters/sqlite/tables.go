package sqliteadapter

import (
	"database/sql"
	"log/slog"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

func NewSponsorStore(db *sql.DB, logger *slog.Logger) *RecordStore[entities.Sponsor, *entities.Sponsor] {
	return newRecordStore[entities.Sponsor, *entities.Sponsor](db, table[entities.Sponsor]{
		name:          "sponsor",
		columns:       []string{"name", "website", "logo", "level", "valid_from", "valid_to"},
		searchColumns: []string{"name"},
		newRecord:     entities.NewSponsor,
		values: func(item entities.Sponsor) []any {
			return []any{
				item.Name,
				item.Website,
				item.Logo,
				string(item.Level),
				formatTime(item.ValidFrom, dateLayout),
				formatTime(item.ValidTo, dateLayout),
			}
		},
		scan: func(row rowScanner) (entities.Sponsor, error) {
			var item entities.Sponsor
			var level string
			var validFrom, validTo sql.NullString
			if err := row.Scan(&item.ID, &item.Name, &item.Website, &item.Logo, &level, &validFrom, &validTo); err != nil {
				return entities.Sponsor{}, err
			}
			item.Level = entities.SponsorLevel(level)
			var err error
			if item.ValidFrom, err = parseTime(validFrom, dateLayout); err != nil {
				return entities.Sponsor{}, err
			}
			if item.ValidTo, err = parseTime(validTo, dateLayout); err != nil {
				return entities.Sponsor{}, err
			}
			return item, nil
		},
	}, logger)
}

func NewSpeakerStore(db *sql.DB, logger *slog.Logger) *RecordStore[entities.Speaker, *entities.Speaker] {
	return newRecordStore[entities.Speaker, *entities.Speaker](db, table[entities.Speaker]{
		name:          "speaker",
		columns:       []string{"first_name", "last_name", "company", "email", "twitter", "bio"},
		searchColumns: []string{"first_name", "last_name", "company"},
		newRecord:     entities.NewSpeaker,
		values: func(item entities.Speaker) []any {
			return []any{
				item.FirstName,
				item.LastName,
				item.Company,
				item.Email,
				item.Twitter,
				item.Bio,
			}
		},
		scan: func(row rowScanner) (entities.Speaker, error) {
			var item entities.Speaker
			err := row.Scan(&item.ID, &item.FirstName, &item.LastName, &item.Company, &item.Email, &item.Twitter, &item.Bio)
			return item, err
		},
	}, logger)
}

func NewEventStore(db *sql.DB, logger *slog.Logger) *RecordStore[entities.Event, *entities.Event] {
	return newRecordStore[entities.Event, *entities.Event](db, table[entities.Event]{
		name:          "event",
		columns:       []string{"title", "subtitle", "abstract", "location", "date", "visible"},
		searchColumns: []string{"title", "subtitle"},
		newRecord:     entities.NewEvent,
		values: func(item entities.Event) []any {
			return []any{
				item.Title,
				item.Subtitle,
				item.Abstract,
				item.Location,
				formatTime(item.Date, timestampLayout),
				item.Visible,
			}
		},
		scan: func(row rowScanner) (entities.Event, error) {
			var item entities.Event
			var date sql.NullString
			if err := row.Scan(&item.ID, &item.Title, &item.Subtitle, &item.Abstract, &item.Location, &date, &item.Visible); err != nil {
				return entities.Event{}, err
			}
			var err error
			item.Date, err = parseTime(date, timestampLayout)
			return item, err
		},
	}, logger)
}

func NewEventSpeakerStore(db *sql.DB, logger *slog.Logger) *RecordStore[entities.EventSpeaker, *entities.EventSpeaker] {
	return newRecordStore[entities.EventSpeaker, *entities.EventSpeaker](db, table[entities.EventSpeaker]{
		name:      "event_speaker",
		columns:   []string{"event_id", "speaker_id"},
		newRecord: entities.NewEventSpeaker,
		values: func(item entities.EventSpeaker) []any {
			return []any{item.EventID, item.SpeakerID}
		},
		scan: func(row rowScanner) (entities.EventSpeaker, error) {
			var item entities.EventSpeaker
			err := row.Scan(&item.ID, &item.EventID, &item.SpeakerID)
			return item, err
		},
	}, logger)
}

func NewMemberStore(db *sql.DB, logger *slog.Logger) *RecordStore[entities.Member, *entities.Member] {
	return newRecordStore[entities.Member, *entities.Member](db, table[entities.Member]{
		name: "member",
		columns: []string{
			"first_name", "last_name", "email", "address", "zip_code", "city", "state", "country",
			"member_since", "admin", "password_salt", "password_hash", "active",
		},
		searchColumns: []string{"first_name", "last_name", "email"},
		newRecord:     entities.NewMember,
		values: func(item entities.Member) []any {
			return []any{
				item.FirstName,
				item.LastName,
				item.Email,
				item.Address,
				item.ZipCode,
				item.City,
				item.State,
				item.Country,
				formatTime(item.MemberSince, timestampLayout),
				item.Admin,
				item.PasswordSalt,
				item.PasswordHash,
				item.Active,
			}
		},
		scan: func(row rowScanner) (entities.Member, error) {
			var item entities.Member
			var since sql.NullString
			if err := row.Scan(
				&item.ID, &item.FirstName, &item.LastName, &item.Email, &item.Address, &item.ZipCode,
				&item.City, &item.State, &item.Country, &since, &item.Admin,
				&item.PasswordSalt, &item.PasswordHash, &item.Active,
			); err != nil {
				return entities.Member{}, err
			}
			var err error
			item.MemberSince, err = parseTime(since, timestampLayout)
			return item, err
		},
	}, logger)
}

func formatTime(value *time.Time, layout string) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(layout)
}

func parseTime(value sql.NullString, layout string) (*time.Time, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	parsed, err := time.Parse(layout, value.String)
	if err != nil {
		return nil, err
	}
	parsed = parsed.UTC()
	return &parsed, nil
}
