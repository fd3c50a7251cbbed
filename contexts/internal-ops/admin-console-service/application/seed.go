package application

import (
	"context"
	"log/slog"
	"time"

	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
)

// DemoDataGenerator fills empty tables with a small, fixed data set. Each
// entity group is skipped when a record with ID 1 already exists.
type DemoDataGenerator struct {
	Speakers      ports.RecordStore[entities.Speaker]
	Events        ports.RecordStore[entities.Event]
	EventSpeakers ports.RecordStore[entities.EventSpeaker]
	Members       ports.RecordStore[entities.Member]
	Sponsors      ports.RecordStore[entities.Sponsor]
	Hasher        ports.PasswordHasher
	Logger        *slog.Logger
}

func (g DemoDataGenerator) Run(ctx context.Context) error {
	logger := ResolveLogger(g.Logger).With(
		"module", "internal-ops/admin-console-service",
		"layer", "application",
	)
	steps := []struct {
		kind  string
		empty func(context.Context) (bool, error)
		seed  func(context.Context) error
	}{
		{"speaker", probe(g.Speakers), g.seedSpeakers},
		{"event", probe(g.Events), g.seedEvents},
		{"member", probe(g.Members), g.seedMembers},
		{"sponsor", probe(g.Sponsors), g.seedSponsors},
	}
	for _, step := range steps {
		empty, err := step.empty(ctx)
		if err == nil && empty {
			logger.Info("Generating "+step.kind+" entities...", "event", "demo_data_generating", "kind", step.kind)
			err = step.seed(ctx)
		}
		if err != nil {
			logger.Error("demo data generation failed", "event", "demo_data_failed", "kind", step.kind, "error", err)
			return err
		}
	}
	logger.Info("Demo data ready.", "event", "demo_data_ready")
	return nil
}

func probe[E entities.Record](store ports.RecordStore[E]) func(context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		_, ok, err := store.Get(ctx, 1)
		return !ok, err
	}
}

func storeAll[E entities.Record](ctx context.Context, store ports.RecordStore[E], records []E) error {
	for i := range records {
		if err := store.Store(ctx, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (g DemoDataGenerator) seedSpeakers(ctx context.Context) error {
	names := [][2]string{{"John", "Doe"}, {"Jane", "Doe"}}
	speakers := make([]entities.Speaker, 0, len(names))
	for _, name := range names {
		speaker := g.Speakers.NewRecord()
		speaker.FirstName = name[0]
		speaker.LastName = name[1]
		speakers = append(speakers, speaker)
	}
	return storeAll(ctx, g.Speakers, speakers)
}

func (g DemoDataGenerator) seedEvents(ctx context.Context) error {
	seeds := []struct {
		title   string
		date    time.Time
		visible bool
	}{
		{"Testevent One", time.Date(2021, 10, 1, 18, 0, 0, 0, time.UTC), true},
		{"Testevent Two", time.Date(2021, 11, 1, 18, 0, 0, 0, time.UTC), true},
		{"Testevent Three", time.Date(2021, 12, 1, 18, 0, 0, 0, time.UTC), false},
	}
	events := make([]entities.Event, 0, len(seeds))
	for _, seed := range seeds {
		event := g.Events.NewRecord()
		event.Title = seed.title
		date := seed.date
		event.Date = &date
		event.Visible = seed.visible
		events = append(events, event)
	}
	if err := storeAll(ctx, g.Events, events); err != nil {
		return err
	}

	links := [][2]int{{0, 0}, {1, 1}, {2, 0}, {2, 1}}
	speakers, err := firstRecords(ctx, g.Speakers, 2)
	if err != nil {
		return err
	}
	eventSpeakers := make([]entities.EventSpeaker, 0, len(links))
	for _, link := range links {
		if link[1] >= len(speakers) {
			continue
		}
		eventSpeaker := g.EventSpeakers.NewRecord()
		eventSpeaker.EventID = events[link[0]].ID
		eventSpeaker.SpeakerID = speakers[link[1]].ID
		eventSpeakers = append(eventSpeakers, eventSpeaker)
	}
	return storeAll(ctx, g.EventSpeakers, eventSpeakers)
}

func firstRecords[E entities.Record](ctx context.Context, store ports.RecordStore[E], n int) ([]E, error) {
	out := make([]E, 0, n)
	for record, err := range store.Find(ctx, 0, n, "") {
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (g DemoDataGenerator) seedMembers(ctx context.Context) error {
	seeds := []struct {
		email    string
		since    time.Time
		admin    bool
		password string
	}{
		{"marcus@fihlon.ch", time.Date(2013, 2, 1, 19, 28, 44, 0, time.UTC), false, "user"},
		{"marcus@fihlon.swiss", time.Date(2013, 2, 1, 14, 32, 17, 0, time.UTC), true, "admin"},
	}
	members := make([]entities.Member, 0, len(seeds))
	for _, seed := range seeds {
		member := g.Members.NewRecord()
		member.FirstName = "Marcus"
		member.LastName = "Fihlon"
		member.Email = seed.email
		member.Address = "Winkelriedstrasse 25"
		member.ZipCode = "6003"
		member.City = "Luzern"
		member.State = "Luzern"
		member.Country = "Schweiz"
		since := seed.since
		member.MemberSince = &since
		member.Admin = seed.admin
		salt, err := g.Hasher.Salt()
		if err != nil {
			return err
		}
		member.PasswordSalt = salt
		member.PasswordHash = g.Hasher.Hash(seed.password, salt)
		member.Active = true
		members = append(members, member)
	}
	return storeAll(ctx, g.Members, members)
}

func (g DemoDataGenerator) seedSponsors(ctx context.Context) error {
	validFrom := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	validTo := time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
	seeds := []struct {
		name, website, logo string
		level               entities.SponsorLevel
	}{
		{"mimacom ag", "https://www.mimacom.com/", "https://www.jug.ch/images/sponsors/mimacom_platin.jpg", entities.SponsorLevelPlatin},
		{"Netcetera", "https://www.netcetera.com/", "https://www.jug.ch/images/sponsors/netcetera.gif", entities.SponsorLevelGold},
		{"CSS Versicherung", "https://www.css.ch/", "https://www.jug.ch/images/sponsors/CSS.png", entities.SponsorLevelSilber},
	}
	sponsors := make([]entities.Sponsor, 0, len(seeds))
	for _, seed := range seeds {
		sponsor := g.Sponsors.NewRecord()
		sponsor.Name = seed.name
		sponsor.Website = seed.website
		sponsor.Logo = seed.logo
		from, to := validFrom, validTo
		sponsor.ValidFrom = &from
		sponsor.ValidTo = &to
		sponsor.Level = seed.level
		sponsors = append(sponsors, sponsor)
	}
	return storeAll(ctx, g.Sponsors, sponsors)
}
