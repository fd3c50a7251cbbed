package adminconsoleservice

import (
	"log/slog"

	httpadapter "komunumo/contexts/internal-ops/admin-console-service/adapters/http"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/instrumented"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/memory"
	"komunumo/contexts/internal-ops/admin-console-service/adapters/security"
	"komunumo/contexts/internal-ops/admin-console-service/application"
	"komunumo/contexts/internal-ops/admin-console-service/domain/entities"
	"komunumo/contexts/internal-ops/admin-console-service/ports"
	httptransport "komunumo/contexts/internal-ops/admin-console-service/transport/http"
)

type (
	SponsorResource = httpadapter.Resource[entities.Sponsor, httptransport.SponsorRequest, httptransport.SponsorResponse]
	SpeakerResource = httpadapter.Resource[entities.Speaker, httptransport.SpeakerRequest, httptransport.SpeakerResponse]
	EventResource   = httpadapter.Resource[entities.Event, httptransport.EventRequest, httptransport.EventResponse]
	MemberResource  = httpadapter.Resource[entities.Member, httptransport.MemberRequest, httptransport.MemberResponse]
)

type Module struct {
	Sponsors SponsorResource
	Speakers SpeakerResource
	Events   EventResource
	Members  MemberResource
	Audit    httpadapter.AuditHandler
	Seeder   application.DemoDataGenerator
	Store    *memory.Store
}

type Dependencies struct {
	Sponsors      ports.RecordStore[entities.Sponsor]
	Speakers      ports.RecordStore[entities.Speaker]
	Events        ports.RecordStore[entities.Event]
	EventSpeakers ports.RecordStore[entities.EventSpeaker]
	Members       ports.RecordStore[entities.Member]
	AuditLogs     ports.AuditRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Hasher        ports.PasswordHasher
	Metrics       ports.MetricsRecorder
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	logger := application.ResolveLogger(deps.Logger)
	if deps.AuditLogs == nil || deps.Clock == nil || deps.IDGenerator == nil {
		fallback := memory.NewStore()
		if deps.AuditLogs == nil {
			deps.AuditLogs = fallback
		}
		if deps.Clock == nil {
			deps.Clock = fallback
		}
		if deps.IDGenerator == nil {
			deps.IDGenerator = fallback
		}
	}
	if deps.Hasher == nil {
		deps.Hasher = security.PBKDF2Hasher{}
	}
	sponsors := instrumented.Wrap(deps.Sponsors, deps.Metrics)
	speakers := instrumented.Wrap(deps.Speakers, deps.Metrics)
	events := instrumented.Wrap(deps.Events, deps.Metrics)
	eventSpeakers := instrumented.Wrap(deps.EventSpeakers, deps.Metrics)
	members := instrumented.Wrap(deps.Members, deps.Metrics)

	trail := application.AuditTrail{
		Repo:        deps.AuditLogs,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      logger,
	}

	return Module{
		Sponsors: SponsorResource{
			Records:    sponsors,
			Audit:      trail,
			ToResponse: httptransport.NewSponsorResponse,
			Logger:     logger,
		},
		Speakers: SpeakerResource{
			Records:    speakers,
			Audit:      trail,
			ToResponse: httptransport.NewSpeakerResponse,
			Logger:     logger,
		},
		Events: EventResource{
			Records:    events,
			Audit:      trail,
			ToResponse: httptransport.NewEventResponse,
			Logger:     logger,
		},
		Members: MemberResource{
			Records:    members,
			Audit:      trail,
			ToResponse: httptransport.NewMemberResponse,
			Logger:     logger,
		},
		Audit: httpadapter.AuditHandler{Trail: trail},
		Seeder: application.DemoDataGenerator{
			Speakers:      speakers,
			Events:        events,
			EventSpeakers: eventSpeakers,
			Members:       members,
			Sponsors:      sponsors,
			Hasher:        deps.Hasher,
			Logger:        logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Sponsors:      memory.NewRecordStore[entities.Sponsor, *entities.Sponsor](entities.NewSponsor),
		Speakers:      memory.NewRecordStore[entities.Speaker, *entities.Speaker](entities.NewSpeaker),
		Events:        memory.NewRecordStore[entities.Event, *entities.Event](entities.NewEvent),
		EventSpeakers: memory.NewRecordStore[entities.EventSpeaker, *entities.EventSpeaker](entities.NewEventSpeaker),
		Members:       memory.NewRecordStore[entities.Member, *entities.Member](entities.NewMember),
		AuditLogs:     store,
		Clock:         store,
		IDGenerator:   store,
		Hasher:        security.PBKDF2Hasher{},
		Logger:        logger,
	})
	module.Store = store
	return module
}
