package entities

import "time"

type SponsorLevel string

const (
	SponsorLevelPlatin SponsorLevel = "PLATIN"
	SponsorLevelGold   SponsorLevel = "GOLD"
	SponsorLevelSilber SponsorLevel = "SILBER"
)

func (l SponsorLevel) Valid() bool {
	switch l {
	case "", SponsorLevelPlatin, SponsorLevelGold, SponsorLevelSilber:
		return true
	default:
		return false
	}
}

type Sponsor struct {
	ID        int64
	Name      string
	Website   string
	Logo      string
	Level     SponsorLevel
	ValidFrom *time.Time
	ValidTo   *time.Time
}

func NewSponsor() Sponsor {
	return Sponsor{Name: "", Website: "", Logo: ""}
}

func (s Sponsor) RecordID() int64          { return s.ID }
func (s Sponsor) RecordKind() string       { return "sponsor" }
func (s Sponsor) DisplayName() string      { return s.Name }
func (s Sponsor) SearchableText() []string { return []string{s.Name} }
func (s *Sponsor) SetRecordID(id int64)    { s.ID = id }
