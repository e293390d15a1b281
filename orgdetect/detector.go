package orgdetect

import (
	"strings"

	"github.com/scribelabs/scribe-cli/pkg/logging"
)

// Meeting is the subset of a Scribe document the detector inspects.
// Consumed read-only.
type Meeting struct {
	Title               string         `json:"title"`
	GoogleCalendarEvent *CalendarEvent `json:"google_calendar_event,omitempty"`
	People              *PeopleData    `json:"people,omitempty"`
}

// CalendarEvent carries the calendar signals for a meeting.
type CalendarEvent struct {
	Creator   *Participant  `json:"creator,omitempty"`
	Attendees []Participant `json:"attendees,omitempty"`
}

// Participant is one calendar participant.
type Participant struct {
	Email string `json:"email"`
}

// PeopleData carries enriched people/company signals for a meeting.
type PeopleData struct {
	Creator   *Person  `json:"creator,omitempty"`
	Attendees []Person `json:"attendees,omitempty"`
}

// Person is one enriched participant record.
type Person struct {
	Name    string         `json:"name,omitempty"`
	Email   string         `json:"email,omitempty"`
	Details *PersonDetails `json:"details,omitempty"`
}

// PersonDetails holds enrichment details for a person.
type PersonDetails struct {
	Company *Company `json:"company,omitempty"`
}

// Company is the enriched company record for a person.
type Company struct {
	Name string `json:"name,omitempty"`
}

// Detector evaluates meetings against a DetectorConfig.
type Detector struct {
	cfg DetectorConfig
	log logging.Logger
}

// NewDetector creates a Detector. A nil logger disables logging.
func NewDetector(cfg DetectorConfig, log logging.Logger) *Detector {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Detector{cfg: cfg, log: log}
}

// Detect returns the organization label for a meeting. The three strategies
// run in fixed priority order - calendar data, title keywords, people data -
// short-circuiting at the first enabled strategy that produces a match. A nil
// meeting or no match yields the configured default.
func (d *Detector) Detect(meeting *Meeting) string {
	if meeting == nil {
		return d.cfg.DefaultOrganization
	}

	if d.cfg.UseCalendarData && meeting.GoogleCalendarEvent != nil {
		if org, ok := d.detectFromCalendar(meeting.GoogleCalendarEvent); ok {
			d.log.Debug("organization detected from calendar data",
				logging.F("organization", org))
			return org
		}
	}

	if d.cfg.UseTitleKeywords {
		if org, ok := d.detectFromTitle(meeting.Title); ok {
			d.log.Debug("organization detected from title keywords",
				logging.F("organization", org))
			return org
		}
	}

	if d.cfg.UsePeopleData && meeting.People != nil {
		if org, ok := d.detectFromPeople(meeting.People); ok {
			d.log.Debug("organization detected from people data",
				logging.F("organization", org))
			return org
		}
	}

	return d.cfg.DefaultOrganization
}

// detectFromCalendar inspects the event creator first, then falls back to an
// attendee-domain majority count.
func (d *Detector) detectFromCalendar(event *CalendarEvent) (string, bool) {
	if event.Creator != nil && event.Creator.Email != "" {
		if org, ok := d.matchEmail(event.Creator.Email); ok {
			return org, true
		}
	}

	emails := make([]string, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		emails = append(emails, a.Email)
	}
	return d.attendeeDomainMajority(emails)
}

// detectFromTitle returns the first configured organization with any keyword
// appearing in the title, case-insensitively.
func (d *Detector) detectFromTitle(title string) (string, bool) {
	if title == "" {
		return "", false
	}
	titleLower := strings.ToLower(title)
	for _, org := range d.cfg.Organizations {
		for _, keyword := range org.TitleKeywords {
			if keyword != "" && strings.Contains(titleLower, strings.ToLower(keyword)) {
				return org.Name, true
			}
		}
	}
	return "", false
}

// detectFromPeople checks the creator's company name, then the creator email,
// then the attendee-domain majority.
func (d *Detector) detectFromPeople(people *PeopleData) (string, bool) {
	if people.Creator != nil {
		if people.Creator.Details != nil && people.Creator.Details.Company != nil {
			if org, ok := d.matchCompany(people.Creator.Details.Company.Name); ok {
				return org, true
			}
		}
		if people.Creator.Email != "" {
			if org, ok := d.matchEmail(people.Creator.Email); ok {
				return org, true
			}
		}
	}

	emails := make([]string, 0, len(people.Attendees))
	for _, a := range people.Attendees {
		emails = append(emails, a.Email)
	}
	return d.attendeeDomainMajority(emails)
}

// matchEmail matches an email exactly against configured addresses, then by
// domain containment.
func (d *Detector) matchEmail(email string) (string, bool) {
	emailLower := strings.ToLower(strings.TrimSpace(email))
	if emailLower == "" {
		return "", false
	}

	for _, org := range d.cfg.Organizations {
		for _, addr := range org.EmailAddresses {
			if emailLower == strings.ToLower(addr) {
				return org.Name, true
			}
		}
	}
	for _, org := range d.cfg.Organizations {
		for _, domain := range org.EmailDomains {
			if domain != "" && strings.Contains(emailLower, strings.ToLower(domain)) {
				return org.Name, true
			}
		}
	}
	return "", false
}

// matchCompany matches a company name by case-insensitive substring.
func (d *Detector) matchCompany(company string) (string, bool) {
	companyLower := strings.ToLower(strings.TrimSpace(company))
	if companyLower == "" {
		return "", false
	}
	for _, org := range d.cfg.Organizations {
		for _, name := range org.CompanyNames {
			if name != "" && strings.Contains(companyLower, strings.ToLower(name)) {
				return org.Name, true
			}
		}
	}
	return "", false
}

// attendeeDomainMajority counts attendee email matches per organization and
// returns the organization with the strictly highest count. Ties resolve to
// the first organization in configured order holding the max value.
func (d *Detector) attendeeDomainMajority(emails []string) (string, bool) {
	counts := make(map[string]int, len(d.cfg.Organizations))
	for _, email := range emails {
		emailLower := strings.ToLower(strings.TrimSpace(email))
		if emailLower == "" {
			continue
		}
		for _, org := range d.cfg.Organizations {
			for _, domain := range org.EmailDomains {
				if domain != "" && strings.Contains(emailLower, strings.ToLower(domain)) {
					counts[org.Name]++
					break
				}
			}
		}
	}

	best := ""
	bestCount := 0
	for _, org := range d.cfg.Organizations {
		if c := counts[org.Name]; c > bestCount {
			best = org.Name
			bestCount = c
		}
	}
	if bestCount == 0 {
		return "", false
	}
	return best, true
}
