// Package orgdetect classifies meetings into organizations by scoring meeting
// metadata against configurable signals: calendar participant domains, title
// keywords, and people/company data, evaluated in fixed priority order.
package orgdetect

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scribelabs/scribe-cli/pkg/logging"
)

// OrganizationConfig describes the detection signals for one organization.
// Loaded once and read-only during detection.
type OrganizationConfig struct {
	// Name is the label returned when this organization matches.
	Name string `json:"name"`

	// TitleKeywords are case-insensitive substrings matched against the
	// meeting title.
	TitleKeywords []string `json:"titleKeywords"`

	// EmailDomains are matched by containment against participant email
	// addresses.
	EmailDomains []string `json:"emailDomains"`

	// EmailAddresses are exact-match participant addresses.
	EmailAddresses []string `json:"emailAddresses,omitempty"`

	// CompanyNames are matched by substring against enriched company data.
	CompanyNames []string `json:"companyNames,omitempty"`
}

// DetectorConfig holds the ordered organization list, the fallback label, and
// the per-strategy feature toggles. Constructed once, never mutated.
type DetectorConfig struct {
	// Organizations is evaluated in order; earlier entries win ties.
	Organizations []OrganizationConfig `json:"organizations"`

	// DefaultOrganization is returned when no enabled strategy matches.
	DefaultOrganization string `json:"defaultOrganization"`

	// Strategy toggles. A disabled strategy is skipped entirely; its
	// signals never influence the result.
	UseCalendarData bool `json:"useCalendarData"`
	UsePeopleData   bool `json:"usePeopleData"`
	UseTitleKeywords bool `json:"useTitleKeywords"`
}

// DefaultDetectorConfig returns the built-in configuration used when no config
// file is supplied or the supplied file cannot be parsed.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		Organizations: []OrganizationConfig{
			{
				Name:          "Work",
				TitleKeywords: []string{"standup", "sprint", "1:1", "retro"},
				EmailDomains:  []string{"scribe.ai"},
			},
			{
				Name:          "Personal",
				TitleKeywords: []string{"catch up", "coffee"},
				EmailDomains:  []string{"gmail.com"},
			},
		},
		DefaultOrganization: "Default",
		UseCalendarData:     true,
		UsePeopleData:       true,
		UseTitleKeywords:    true,
	}
}

// LoadDetectorConfig reads a DetectorConfig from a JSON file. A missing or
// malformed file falls back to the built-in default with a logged warning:
// detection must never be fatally blocked by a bad config file.
func LoadDetectorConfig(path string, log logging.Logger) DetectorConfig {
	if log == nil {
		log = logging.NewNopLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("organization config unreadable, using built-in defaults",
			logging.F("path", path),
			logging.Err(err),
		)
		return DefaultDetectorConfig()
	}

	var cfg DetectorConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn("organization config malformed, using built-in defaults",
			logging.F("path", path),
			logging.Err(err),
		)
		return DefaultDetectorConfig()
	}

	if err := cfg.validate(); err != nil {
		log.Warn("organization config invalid, using built-in defaults",
			logging.F("path", path),
			logging.Err(err),
		)
		return DefaultDetectorConfig()
	}

	return cfg
}

func (c DetectorConfig) validate() error {
	if c.DefaultOrganization == "" {
		return fmt.Errorf("defaultOrganization is required")
	}
	for i, org := range c.Organizations {
		if org.Name == "" {
			return fmt.Errorf("organizations[%d]: name is required", i)
		}
	}
	return nil
}
