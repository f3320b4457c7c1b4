package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is immutable reference data referenced by matches.
type Team struct {
	ID             int64
	Name           string
	ShortName      string
	Country        string
	LogoURL        string
	PrimaryColor   string
	SecondaryColor string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(strings.TrimSpace(t.ShortName)) > 10 {
		return fmt.Errorf("team short name must be at most 10 characters")
	}

	return nil
}
