package tournament

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	ErrRegistrationClosed = errors.New("tournament registration is closed")
	ErrTournamentFull     = errors.New("tournament is full")
	ErrAlreadyRegistered  = errors.New("user is already registered")
	ErrTournamentActive   = errors.New("tournament is active")
	ErrNotRegistered      = errors.New("user is not registered")
	ErrInvalidTransition  = errors.New("invalid tournament status transition")
	ErrSlugTaken          = errors.New("tournament slug is already taken")
)

type Status string

const (
	StatusUpcoming           Status = "upcoming"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusActive             Status = "active"
	StatusFinished           Status = "finished"
	StatusCancelled          Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusUpcoming:
		return StatusUpcoming, nil
	case StatusRegistrationOpen:
		return StatusRegistrationOpen, nil
	case StatusRegistrationClosed:
		return StatusRegistrationClosed, nil
	case StatusActive:
		return StatusActive, nil
	case StatusFinished:
		return StatusFinished, nil
	case StatusCancelled:
		return StatusCancelled, nil
	default:
		return "", fmt.Errorf("unknown tournament status %q", value)
	}
}

type Tournament struct {
	ID                int64
	Name              string
	Slug              string
	Description       string
	Status            Status
	StatusOverridden  bool
	StartDate         time.Time
	EndDate           time.Time
	RegistrationStart *time.Time
	RegistrationEnd   *time.Time
	MaxParticipants   *int
	ParticipantsCount int
	IsPublic          bool
	IsFeatured        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRegistrationWindow reports whether explicit registration dates are configured.
func (t Tournament) HasRegistrationWindow() bool {
	return t.RegistrationStart != nil || t.RegistrationEnd != nil
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tournament name is required")
	}
	if !slugPattern.MatchString(t.Slug) {
		return fmt.Errorf("tournament slug %q must be lowercase words separated by dashes", t.Slug)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("tournament start and end date are required")
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("end date must not be before start date")
	}
	if t.RegistrationStart != nil && t.RegistrationEnd != nil && t.RegistrationEnd.Before(*t.RegistrationStart) {
		return fmt.Errorf("registration end must not be before registration start")
	}
	if t.RegistrationEnd != nil && t.StartDate.Before(*t.RegistrationEnd) {
		return fmt.Errorf("registration end must not be after start date")
	}
	if t.RegistrationStart != nil && t.StartDate.Before(*t.RegistrationStart) {
		return fmt.Errorf("registration start must not be after start date")
	}
	if t.MaxParticipants != nil && *t.MaxParticipants < 1 {
		return fmt.Errorf("max participants must be >= 1")
	}

	return nil
}

type ParticipantStatus string

const (
	ParticipantActive    ParticipantStatus = "active"
	ParticipantWithdrawn ParticipantStatus = "withdrawn"
)

type Participant struct {
	TournamentID int64
	UserID       string
	Status       ParticipantStatus
	RegisteredAt time.Time
	WithdrawnAt  *time.Time
}

type ListFilter struct {
	PublicOnly   bool
	FeaturedOnly bool
	Status       Status
}
