package content

import (
	"context"
	"fmt"
	"strings"
)

// Kind identifies the type of a content record.
type Kind string

const (
	KindTeam       Kind = "team"
	KindTournament Kind = "tournament"
	KindMatch      Kind = "match"
)

func ParseKind(value string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(value))) {
	case KindTeam:
		return KindTeam, nil
	case KindTournament:
		return KindTournament, nil
	case KindMatch:
		return KindMatch, nil
	default:
		return "", fmt.Errorf("unknown content kind %q", value)
	}
}

// Ref is display metadata for one content record.
type Ref struct {
	Kind     Kind
	ID       int64
	Title    string
	Subtitle string
}

// Resolver fetches refs of a single kind.
type Resolver interface {
	Resolve(ctx context.Context, id int64) (Ref, bool, error)
}
