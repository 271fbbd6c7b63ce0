package audit

import (
	"context"
	"fmt"

	"github.com/mileusna/useragent"

	"github.com/heartmarshall/newsroom-backend/internal/authz"
	"github.com/heartmarshall/newsroom-backend/internal/domain"
	"github.com/heartmarshall/newsroom-backend/internal/service/principal"
)

// Entry is an audit entry with its client agent parsed for display.
type Entry struct {
	domain.AuditEntry
	Agent Agent
}

// Agent is the parsed form of a User-Agent header.
type Agent struct {
	Browser string
	Version string
	OS      string
	Device  string
}

// ListRecent returns the newest audit entries. Super administrators only.
// A limit outside 1..500 falls back to the default of 100 or the maximum.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	actor, err := principal.Require(ctx, s.users)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionReadAudit, authz.Resource{}).Err(); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := s.entries.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("audit.ListRecent: %w", err)
	}

	out := make([]Entry, len(rows))
	for i, row := range rows {
		out[i] = Entry{AuditEntry: row, Agent: parseAgent(row.ClientAgent)}
	}
	return out, nil
}

func parseAgent(raw string) Agent {
	if raw == "" {
		return Agent{Browser: "Unknown", OS: "Unknown", Device: "unknown"}
	}

	ua := useragent.Parse(raw)
	a := Agent{
		Browser: ua.Name,
		Version: ua.Version,
		OS:      ua.OS,
	}
	if a.Browser == "" {
		a.Browser = "Unknown"
	}
	if a.OS == "" {
		a.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		a.Device = "bot"
	case ua.Tablet:
		a.Device = "tablet"
	case ua.Mobile:
		a.Device = "mobile"
	default:
		a.Device = "desktop"
	}
	return a
}
