// Package cli implements the command surface. Every command operates on
// the shared Context and prints plain text; the interactive TUI is the
// default command.
package cli

import (
	"fmt"
	"strings"
	"time"

	"holterdesk/internal/engine"
	"holterdesk/internal/models"
)

type Context struct {
	Engine *engine.Engine
}

// parseInstall accepts either a bare day or a day with wall-clock time.
func parseInstall(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(models.DateTimeFormat, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(models.DateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
	}
	return t, nil
}

func statusLabel(s models.ResourceStatus) string {
	switch s {
	case models.ResourceInUse:
		return "in use"
	case models.ResourceBroken:
		return "broken"
	default:
		return "available"
	}
}
