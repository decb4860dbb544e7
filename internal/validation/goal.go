package validation

import (
	"errors"
	"strings"

	"github.com/resolveapp/resolve/internal/model"
)

// The engine itself stays permissive; these contracts are enforced at
// the API boundary, where the original left them to the UI.

// ValidateTitle validates a goal title
func ValidateTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("title is required")
	}

	if len(trimmed) > 200 {
		return errors.New("title is too long (max 200 characters)")
	}

	return nil
}

// ValidateGoal checks the type-specific numeric fields of a new goal
func ValidateGoal(g model.Goal) error {
	err := ValidateTitle(g.Title)
	if err != nil {
		return err
	}

	if !g.Tracking.Valid() {
		return errors.New("unknown tracking type")
	}

	switch g.Tracking.Normalize() {
	case model.TrackingFrequency:
		if g.TargetFrequency <= 0 {
			return errors.New("target frequency must be positive")
		}
		switch g.FrequencyPeriod {
		case model.PeriodDay, model.PeriodWeek, model.PeriodMonth:
		default:
			return errors.New("frequency period must be day, week, or month")
		}
	case model.TrackingCumulative:
		if g.TargetValue <= 0 {
			return errors.New("target value must be positive")
		}
	case model.TrackingTarget:
		if g.TargetValue == g.StartingValue {
			return errors.New("target and starting values must differ")
		}
	}

	return nil
}

// ValidateJournalContent rejects empty journal entries
func ValidateJournalContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("journal entry content is required")
	}
	return nil
}
