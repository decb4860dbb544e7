// Package feedback is the celebration/haptic collaborator. Calls are
// advisory one-liners fired after a mutation commits; the engine never
// waits on them and never cares if they fail.
package feedback

import (
	"log/slog"
)

// Logger is the default implementation: it only narrates. A real client
// would drive haptics or confetti here.
type Logger struct{}

func (Logger) Celebrate() {
	slog.Info("feedback", "kind", "celebrate")
}

func (Logger) LightFeedback() {
	slog.Debug("feedback", "kind", "light")
}

func (Logger) ProgressFeedback() {
	slog.Debug("feedback", "kind", "progress")
}

// None discards all feedback.
type None struct{}

func (None) Celebrate()        {}
func (None) LightFeedback()    {}
func (None) ProgressFeedback() {}
