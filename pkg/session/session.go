package session

import (
	"time"

	"github.com/rockysnow7/cyoa/pkg/story"
)

// Session is one independent play-through: a unique opaque identifier, an
// independently owned environment, the current scene name, and the
// last-activity timestamp used by Sweep.
type Session struct {
	ID         string            `json:"id"`
	SceneName  string            `json:"scene"`
	Env        story.Environment `json:"env"`
	LastActive time.Time         `json:"last_active"`
}

// Clone returns an independent copy, with its own environment.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Env = s.Env.Clone()
	return &out
}
