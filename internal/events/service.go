// Package events instantiates the registration engine for campus event
// registration with waitlisting.
package events

import (
	"context"

	"campusdesk/internal/registration"
)

// Service wraps the shared engine for event registration.
type Service struct {
	engine *registration.Engine
}

func NewService(engine *registration.Engine) *Service {
	return &Service{engine: engine}
}

// RegisterStudent signs the student up for the event, waitlisting when full.
func (s *Service) RegisterStudent(ctx context.Context, studentID, eventID string) (registration.Result, error) {
	return s.engine.Register(ctx, eventID, studentID)
}
