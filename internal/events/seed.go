package events

import "campusdesk/internal/registration"

// SeedEvents returns the static event list loaded at process start.
func SeedEvents() []*registration.Resource {
	return []*registration.Resource{
		{ID: "EVT100", Name: "Freshers Meet", Capacity: 2},
	}
}
