package hostel

import "campusdesk/internal/registration"

// SeedHostels returns the static hostel inventory. Pre-seeded holders model
// rooms already occupied before the service came up.
func SeedHostels() []*registration.Resource {
	return []*registration.Resource{
		{
			ID:       "H1",
			Name:     "Maple Hostel",
			Capacity: 4,
			Holders:  []string{"resident-h1-001", "resident-h1-002"},
		},
		{
			ID:       "H2",
			Name:     "Pine Hostel",
			Capacity: 3,
		},
	}
}
