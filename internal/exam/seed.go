package exam

// SeedTimetable returns the exam schedule loaded at process start, keyed by
// course code.
func SeedTimetable() map[string]Slot {
	return map[string]Slot{
		"CSE101": {CourseCode: "CSE101", Date: "2026-05-12", Time: "09:00", Venue: "Hall A"},
		"MTH101": {CourseCode: "MTH101", Date: "2026-05-14", Time: "14:00", Venue: "Hall B"},
	}
}
