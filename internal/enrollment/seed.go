package enrollment

import "campusdesk/internal/registration"

// SeedCourses returns the static course catalog loaded at process start.
func SeedCourses() []*registration.Resource {
	return []*registration.Resource{
		{ID: "CSE101", Name: "Intro to Computer Science", Capacity: 2},
		{ID: "MTH101", Name: "Calculus I", Capacity: 1},
	}
}
