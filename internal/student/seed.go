package student

// SeedStudents returns the directory entries loaded at process start.
func SeedStudents() []Student {
	return []Student{
		{ID: "s001", Name: "Alice Example", Email: "alice@university.example"},
		{ID: "s002", Name: "Bob Example", Email: "bob@university.example"},
	}
}
