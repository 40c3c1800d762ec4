package models

// All returns every model registered for auto migration.
func All() []any {
	return []any{
		&Track{},
		&Analysis{},
	}
}
