package database

import "testing"

func TestMigrationsAreOrderedAndReversible(t *testing.T) {
	migrations := Migrations()
	if len(migrations) == 0 {
		t.Fatal("expected migrations")
	}

	last := 0
	for _, m := range migrations {
		if m.Version <= last {
			t.Fatalf("migration %d is not strictly after %d", m.Version, last)
		}
		if m.Up == nil || m.Down == nil {
			t.Fatalf("migration %d is missing up or down", m.Version)
		}
		if m.Description == "" {
			t.Fatalf("migration %d has no description", m.Version)
		}
		last = m.Version
	}
}
