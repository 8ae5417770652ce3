package export

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteWriter(t *testing.T) {
	w, err := OpenSQLite(filepath.Join(t.TempDir(), "players.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer w.Close()

	b := Build(testEvaluator(), nil)
	ctx := context.Background()

	// Writing twice must not duplicate rows.
	for i := 0; i < 2; i++ {
		if err := w.Write(ctx, b); err != nil {
			t.Fatalf("Write() #%d failed: %v", i+1, err)
		}
	}

	players, categories, err := w.Counts(ctx)
	if err != nil {
		t.Fatalf("Counts() failed: %v", err)
	}
	if players != 4 || categories != 24 {
		t.Errorf("Expected 4 players and 24 categories, got %d and %d", players, categories)
	}

	var grade, team string
	if err := w.db.QueryRow("SELECT overall_grade, team FROM players WHERE slug = ?", "sebastian-aho-2").Scan(&grade, &team); err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if team != "NYI" {
		t.Errorf("Expected NYI for the second Aho, got %s", team)
	}
	want, _ := b.Lookup("sebastian-aho-2")
	if grade != want.Grade {
		t.Errorf("Expected grade %s, got %s", want.Grade, grade)
	}
}
