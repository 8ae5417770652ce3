package profiler

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullHeader = "name,team,position,games_played,icetime,situation,gameScore,I_F_points,I_F_highDangerxGoals,I_F_primaryAssists,I_F_takeaways,I_F_hits,shotsBlockedByPlayer,onIce_xGoalsPercentage,onIce_corsiPercentage"

func createTestCSV(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "test.csv")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test CSV: %v", err)
	}
	return filename
}

func TestCSVProfiler(t *testing.T) {
	file := createTestCSV(t, strings.Join([]string{
		fullHeader,
		"Connor McDavid,EDM,C,76,100000,all,90,132,12,60,70,20,15,0.6,0.58",
		"Connor McDavid,EDM,C,76,60000,5on5,50,80,8,30,40,15,10,0.62,0.6",
		"Ryan O'Reilly,NSH,C,82,80000,all,40,52,6.5,15,45,30,n/a,0.49,0.48",
		",NSH,C,82,80000,all,40,52,6.5,15,45,30,35,0.49,",
	}, "\n"))

	profiler := NewCSVProfiler(file)
	if err := profiler.Profile(); err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}

	if profiler.Delimiter != ',' {
		t.Errorf("Expected comma delimiter, got %q", profiler.Delimiter)
	}
	if got := strings.Join(profiler.SituationNames(), ","); got != "5on5,all" {
		t.Errorf("Expected situations 5on5,all, got %s", got)
	}

	cols := profiler.Columns()
	if len(cols) != 15 || cols[0].Name != "name" {
		t.Fatalf("Expected 15 columns starting with name, got %d", len(cols))
	}

	name := profiler.ColumnStats["name"]
	if name.NullCount != 1 || name.DistinctCount != 2 {
		t.Errorf("Expected 1 null and 2 distinct names, got %d and %d", name.NullCount, name.DistinctCount)
	}
	blocks := profiler.ColumnStats["shotsBlockedByPlayer"]
	if blocks.InvalidCount != 1 || blocks.Min != 10 || blocks.Max != 35 {
		t.Errorf("Unexpected blocks stats: %+v", blocks)
	}

	metrics := profiler.CalculateQuality()
	if metrics.TotalRows != 4 || metrics.SkaterRows != 3 {
		t.Errorf("Expected 4 rows and 3 skater rows, got %d and %d", metrics.TotalRows, metrics.SkaterRows)
	}

	// 2 blanks out of 60 cells; 1 unparseable plus 1 blank numeric cell.
	if math.Abs(metrics.NullPercentage-2.0/60.0) > 1e-9 {
		t.Errorf("Expected null percentage %f, got %f", 2.0/60.0, metrics.NullPercentage)
	}
	if math.Abs(metrics.InvalidPercentage-2.0/60.0) > 1e-9 {
		t.Errorf("Expected invalid percentage %f, got %f", 2.0/60.0, metrics.InvalidPercentage)
	}
	if metrics.Clean() {
		t.Error("Expected table with invalid cells to be reported unclean")
	}
}

func TestCSVProfilerMissingColumns(t *testing.T) {
	file := createTestCSV(t, "name;team;situation\nA;B;all\n")

	profiler := NewCSVProfiler(file)
	if err := profiler.Profile(); err != nil {
		t.Fatalf("Profile() failed: %v", err)
	}
	if profiler.Delimiter != ';' {
		t.Errorf("Expected semicolon delimiter, got %q", profiler.Delimiter)
	}
	if len(profiler.MissingColumns) != 12 {
		t.Errorf("Expected 12 missing columns, got %d", len(profiler.MissingColumns))
	}
	metrics := profiler.CalculateQuality()
	if metrics.MissingColumns != 12 || metrics.Clean() {
		t.Errorf("Unexpected metrics: %+v", metrics)
	}
}

func TestCSVProfilerMissingFile(t *testing.T) {
	profiler := NewCSVProfiler(filepath.Join(t.TempDir(), "missing.csv"))
	if err := profiler.Profile(); err == nil {
		t.Error("Expected error for missing file")
	}
}
