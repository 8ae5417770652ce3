package dataset

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

const testHeader = "playerId,season,name,team,position,situation,games_played,icetime,gameScore," +
	"onIce_xGoalsPercentage,onIce_corsiPercentage,I_F_primaryAssists,I_F_points," +
	"I_F_highDangerxGoals,I_F_hits,I_F_takeaways,shotsBlockedByPlayer"

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skaters.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadFiltersSituation(t *testing.T) {
	path := writeTestCSV(t, testHeader+`
8478402,2024,Connor McDavid,EDM,C,other,67,1200,30,0.5,0.5,2,4,1.0,3,1,2
8478402,2024,Connor McDavid,EDM,C,all,67,85500,98.5,0.58,0.56,54,100.0,12.3,30.0,60,20
8478402,2024,Connor McDavid,EDM,C,5on5,67,60000,70,0.6,0.55,30,60,9.0,25,40,15
8477934,2024,Leon Draisaitl,EDM,C,all,71,90000,95,0.55,0.53,40,106,18.1,40,35,28
`)

	ds, err := Load(path, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("Expected 2 skaters, got %d", ds.Len())
	}

	mcdavid := ds.Skaters()[0]
	if mcdavid.Name != "Connor McDavid" || mcdavid.Team != "EDM" || mcdavid.Position != "C" {
		t.Errorf("Unexpected identity fields: %+v", mcdavid)
	}
	if mcdavid.GamesPlayed != 67 {
		t.Errorf("Expected 67 games, got %d", mcdavid.GamesPlayed)
	}
	if mcdavid.Points != 100 {
		t.Errorf("Expected 100 points, got %v", mcdavid.Points)
	}
	if mcdavid.IceTimeMinutes() != 1425 {
		t.Errorf("Expected 1425 minutes, got %v", mcdavid.IceTimeMinutes())
	}
	if mcdavid.Line != 3 {
		t.Errorf("Expected source line 3, got %d", mcdavid.Line)
	}

	stats := ds.Stats()
	if stats.RowsRead != 4 || stats.SkippedSituation != 2 || stats.Kept != 2 {
		t.Errorf("Unexpected load stats: %+v", stats)
	}
}

func TestLoadIceTimeFilter(t *testing.T) {
	// 30000s = 500 minutes exactly, 29940s = 499 minutes
	path := writeTestCSV(t, testHeader+`
1,2024,Exactly Threshold,TOR,D,all,40,30000,10,0.5,0.5,2,10,1.0,3,1,2
2,2024,Just Below,TOR,D,all,40,29940,10,0.5,0.5,2,10,1.0,3,1,2
3,2024,Call Up,TOR,L,all,5,3000,1,0.5,0.5,0,1,0.1,3,1,2
`)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"disabled", Options{}, []string{"Exactly Threshold", "Just Below", "Call Up"}},
		{"default threshold", Options{FilterIceTime: true}, []string{"Exactly Threshold"}},
		{"custom threshold", Options{FilterIceTime: true, MinIceTimeMinutes: 499}, []string{"Exactly Threshold", "Just Below"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Logger = quietLogger()
			ds, err := Load(path, tt.opts)
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			var got []string
			for _, s := range ds.Skaters() {
				got = append(got, s.Name)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoadSemicolonDelimited(t *testing.T) {
	content := strings.ReplaceAll(testHeader, ",", ";") + "\n" +
		"1;2024;Cale Makar;COL;D;all;80;110000;70;0.6;0.57;30;92;5.5;40;50;120\n"
	path := writeTestCSV(t, content)

	ds, err := Load(path, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Len() != 1 || ds.Skaters()[0].BlockedShots != 120 {
		t.Errorf("Expected one skater with 120 blocks, got %+v", ds.Skaters())
	}
	if ds.Stats().Delimiter != ';' {
		t.Errorf("Expected ';' delimiter, got %q", ds.Stats().Delimiter)
	}
}

func TestLoadExplicitDelimiter(t *testing.T) {
	content := strings.ReplaceAll(testHeader, ",", ";") + "\n" +
		"1;2024;Cale Makar;COL;D;all;80;110000;70;0.6;0.57;30;92;5.5;40;50;120\n"
	path := writeTestCSV(t, content)

	ds, err := Load(path, Options{Delimiter: ';', Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Len() != 1 || ds.Stats().Delimiter != ';' {
		t.Errorf("Expected one skater read with ';', got %d with %q", ds.Len(), ds.Stats().Delimiter)
	}

	// Forcing the wrong separator reads the header as a single column.
	var schemaErr *SchemaError
	if _, err := Load(path, Options{Delimiter: ',', Logger: quietLogger()}); !errors.As(err, &schemaErr) {
		t.Errorf("Expected SchemaError with ',', got %v", err)
	}

	var loadErr *LoadError
	if _, err := Load(path, Options{Delimiter: ':', Logger: quietLogger()}); !errors.As(err, &loadErr) {
		t.Errorf("Expected LoadError for unsupported delimiter, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{Logger: quietLogger()})

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTestCSV(t, "")

	var loadErr *LoadError
	if _, err := Load(path, Options{Logger: quietLogger()}); !errors.As(err, &loadErr) {
		t.Fatalf("Expected LoadError, got %v", err)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	header := strings.Replace(testHeader, ",I_F_hits", "", 1)
	header = strings.Replace(header, ",gameScore", "", 1)
	path := writeTestCSV(t, header+"\n")

	_, err := Load(path, Options{Logger: quietLogger()})

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected SchemaError, got %v", err)
	}
	if strings.Join(schemaErr.Missing, ",") != "gameScore,I_F_hits" {
		t.Errorf("Expected missing gameScore and I_F_hits, got %v", schemaErr.Missing)
	}
}

func TestLoadMalformedRecord(t *testing.T) {
	path := writeTestCSV(t, testHeader+`
1,2024,Good Row,TOR,D,all,40,30000,10,0.5,0.5,2,10,1.0,3,1,2
2,2024,Bad Row,TOR,D,all,40,30000,10,0.5,0.5,2,ten,1.0,3,1,2
`)

	_, err := Load(path, Options{Logger: quietLogger()})

	var recErr *MalformedRecordError
	if !errors.As(err, &recErr) {
		t.Fatalf("Expected MalformedRecordError, got %v", err)
	}
	if recErr.Field != ColPoints || recErr.Line != 3 || recErr.Player != "Bad Row" {
		t.Errorf("Unexpected error details: %+v", recErr)
	}
}

func TestLoadIgnoresMalformedNonAllRows(t *testing.T) {
	path := writeTestCSV(t, testHeader+`
1,2024,Some Guy,TOR,D,5on4,40,n/a,10,0.5,0.5,2,10,1.0,3,1,2
1,2024,Some Guy,TOR,D,all,40,30000,10,0.5,0.5,2,10,1.0,3,1,2
`)

	ds, err := Load(path, Options{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Expected 1 skater, got %d", ds.Len())
	}
}
