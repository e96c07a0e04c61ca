// CLI integration tests for unitracker: the full add/edit/list/series
// lifecycle plus both transfer formats, exercised through the built binary.
package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestMain builds the unitracker binary once before running tests.
func TestMain(m *testing.M) {
	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "unitracker-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	unitrackerBin = filepath.Join(tmpDir, "unitracker")

	cmd := exec.Command("go", "build", "-o", unitrackerBin, "./cmd/unitracker")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestInit(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("init")

	if !strings.Contains(result.Stdout, "initialized") {
		t.Errorf("expected init confirmation, got: %s", result.Stdout)
	}
	if _, err := os.Stat(env.DBPath); err != nil {
		t.Errorf("expected store file at %s: %v", env.DBPath, err)
	}
	if _, err := os.Stat(filepath.Join(env.Config, "config.yaml")); err != nil {
		t.Errorf("expected default config.yaml: %v", err)
	}
}

func TestVersion(t *testing.T) {
	env := NewTestEnv(t)

	result := env.MustRun("version")
	if !strings.Contains(result.Stdout, "unitracker") {
		t.Errorf("expected version output, got: %s", result.Stdout)
	}
}

func TestAddShowLifecycle(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("add", "Hollow Knight",
		"--progress", "85", "--hours", "52.5",
		"--genre", "Metroidvania", "--genre", "Indie",
		"--platform", "Switch")

	result := env.MustRun("--json", "show", "Hollow Knight")
	game := ParseJSON[GameDetail](t, result.Stdout)

	if game.Progress != 85 {
		t.Errorf("expected progress 85, got %d", game.Progress)
	}
	if game.HoursPlayed != 52.5 {
		t.Errorf("expected 52.5 hours, got %g", game.HoursPlayed)
	}
	if len(game.Genres) != 2 || game.Genres[0] != "Metroidvania" {
		t.Errorf("unexpected genres: %v", game.Genres)
	}
	if game.StartDate != nil {
		t.Errorf("expected start_date null, got %v", *game.StartDate)
	}
}

func TestEditAndDelete(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("add", "Okami", "--platform", "PS2")
	env.MustRun("edit", "Okami", "--rename", "Okami HD", "--progress", "100")

	result := env.Run("show", "Okami")
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1 for renamed-away game, got %d", result.ExitCode)
	}

	show := env.MustRun("--json", "show", "Okami HD")
	game := ParseJSON[GameDetail](t, show.Stdout)
	if game.Progress != 100 {
		t.Errorf("expected progress 100, got %d", game.Progress)
	}
	if len(game.Platforms) != 1 || game.Platforms[0] != "PS2" {
		t.Errorf("expected platform tags to survive the rename, got %v", game.Platforms)
	}

	env.MustRun("delete", "Okami HD")
	result = env.Run("show", "Okami HD")
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1 after delete, got %d", result.ExitCode)
	}
}

func TestSeriesRollup(t *testing.T) {
	env := NewTestEnv(t)

	env.MustRun("add", "Mass Effect", "--hours", "40", "--series", "Mass Effect Trilogy")
	env.MustRun("add", "Mass Effect 2", "--hours", "55", "--series", "Mass Effect Trilogy")

	result := env.MustRun("--json", "series")
	series := ParseJSON[[]SeriesRow](t, result.Stdout)

	if len(series) != 1 {
		t.Fatalf("expected one series, got %d", len(series))
	}
	if series[0].NumGames != 2 {
		t.Errorf("expected 2 games, got %d", series[0].NumGames)
	}
	if series[0].TotalPlaytime != 95 {
		t.Errorf("expected 95 total hours, got %g", series[0].TotalPlaytime)
	}

	env.MustRun("delete", "Mass Effect")
	env.MustRun("delete", "Mass Effect 2")

	result = env.MustRun("--json", "series")
	series = ParseJSON[[]SeriesRow](t, result.Stdout)
	if len(series) != 0 {
		t.Errorf("expected series to disappear with its games, got %v", series)
	}
}

func TestListPagination(t *testing.T) {
	env := NewTestEnv(t)

	for _, name := range []string{"Alpha", "Bravo", "Charlie"} {
		env.MustRun("add", name)
	}

	result := env.MustRun("--json", "list")
	rows := ParseJSON[[]GameRow](t, result.Stdout)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Name != "Alpha" {
		t.Errorf("expected name order, got %v", rows)
	}

	result = env.MustRun("--json", "list", "--filter", "name=bra")
	rows = ParseJSON[[]GameRow](t, result.Stdout)
	if len(rows) != 1 || rows[0].Name != "Bravo" {
		t.Errorf("expected the filter to keep Bravo only, got %v", rows)
	}
}

func TestListUnknownColumn(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("add", "Alpha")

	result := env.Run("list", "--filter", "publisher=x")
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1 for unknown column, got %d", result.ExitCode)
	}
}

func TestSnapshotTransfer(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("add", "Celeste", "--hours", "30")

	snap := filepath.Join(env.TempDir, "backup.sqlite")
	env.MustRun("export", "snapshot", snap)

	env.MustRun("delete", "Celeste")
	env.MustRun("import", "--yes", "snapshot", snap)

	show := env.MustRun("--json", "show", "Celeste")
	game := ParseJSON[GameDetail](t, show.Stdout)
	if game.HoursPlayed != 30 {
		t.Errorf("expected the snapshot to restore Celeste, got %+v", game)
	}
}

func TestDocumentTransfer(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("add", "Dark Souls", "--hours", "80", "--series", "Souls",
		"--genre", "Action RPG", "--platform", "PC")

	doc := filepath.Join(env.TempDir, "collection.json")
	env.MustRun("export", "document", doc)

	env.MustRun("delete", "Dark Souls")
	env.MustRun("import", "--yes", "document", doc)

	show := env.MustRun("--json", "show", "Dark Souls")
	game := ParseJSON[GameDetail](t, show.Stdout)
	if game.SeriesName == nil || *game.SeriesName != "Souls" {
		t.Errorf("expected series membership to round trip, got %+v", game)
	}
	if len(game.Genres) != 1 || game.Genres[0] != "Action RPG" {
		t.Errorf("expected genre tags to round trip, got %v", game.Genres)
	}
}

func TestDocumentExportEmptyFails(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("init")

	result := env.Run("export", "document", filepath.Join(env.TempDir, "out.json"))
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1 for empty-collection export, got %d", result.ExitCode)
	}
}

func TestSnapshotSameFileFails(t *testing.T) {
	env := NewTestEnv(t)
	env.MustRun("add", "Celeste")

	result := env.Run("export", "snapshot", env.DBPath)
	if result.ExitCode != 1 {
		t.Errorf("expected exit 1 for same-file export, got %d", result.ExitCode)
	}
}
