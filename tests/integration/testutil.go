// Package integration provides CLI integration tests for unitracker.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var (
	// unitrackerBin is the path to the built unitracker binary.
	unitrackerBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// TestEnv provides an isolated test environment with its own config
// directory and store file.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DBPath  string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build unitracker: %v", buildErr)
	}
	if unitrackerBin == "" {
		t.Fatal("unitracker binary not built (unitrackerBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DBPath:  filepath.Join(tempDir, "games.sqlite"),
	}
}

// CmdResult holds the result of a unitracker command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes the unitracker CLI against this environment's config
// directory and store file.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	allArgs := append([]string{"--config-dir", e.Config, "--db", e.DBPath}, args...)
	cmd := exec.Command(unitrackerBin, allArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run unitracker: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRun executes the unitracker CLI and fails the test on a non-zero exit.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	result := e.Run(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("unitracker %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// GameDetail mirrors the show command's JSON output shape.
type GameDetail struct {
	Name                  string   `json:"name"`
	Progress              int      `json:"progress"`
	HoursPlayed           float64  `json:"hours_played"`
	StartDate             *string  `json:"start_date"`
	EndDate               *string  `json:"end_date"`
	TotalAchievements     int      `json:"total_achievements"`
	CompletedAchievements int      `json:"completed_achievements"`
	SeriesName            *string  `json:"series_name"`
	Genres                []string `json:"genres"`
	Platforms             []string `json:"platforms"`
}

// GameRow mirrors one row of the list command's JSON output.
type GameRow struct {
	Name        string  `json:"name"`
	Progress    int     `json:"progress"`
	HoursPlayed float64 `json:"hours_played"`
	SeriesName  string  `json:"series_name"`
	Genres      string  `json:"genres"`
	Platforms   string  `json:"platforms"`
}

// SeriesRow mirrors one row of the series command's JSON output.
type SeriesRow struct {
	Name          string  `json:"name"`
	NumGames      int     `json:"num_games"`
	TotalPlaytime float64 `json:"total_playtime"`
}
