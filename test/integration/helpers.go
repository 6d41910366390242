//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIToken   string
	FileKey    string
	NodeID     string
	TeamID     string
	FigmaPath  string
	Verbose    bool
	RunTimeout time.Duration
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIToken:   os.Getenv("FIGMA_API_TOKEN"),
		FileKey:    os.Getenv("FIGMA_TEST_FILE_KEY"),
		NodeID:     os.Getenv("FIGMA_TEST_NODE_ID"),
		TeamID:     os.Getenv("FIGMA_TEST_TEAM_ID"),
		FigmaPath:  getFigmaPath(),
		Verbose:    os.Getenv("FIGMA_VERBOSE") == "true",
		RunTimeout: 5 * time.Minute,
	}
}

// getFigmaPath determines the path to the figma binary
func getFigmaPath() string {
	if path := os.Getenv("FIGMA_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../figma",
		"./figma",
		"../figma",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "figma"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIToken == "" || config.FileKey == "" {
		t.Skip("FIGMA_API_TOKEN or FIGMA_TEST_FILE_KEY not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.FigmaPath); err != nil {
		t.Skipf("figma binary not found at %s, skipping integration test", config.FigmaPath)
	}
}

// CommandRunner runs figma commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a figma command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), runner.config.RunTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, runner.config.FigmaPath, args...)
	cmd.Env = append(os.Environ(), "FIGMA_API_TOKEN="+runner.config.APIToken)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.FigmaPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a figma command with JSON output and decodes it into out
func (runner *CommandRunner) RunJSON(out interface{}, args ...string) error {
	stdout, _, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(stdout), out)
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output looks like YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
