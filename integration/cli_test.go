//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

const (
	envVersion      = "APPVEYOR_BUILD_VERSION"
	envAzureVersion = "BUILD_BUILDNUMBER"
	envBuildNumber  = "APPVEYOR_BUILD_NUMBER"
	envAzureBuildID = "BUILD_BUILDID"
	envCommit       = "APPVEYOR_REPO_COMMIT"
	envAzureCommit  = "BUILD_SOURCEVERSION"
	envSource       = "WYCH_SOURCE"
	envLogLevel     = "WYCH_LOG_LEVEL"
	envNoBanner     = "WYCH_NO_BANNER"

	outputFile     = "AppVersion.elm"
	commandTimeout = 2 * time.Minute
)

var controlledEnv = []string{
	envVersion, envAzureVersion, envBuildNumber, envAzureBuildID,
	envCommit, envAzureCommit, envSource, envLogLevel, envNoBanner,
	"WYCH_REQUIRE_SEMVER", "WYCH_DRY_RUN",
}

func TestIntegrationGeneratesAppVersionFromFlags(t *testing.T) {
	bin := buildBinary(t)
	out := t.TempDir()

	before := time.Now().UnixMilli()
	stdout, stderr, err := runCLI(t, bin, []string{
		out,
		"--version-string", "0.0.1",
		"--build-number", "1",
		"--commit", "deadbeef",
		"--source", "ci-runner",
	}, nil)
	if err != nil {
		t.Fatalf("wych failed: %v stderr=%q", err, stderr)
	}
	after := time.Now().UnixMilli()

	wantPath := filepath.Join(out, outputFile)
	if stdout != wantPath {
		t.Fatalf("expected stdout %q, got %q", wantPath, stdout)
	}

	content := readFile(t, wantPath)
	for _, want := range []string{`"0.0.1"`, "buildNumber = 1", `"deadbeef"`, `"ci-runner"`} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %s in generated file", want)
		}
	}
	if strings.Contains(content, "{{") {
		t.Fatalf("unsubstituted placeholder in generated file:\n%s", content)
	}

	ts := extractTimestamp(t, content)
	if ts < before || ts > after {
		t.Fatalf("timestamp %d outside of [%d, %d]", ts, before, after)
	}
}

func TestIntegrationAzurePipelinesEnvironment(t *testing.T) {
	bin := buildBinary(t)
	out := t.TempDir()

	_, stderr, err := runCLI(t, bin, []string{out}, map[string]string{
		envAzureVersion: "20240101.7",
		envAzureBuildID: "7",
		envAzureCommit:  "cafebabe",
		envLogLevel:     "verbose",
		envNoBanner:     "true",
	})
	if err != nil {
		t.Fatalf("wych failed: %v stderr=%q", err, stderr)
	}

	content := readFile(t, filepath.Join(out, outputFile))
	if !strings.Contains(content, `"20240101.7"`) || !strings.Contains(content, `"cafebabe"`) {
		t.Fatalf("expected azure values in generated file:\n%s", content)
	}
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if !strings.Contains(content, platform) {
		t.Fatalf("expected detected source to mention %s:\n%s", platform, content)
	}
}

func TestIntegrationFailureModes(t *testing.T) {
	bin := buildBinary(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no path", args: []string{"-v", "1.0.0", "-b", "1"}},
		{name: "no version", args: []string{"{out}", "-b", "1"}},
		{name: "missing directory", args: []string{"{out}/nope", "-v", "1.0.0", "-b", "1"}},
		{name: "semver required", args: []string{"{out}", "-v", "nightly", "-b", "1", "--require-semver"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := t.TempDir()
			args := make([]string, len(tc.args))
			for i, a := range tc.args {
				args[i] = strings.ReplaceAll(a, "{out}", out)
			}
			if stdout, stderr, err := runCLI(t, bin, args, nil); err == nil {
				t.Fatalf("expected failure; stdout=%q stderr=%q", stdout, stderr)
			}
			if _, err := os.Stat(filepath.Join(out, outputFile)); !os.IsNotExist(err) {
				t.Fatalf("no file should be written on failure")
			}
		})
	}
}

func buildBinary(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	bin := filepath.Join(t.TempDir(), "wych")
	if runtime.GOOS == "windows" {
		bin += ".exe"
	}
	cmd := exec.CommandContext(ctx, "go", "build", "-o", bin, ".")
	cmd.Dir = projectRoot(t)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, output)
	}
	return bin
}

func runCLI(t *testing.T, bin string, args []string, overrides map[string]string) (string, string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Env = append(cleanEnviron(), flattenEnv(overrides)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	t.Logf("running CLI: wych %s overrides=%v", strings.Join(args, " "), overrides)
	err := cmd.Run()
	stdoutStr := strings.TrimSpace(stdout.String())
	stderrStr := strings.TrimSpace(stderr.String())
	t.Logf("CLI result for %v err=%v stdout=%q stderr=%q", args, err, stdoutStr, stderrStr)
	return stdoutStr, stderrStr, err
}

// cleanEnviron drops the CI variables wych reads so the host's own pipeline
// settings cannot leak into a test run.
func cleanEnviron() []string {
	drop := make(map[string]bool, len(controlledEnv))
	for _, k := range controlledEnv {
		drop[k] = true
	}
	var result []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if drop[key] {
			continue
		}
		result = append(result, kv)
	}
	return result
}

func extractTimestamp(t *testing.T, content string) int64 {
	t.Helper()
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, ", timestamp = ") {
			continue
		}
		var ts int64
		if _, err := fmt.Sscanf(line, ", timestamp = %d", &ts); err != nil {
			t.Fatalf("parsing timestamp line %q: %v", line, err)
		}
		return ts
	}
	t.Fatalf("no timestamp line in generated file:\n%s", content)
	return 0
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func projectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, statErr := os.Stat(filepath.Join(dir, "go.mod")); statErr == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("unable to locate go.mod from %s", dir)
		}
		dir = parent
	}
}

func flattenEnv(values map[string]string) []string {
	result := make([]string, 0, len(values))
	for k, v := range values {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
