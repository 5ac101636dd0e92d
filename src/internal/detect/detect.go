// Package detect finds Verilator installations that live outside vvm's control.
package detect

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// Install represents a Verilator installation found outside vvm.
type Install struct {
	Version   string // Version string (e.g., "5.024")
	Path      string // Path to the executable
	Source    string // Where it was found (e.g., "PATH", "system", "homebrew")
	Validated bool   // Whether the executable ran and reported a version
}

// String renders the install as a single display line.
func (i Install) String() string {
	return "v" + i.Version + " (" + i.Source + ") " + i.Path
}

// versionRegex matches the leading fields of `verilator --version` output,
// e.g. "Verilator 5.024 2024-04-05 rev v5.024-0-g1a2b3c4".
var versionRegex = regexp.MustCompile(`^Verilator\s+(\d+\.\d+)`)

type runner func(name string, args ...string) ([]byte, error)

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// Scanner finds Verilator installations outside the versions directory.
type Scanner struct {
	// VersionsDir is vvm's own install area; hits under it are ignored.
	// The active vvm version is visible in PATH, so without this guard
	// every scan would report it as a foreign install.
	VersionsDir string
	// Dirs are the well-known locations scanned in addition to PATH.
	Dirs []string

	run      runner
	lookPath func(file string) (string, error)
}

// New creates a Scanner over the standard well-known locations.
func New(versionsDir string) *Scanner {
	return &Scanner{
		VersionsDir: versionsDir,
		Dirs:        WellKnownDirs(),
		run:         runCommand,
		lookPath:    exec.LookPath,
	}
}

// WellKnownDirs returns the locations system packages commonly install to.
func WellKnownDirs() []string {
	return []string{
		"/usr/bin",
		"/usr/local/bin",
		"/opt/homebrew/bin",
		"/opt/verilator/bin",
	}
}

// Scan looks for verilator executables in PATH and the well-known
// directories. Results are deduplicated by resolved path, and anything
// under the versions directory is skipped.
func (s *Scanner) Scan() []Install {
	installs := make([]Install, 0)
	seen := make(map[string]bool)

	if found, err := s.lookPath("verilator"); err == nil {
		s.consider(found, "PATH", seen, &installs)
	}

	for _, dir := range s.Dirs {
		candidate := filepath.Join(dir, "verilator")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		s.consider(candidate, sourceLabel(dir), seen, &installs)
	}

	return installs
}

// consider validates one candidate executable and appends it to installs.
func (s *Scanner) consider(execPath, source string, seen map[string]bool, installs *[]Install) {
	resolved, err := filepath.EvalSymlinks(execPath)
	if err != nil {
		resolved = execPath
	}

	if seen[resolved] {
		return
	}
	seen[resolved] = true

	// Skip vvm's own installs
	if isUnder(s.VersionsDir, execPath) || isUnder(s.VersionsDir, resolved) {
		return
	}

	version := s.getVersion(execPath)
	if version == "" {
		return
	}

	*installs = append(*installs, Install{
		Version:   version,
		Path:      execPath,
		Source:    source,
		Validated: true,
	})
}

// getVersion runs verilator --version and extracts the version number.
func (s *Scanner) getVersion(execPath string) string {
	output, err := s.run(execPath, "--version")
	if err != nil {
		return ""
	}

	line := strings.TrimSpace(string(output))
	matches := versionRegex.FindStringSubmatch(line)
	if len(matches) >= 2 {
		return matches[1]
	}

	return ""
}

func sourceLabel(dir string) string {
	if strings.HasPrefix(dir, "/opt/homebrew") {
		return "homebrew"
	}
	return "system"
}

func isUnder(parent, path string) bool {
	if parent == "" {
		return false
	}
	return strings.HasPrefix(filepath.Clean(path), filepath.Clean(parent)+string(os.PathSeparator))
}
