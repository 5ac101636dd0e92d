// Package shellenv switches the active Verilator version by editing a
// shell startup file. All functions take the startup file path
// explicitly so callers and tests control exactly which file is edited.
package shellenv

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/vvm/vvm/src/internal/constants"
)

const (
	// Marker precedes the lines vvm appends to a startup file
	Marker = "# Added by vvm"

	// BackupSuffix names the one-time backup next to the startup file
	BackupSuffix = ".vvm.bak"

	// PathLine puts the active install's binaries on PATH. It
	// references the variable, so it never needs rewriting on switch.
	PathLine = `export PATH="$` + constants.EnvVerilatorRoot + `/bin:$PATH"`

	exportPrefix = "export " + constants.EnvVerilatorRoot + "="
)

// BackupPath returns the backup file path for a startup file
func BackupPath(rcPath string) string {
	return rcPath + BackupSuffix
}

func assignmentLine(installDir string) string {
	return fmt.Sprintf("%s%q", exportPrefix, installDir)
}

// EnsureBackup snapshots the startup file before its first
// modification. An existing backup is never overwritten, it keeps the
// pre-vvm state across any number of switches. A missing startup file
// snapshots as empty. Reports whether the backup was created.
func EnsureBackup(rcPath string) (bool, error) {
	backup := BackupPath(rcPath)
	if _, err := os.Stat(backup); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check backup %s: %w", backup, err)
	}

	var content []byte
	if data, err := os.ReadFile(rcPath); err == nil {
		content = data
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", rcPath, err)
	}

	if err := os.WriteFile(backup, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write backup %s: %w", backup, err)
	}
	return true, nil
}

// Apply points the startup file at installDir. An existing assignment
// line is replaced in place, leaving every other line and their order
// untouched; duplicate assignments collapse to one. When no assignment
// exists, a marker comment, the assignment and the PATH line are
// appended. The PATH line ends up in the file exactly once either way.
//
// The write is a plain read-modify-write, concurrent editors of the
// same file can lose updates.
func Apply(rcPath, installDir string) error {
	if _, err := EnsureBackup(rcPath); err != nil {
		return err
	}

	content := ""
	if data, err := os.ReadFile(rcPath); err == nil {
		content = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %s: %w", rcPath, err)
	}

	assignment := assignmentLine(installDir)
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines)+3)

	assignmentIdx := -1
	pathLineSeen := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, exportPrefix) {
			if assignmentIdx >= 0 {
				// Collapse duplicate assignments to the one replaced above
				continue
			}
			assignmentIdx = len(out)
			out = append(out, assignment)
			continue
		}
		if trimmed == PathLine {
			if pathLineSeen {
				continue
			}
			pathLineSeen = true
		}
		out = append(out, line)
	}

	if assignmentIdx >= 0 {
		if !pathLineSeen {
			out = slices.Insert(out, assignmentIdx+1, PathLine)
		}
		return writeFile(rcPath, strings.Join(out, "\n"))
	}

	// First switch for this file: append our block
	merged := strings.Join(out, "\n")
	if merged != "" && !strings.HasSuffix(merged, "\n") {
		merged += "\n"
	}
	block := Marker + "\n" + assignment + "\n"
	if !pathLineSeen {
		block += PathLine + "\n"
	}
	return writeFile(rcPath, merged+block)
}

func writeFile(rcPath, content string) error {
	if err := os.WriteFile(rcPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rcPath, err)
	}
	return nil
}

// ActiveRoot returns the install dir the startup file points at, the
// durable view of the active version. A missing file or absent
// assignment returns the empty string. When several assignment lines
// exist the last one wins, matching how the shell reads the file.
func ActiveRoot(rcPath string) (string, error) {
	data, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", rcPath, err)
	}

	root := ""
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, exportPrefix) {
			continue
		}
		value := strings.TrimPrefix(trimmed, exportPrefix)
		root = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return root, nil
}

// SessionRoot returns the value live in this process environment, the
// ephemeral view. It only changes when a new shell sources the
// startup file.
func SessionRoot() string {
	return os.Getenv(constants.EnvVerilatorRoot)
}

// Restore returns the startup file to its pre-vvm state. With a backup
// present the file becomes a byte-identical copy of it and the backup
// is kept. Without one, only the lines vvm writes (marker, assignment,
// PATH line) are stripped; anything the user edited in between stays.
// Reports whether the backup was used.
func Restore(rcPath string) (bool, error) {
	backup := BackupPath(rcPath)
	if data, err := os.ReadFile(backup); err == nil {
		if err := os.WriteFile(rcPath, data, 0644); err != nil {
			return false, fmt.Errorf("failed to restore %s: %w", rcPath, err)
		}
		return true, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read backup %s: %w", backup, err)
	}

	data, err := os.ReadFile(rcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, fmt.Errorf("nothing to restore: %s does not exist", rcPath)
		}
		return false, fmt.Errorf("failed to read %s: %w", rcPath, err)
	}

	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == Marker || trimmed == PathLine || strings.HasPrefix(trimmed, exportPrefix) {
			continue
		}
		out = append(out, line)
	}
	return false, writeFile(rcPath, strings.Join(out, "\n"))
}
