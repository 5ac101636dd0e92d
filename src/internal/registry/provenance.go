package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProvenanceFileName is the metadata file written at the install prefix root
const ProvenanceFileName = ".build-info"

// SourcePrebuilt marks installs that came from a prebuilt archive
const SourcePrebuilt = "prebuilt"

// Provenance records how an install was produced. Builds record the
// tag, build date and commit; prebuilt installs record a source marker
// instead of a commit.
type Provenance struct {
	Tag    string
	Date   string
	Commit string
	Source string
}

// WriteProvenance writes the .build-info file for an install dir.
// The format is one "key: value" pair per line.
func WriteProvenance(dir string, p *Provenance) error {
	var b strings.Builder
	writeField := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	writeField("tag", p.Tag)
	writeField("date", p.Date)
	writeField("commit", p.Commit)
	writeField("source", p.Source)

	return os.WriteFile(filepath.Join(dir, ProvenanceFileName), []byte(b.String()), 0644)
}

// ReadProvenance parses the .build-info file of an install dir.
// Unknown keys and malformed lines are ignored so newer fields do not
// break older binaries.
func ReadProvenance(dir string) (*Provenance, error) {
	data, err := os.ReadFile(filepath.Join(dir, ProvenanceFileName))
	if err != nil {
		return nil, err
	}

	p := &Provenance{}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "tag":
			p.Tag = value
		case "date":
			p.Date = value
		case "commit":
			p.Commit = value
		case "source":
			p.Source = value
		}
	}
	return p, nil
}
