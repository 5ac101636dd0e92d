package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// verilator-prebuilt publishes one release per upstream Verilator tag,
// with one archive asset per supported platform
const verilatorReleasesURL = "https://api.github.com/repos/vvm/verilator-prebuilt/releases"

// assetNameRE parses names like: verilator-v5.034-linux-amd64.tar.gz
// Captures: version tag, platform key, archive extension
var assetNameRE = regexp.MustCompile(`^verilator-(v\d+\.\d+)-((?:linux|darwin)-(?:amd64|arm64))\.(tar\.gz|zip|7z)$`)

// Preference order when a platform publishes more than one archive format
var archiveRank = map[string]int{
	"tar.gz": 0,
	"zip":    1,
	"7z":     2,
}

func generateVerilatorManifest(outputDir string) error {
	fmt.Println("Generating Verilator manifest...")

	mf := &manifest{
		Version:   1,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Versions:  map[string]map[string]*manifestEntry{},
	}

	releases, err := fetchReleases(verilatorReleasesURL)
	if err != nil {
		return fmt.Errorf("failed to fetch verilator-prebuilt releases: %w", err)
	}
	fmt.Printf("Found %d verilator-prebuilt releases\n", len(releases))

	collectAssets(releases, mf)
	fmt.Printf("Generated manifest with %d versions\n", len(mf.Versions))

	return writeManifest(mf, outputDir, "verilator.json")
}

// collectAssets adds one entry per version/platform combination
func collectAssets(releases []release, mf *manifest) {
	// Archive format already recorded per version/platform, so a tar.gz
	// asset replaces a zip or 7z one
	picked := map[string]int{}

	for _, rel := range releases {
		for _, a := range rel.Assets {
			m := assetNameRE.FindStringSubmatch(a.Name)
			if m == nil {
				continue
			}
			tag, platform, ext := m[1], m[2], m[3]

			// Assets without artifact attestations are skipped, the
			// installer refuses archives it cannot verify
			digest, ok := strings.CutPrefix(a.Digest, "sha256:")
			if !ok {
				fmt.Printf("Warning: no digest for %s, skipping\n", a.Name)
				continue
			}

			rank := archiveRank[ext]
			key := tag + "/" + platform
			if prev, seen := picked[key]; seen && prev <= rank {
				continue
			}

			if mf.Versions[tag] == nil {
				mf.Versions[tag] = map[string]*manifestEntry{}
			}
			mf.Versions[tag][platform] = &manifestEntry{
				URL:    a.BrowserDownloadURL,
				SHA256: digest,
			}
			picked[key] = rank
		}
	}
}
