// Regenerates the release manifest from the R2 mirror. The .meta.json
// sidecars written by scripts/mirror-binaries carry the digests, so the
// manifest can be rebuilt without re-downloading any archive, with URLs
// pointing at the mirror instead of upstream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	outputDir string
	baseURL   string
	endpoint  string
	bucket    string
	accessKey string
	secretKey string
	dryRun    bool
}

// sidecar mirrors the schema written by scripts/mirror-binaries
type sidecar struct {
	SHA256       string `json:"sha256"`
	SHA256Source string `json:"sha256_source"`
	SourceURL    string `json:"source_url"`
	MirroredAt   string `json:"mirrored_at"`
	Size         int64  `json:"size"`
}

type manifestEntry struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256,omitempty"`
}

type manifest struct {
	Version   int                                  `json:"version"`
	Generated string                               `json:"generated"`
	Versions  map[string]map[string]*manifestEntry `json:"versions"`
}

// sidecarKeyRE picks the tag and platform out of keys like
// "verilator/v5.034/verilator-v5.034-linux-amd64.tar.gz.meta.json"
var sidecarKeyRE = regexp.MustCompile(`^verilator/([^/]+)/verilator-.+-((?:linux|darwin)-(?:amd64|arm64))\.(?:tar\.gz|zip|7z)\.meta\.json$`)

func main() {
	var opts options
	flag.StringVar(&opts.outputDir, "output-dir", "src/internal/release/data", "Output directory for the manifest")
	flag.StringVar(&opts.baseURL, "base-url", "https://releases.vvm.dev", "Base URL for archive downloads")
	flag.StringVar(&opts.endpoint, "r2-endpoint", "", "R2 endpoint URL")
	flag.StringVar(&opts.bucket, "r2-bucket", "", "R2 bucket name")
	flag.StringVar(&opts.accessKey, "r2-access-key", "", "R2 access key ID")
	flag.StringVar(&opts.secretKey, "r2-secret-key", "", "R2 secret access key")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Report what would be generated without writing files")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.endpoint == "" || opts.bucket == "" || opts.accessKey == "" || opts.secretKey == "" {
		return fmt.Errorf("R2 credentials required (--r2-endpoint, --r2-bucket, --r2-access-key, --r2-secret-key)")
	}

	client, err := newClient(opts)
	if err != nil {
		return fmt.Errorf("creating S3 client: %w", err)
	}

	fmt.Println("Rebuilding manifest from R2 sidecars...")

	mf, err := rebuild(client, opts)
	if err != nil {
		return err
	}

	if opts.dryRun {
		fmt.Printf("\n[DRY RUN] Would write verilator.json with %d versions\n", len(mf.Versions))
		shown := 0
		for tag, platforms := range mf.Versions {
			if shown == 5 {
				fmt.Printf("  ... and %d more versions\n", len(mf.Versions)-shown)
				break
			}
			fmt.Printf("  %s: %d platforms\n", tag, len(platforms))
			shown++
		}
		return nil
	}

	outPath := filepath.Join(opts.outputDir, "verilator.json")
	if err := writeManifest(mf, outPath); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	fmt.Printf("Written %s with %d versions\n", outPath, len(mf.Versions))
	return nil
}

func newClient(opts options) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.accessKey, opts.secretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(opts.endpoint)
	}), nil
}

func rebuild(client *s3.Client, opts options) (*manifest, error) {
	mf := &manifest{
		Version:   1,
		Generated: time.Now().UTC().Format(time.RFC3339),
		Versions:  map[string]map[string]*manifestEntry{},
	}

	keys, err := sidecarKeys(client, opts.bucket)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Found %d sidecars\n", len(keys))

	for _, key := range keys {
		m := sidecarKeyRE.FindStringSubmatch(key)
		if m == nil {
			fmt.Printf("Warning: skipping unrecognized key: %s\n", key)
			continue
		}
		tag, platform := m[1], m[2]

		sc, err := readSidecar(client, opts.bucket, key)
		if err != nil {
			fmt.Printf("Warning: unreadable sidecar %s: %v\n", key, err)
			continue
		}

		if mf.Versions[tag] == nil {
			mf.Versions[tag] = map[string]*manifestEntry{}
		}
		mf.Versions[tag][platform] = &manifestEntry{
			// The archive key is the sidecar key without the suffix
			URL:    opts.baseURL + "/" + strings.TrimSuffix(key, ".meta.json"),
			SHA256: sc.SHA256,
		}
	}
	return mf, nil
}

func sidecarKeys(client *s3.Client, bucket string) ([]string, error) {
	var keys []string
	pager := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String("verilator/"),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(context.Background())
		if err != nil {
			return nil, fmt.Errorf("listing sidecars: %w", err)
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); strings.HasSuffix(key, ".meta.json") {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func readSidecar(client *s3.Client, bucket, key string) (*sidecar, error) {
	get := &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)}
	resp, err := client.GetObject(context.Background(), get)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sc sidecar
	if err := json.NewDecoder(resp.Body).Decode(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

func writeManifest(mf *manifest, path string) error {
	data, err := json.MarshalIndent(mf, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
