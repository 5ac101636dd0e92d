// Mirrors the release archives named in the manifest into an R2 bucket.
// Each archive is uploaded together with a .meta.json sidecar;
// generate-manifests-from-r2 later rebuilds the manifest from the
// sidecars alone.
package main

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type options struct {
	manifestPath string
	endpoint     string
	bucket       string
	accessKey    string
	secretKey    string
	workers      int
	attempts     int
	dryRun       bool
	syncOnly     bool
}

// manifestFile matches the subset of the release manifest this tool reads
type manifestFile struct {
	Versions map[string]map[string]*manifestEntry `json:"versions"`
}

type manifestEntry struct {
	URL    string `json:"url"`
	SHA256 string `json:"sha256,omitempty"`
}

// Mirrored keys are never rewritten, so clients may cache them forever
const immutableCache = "public, max-age=31536000, immutable"

// archive is one upstream file to copy into the bucket
type archive struct {
	tag      string
	platform string
	url      string
	sha256   string
	key      string
}

// sidecar is the metadata object stored next to each mirrored archive
type sidecar struct {
	SHA256       string `json:"sha256"`
	SHA256Source string `json:"sha256_source"` // "upstream" or "mirror"
	SourceURL    string `json:"source_url"`
	MirroredAt   string `json:"mirrored_at"`
	Size         int64  `json:"size"`
}

type outcome struct {
	key   string
	bytes int64
	err   error
}

func main() {
	var opts options
	flag.StringVar(&opts.manifestPath, "manifest", "src/internal/release/data/verilator.json", "Path to the release manifest")
	flag.StringVar(&opts.endpoint, "r2-endpoint", "", "R2 endpoint URL")
	flag.StringVar(&opts.bucket, "r2-bucket", "", "R2 bucket name")
	flag.StringVar(&opts.accessKey, "r2-access-key", "", "R2 access key ID")
	flag.StringVar(&opts.secretKey, "r2-secret-key", "", "R2 secret access key")
	flag.IntVar(&opts.workers, "workers", 10, "Number of parallel workers")
	flag.IntVar(&opts.attempts, "retries", 3, "Attempts per archive before giving up")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Report what would be done without doing it")
	flag.BoolVar(&opts.syncOnly, "sync-only", false, "Only mirror archives not already in R2")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	archives, err := planArchives(opts.manifestPath)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}
	fmt.Printf("Manifest names %d archives\n", len(archives))

	if opts.dryRun {
		fmt.Println("\n[DRY RUN] Would mirror:")
		for _, a := range archives {
			fmt.Printf("  %s -> %s\n", a.url, a.key)
		}
		return nil
	}

	if opts.endpoint == "" || opts.bucket == "" || opts.accessKey == "" || opts.secretKey == "" {
		return fmt.Errorf("R2 credentials required (--r2-endpoint, --r2-bucket, --r2-access-key, --r2-secret-key)")
	}

	client, err := newClient(opts)
	if err != nil {
		return fmt.Errorf("creating S3 client: %w", err)
	}

	if opts.syncOnly {
		fmt.Println("Listing bucket contents...")
		present, err := bucketKeys(client, opts.bucket)
		if err != nil {
			return fmt.Errorf("listing bucket: %w", err)
		}
		kept := archives[:0]
		for _, a := range archives {
			if !present[a.key] {
				kept = append(kept, a)
			}
		}
		fmt.Printf("%d already mirrored, %d to go\n", len(archives)-len(kept), len(kept))
		archives = kept
	}

	if len(archives) == 0 {
		fmt.Println("Nothing to mirror")
		return nil
	}

	mirrored, failed, downloaded := mirrorAll(client, opts, archives)

	fmt.Println("\n--- Mirror summary ---")
	fmt.Printf("Total:    %d\n", len(archives))
	fmt.Printf("Mirrored: %d\n", mirrored)
	fmt.Printf("Failed:   %d\n", failed)
	fmt.Printf("Bytes:    %d MB\n", downloaded/(1024*1024))

	if failed > 0 {
		return fmt.Errorf("%d archives failed", failed)
	}
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

func bucketKeys(client *s3.Client, bucket string) (map[string]bool, error) {
	keys := map[string]bool{}
	pager := s3.NewListObjectsV2Paginator(client, &s3.ListObjectsV2Input{Bucket: aws.String(bucket)})
	for pager.HasMorePages() {
		page, err := pager.NextPage(context.Background())
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys[aws.ToString(obj.Key)] = true
		}
	}
	return keys, nil
}

func planArchives(path string) ([]archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf manifestFile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, err
	}

	var out []archive
	for tag, platforms := range mf.Versions {
		for platform, entry := range platforms {
			if entry == nil || entry.URL == "" {
				continue
			}
			out = append(out, archive{
				tag:      tag,
				platform: platform,
				url:      entry.URL,
				sha256:   entry.SHA256,
				// Bucket layout mirrors the published URL layout
				key: fmt.Sprintf("verilator/%s/verilator-%s-%s%s",
					tag, tag, platform, archiveExt(entry.URL)),
			})
		}
	}
	return out, nil
}

func archiveExt(url string) string {
	for _, ext := range []string{".tar.gz", ".zip", ".7z"} {
		if strings.HasSuffix(url, ext) {
			return ext
		}
	}
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	if i := strings.Index(url, "."); i >= 0 {
		return url[i:]
	}
	return ""
}

func mirrorAll(client *s3.Client, opts options, archives []archive) (mirrored, failed int, downloaded int64) {
	work := make(chan archive)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range work {
				n, err := mirrorWithRetry(client, opts, a)
				results <- outcome{key: a.key, bytes: n, err: err}
			}
		}()
	}
	go func() {
		for _, a := range archives {
			work <- a
		}
		close(work)
		wg.Wait()
		close(results)
	}()

	for res := range results {
		downloaded += res.bytes
		if res.err != nil {
			fmt.Fprintf(os.Stderr, "Error mirroring %s: %v\n", res.key, res.err)
			failed++
			continue
		}
		mirrored++
	}
	return mirrored, failed, downloaded
}

func mirrorWithRetry(client *s3.Client, opts options, a archive) (int64, error) {
	for attempt := 1; ; attempt++ {
		n, err := mirrorOne(client, opts.bucket, a)
		if err == nil {
			return n, nil
		}
		if attempt >= opts.attempts {
			return 0, err
		}
		fmt.Printf("Attempt %d/%d for %s failed, retrying: %v\n", attempt, opts.attempts, a.key, err)
		// Linear backoff, one extra second per attempt
		time.Sleep(time.Duration(attempt+1) * time.Second)
	}
}

func mirrorOne(client *s3.Client, bucket string, a archive) (int64, error) {
	body, digest, err := fetchUpstream(a.url)
	if err != nil {
		return 0, err
	}
	size := int64(len(body))

	// A manifest checksum is authoritative; without one we record the
	// computed digest in the sidecar and mark where it came from
	digestSource := "mirror"
	if a.sha256 != "" {
		if digest != a.sha256 {
			return size, fmt.Errorf("checksum mismatch: expected %s, got %s", a.sha256, digest)
		}
		digestSource = "upstream"
	}

	put := &s3.PutObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(a.key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentTypeFor(a.key)),
		CacheControl: aws.String(immutableCache),
	}
	if _, err := client.PutObject(context.Background(), put); err != nil {
		return size, fmt.Errorf("upload failed: %w", err)
	}

	meta, err := json.MarshalIndent(sidecar{
		SHA256:       digest,
		SHA256Source: digestSource,
		SourceURL:    a.url,
		MirroredAt:   time.Now().UTC().Format(time.RFC3339),
		Size:         size,
	}, "", "  ")
	if err != nil {
		return size, fmt.Errorf("marshal sidecar failed: %w", err)
	}
	sidecarPut := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(a.key + ".meta.json"),
		Body:        bytes.NewReader(meta),
		ContentType: aws.String("application/json"),
	}
	if _, err := client.PutObject(context.Background(), sidecarPut); err != nil {
		return size, fmt.Errorf("sidecar upload failed: %w", err)
	}

	fmt.Printf("Mirrored: %s (%d bytes)\n", a.key, size)
	return size, nil
}

var upstreamClient = &http.Client{Timeout: 10 * time.Minute}

func fetchUpstream(url string) ([]byte, string, error) {
	resp, err := upstreamClient.Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read failed: %w", err)
	}
	sum := sha256.Sum256(body)
	return body, hex.EncodeToString(sum[:]), nil
}

func contentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(key, ".tar.gz"):
		return "application/gzip"
	case strings.HasSuffix(key, ".zip"):
		return "application/zip"
	case strings.HasSuffix(key, ".7z"):
		return "application/x-7z-compressed"
	}
	return "application/octet-stream"
}
