package tools

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"gdscriptmcp/internal/paths"
)

// Environment variables consulted on every EnsureBinary call.
const (
	EnvBinaryPath = "GDSCRIPT_FORMATTER_PATH"
	EnvCacheDir   = "GDSCRIPT_FORMATTER_MCP_CACHE_DIR"
)

const defaultHTTPTimeout = 30 * time.Second

// Options configures a Manager.
type Options struct {
	// CacheRoot must already exist; see paths.ResolveCacheRoot.
	CacheRoot string
	// BinaryPath is used when GDSCRIPT_FORMATTER_PATH is unset.
	BinaryPath string
	ReleaseURL string
	Timeout    time.Duration
	Retries    int
	UserAgent  string
	// Platform overrides runtime detection when non-zero.
	Platform Platform
	Logger   logr.Logger
	// OnStage, when set, is called as acquisition progresses.
	OnStage func(stage Stage, detail string)
}

// Manager resolves a runnable formatter executable, keeping a per-platform
// copy of the latest release under the cache root.
type Manager struct {
	cacheRoot   string
	binaryPath  string
	releaseURL  string
	retries     int
	userAgent   string
	platform    Platform
	platformErr error
	client      *http.Client
	log         logr.Logger
	onStage     func(Stage, string)
}

// NewManager builds a Manager. An unsupported platform is not an error here;
// it surfaces from EnsureBinary unless a binary override is configured.
func NewManager(opts Options) *Manager {
	m := &Manager{
		cacheRoot:  opts.CacheRoot,
		binaryPath: opts.BinaryPath,
		releaseURL: opts.ReleaseURL,
		retries:    opts.Retries,
		userAgent:  opts.UserAgent,
		platform:   opts.Platform,
		log:        opts.Logger,
		onStage:    opts.OnStage,
	}
	if m.releaseURL == "" {
		m.releaseURL = DefaultReleaseURL
	}
	if m.userAgent == "" {
		m.userAgent = paths.AppName
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	m.client = &http.Client{Timeout: timeout}
	if m.platform.isZero() {
		m.platform, m.platformErr = CurrentPlatform()
	}
	return m
}

// CacheRoot returns the directory holding per-platform binaries.
func (m *Manager) CacheRoot() string {
	return m.cacheRoot
}

// EnsureBinary returns the path of a runnable formatter executable.
func (m *Manager) EnsureBinary(ctx context.Context) (string, error) {
	res, err := m.Ensure(ctx)
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Ensure resolves the formatter executable, refreshing the cached copy from
// the latest release when possible and falling back to a stale copy when the
// refresh fails.
func (m *Manager) Ensure(ctx context.Context) (Resolution, error) {
	if override := m.overridePath(); override != "" {
		if !paths.Exists(override) {
			m.stage(StageError, override)
			return Resolution{}, fmt.Errorf("%s points to a missing file: %s", EnvBinaryPath, override)
		}
		m.stage(StageOverride, override)
		return Resolution{Path: override, Source: SourceOverride}, nil
	}

	if m.platformErr != nil {
		m.stage(StageError, m.platformErr.Error())
		return Resolution{}, m.platformErr
	}

	platformDir := filepath.Join(m.cacheRoot, m.platform.Key())
	if err := os.MkdirAll(platformDir, 0o755); err != nil {
		m.stage(StageError, err.Error())
		return Resolution{}, fmt.Errorf("create platform cache dir %s: %w", platformDir, err)
	}
	binaryPath := filepath.Join(platformDir, m.platform.BinaryName())
	markerPath := filepath.Join(platformDir, versionFile)

	outcome := m.refresh(ctx, binaryPath, markerPath)
	cached, _ := paths.FileExists(binaryPath)

	res, err := settle(outcome, binaryPath, cached)
	if err != nil {
		m.log.Error(err, "formatter unavailable")
		m.stage(StageError, err.Error())
		return Resolution{}, err
	}
	if res.Stale {
		res.Version = readVersionMarker(markerPath)
		m.log.Info("warning: "+res.Warning, "path", res.Path)
		m.stage(StageStale, res.Warning)
	} else if res.Source == SourceDownloaded {
		m.log.Info("installed formatter", "version", res.Version, "path", res.Path)
		m.stage(StageInstalled, res.Version)
	} else {
		m.log.V(1).Info("formatter up to date", "version", res.Version, "path", res.Path)
		m.stage(StageUpToDate, res.Version)
	}
	return res, nil
}

func (m *Manager) overridePath() string {
	if value := strings.TrimSpace(os.Getenv(EnvBinaryPath)); value != "" {
		return value
	}
	return strings.TrimSpace(m.binaryPath)
}

func (m *Manager) stage(stage Stage, detail string) {
	if m.onStage != nil {
		m.onStage(stage, detail)
	}
}

// refresh brings the cached binary up to the latest release. It never
// touches binaryPath unless a complete replacement is ready.
func (m *Manager) refresh(ctx context.Context, binaryPath, markerPath string) refreshOutcome {
	m.stage(StageResolving, m.releaseURL)
	release, err := m.fetchLatestRelease(ctx)
	if err != nil {
		return refreshOutcome{phase: phaseFetch, err: err}
	}

	asset, err := selectAsset(release, m.platform)
	if err != nil {
		return refreshOutcome{phase: phaseUpdate, err: err, version: release.TagName}
	}

	if readVersionMarker(markerPath) == release.TagName {
		if ok, _ := paths.FileExists(binaryPath); ok {
			return refreshOutcome{version: release.TagName}
		}
	}

	m.stage(StageDownloading, asset.Name)
	if err := m.installAsset(ctx, asset.BrowserDownloadURL, binaryPath); err != nil {
		return refreshOutcome{phase: phaseUpdate, err: err, version: release.TagName}
	}
	if err := writeVersionMarker(markerPath, release.TagName); err != nil {
		return refreshOutcome{phase: phaseUpdate, err: err, version: release.TagName}
	}
	return refreshOutcome{version: release.TagName, updated: true}
}

// installAsset downloads the release zip into a scratch directory under the
// cache root and moves the extracted executable to binaryPath.
func (m *Manager) installAsset(ctx context.Context, downloadURL, binaryPath string) error {
	scratch, err := os.MkdirTemp(m.cacheRoot, "download-")
	if err != nil {
		return fmt.Errorf("create temp dir in cache: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	archivePath := filepath.Join(scratch, "asset.zip")
	if err := m.downloadArtifact(ctx, archivePath, downloadURL); err != nil {
		return err
	}
	return extractBinary(archivePath, filepath.Base(binaryPath), binaryPath)
}

func (m *Manager) downloadArtifact(ctx context.Context, dest, downloadURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", m.userAgent)

	resp, err := m.client.Do(req)
	if err != nil {
		return &NetworkError{Op: "download asset", URL: downloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &NetworkError{Op: "download asset", URL: downloadURL, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create download file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return &NetworkError{Op: "read asset", URL: downloadURL, Err: err}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close download file: %w", err)
	}
	return nil
}

// extractBinary copies the first archive entry named name to a temp file
// beside dest, marks it executable and renames it over dest.
func extractBinary(archivePath, name, dest string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ArchiveError{Entry: name, Err: fmt.Errorf("open zip: %w", err)}
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || path.Base(file.Name) != name {
			continue
		}
		return installEntry(file, dest)
	}
	return &ArchiveError{Entry: name}
}

func installEntry(file *zip.File, dest string) error {
	rc, err := file.Open()
	if err != nil {
		return &ArchiveError{Entry: file.Name, Err: fmt.Errorf("open zip entry: %w", err)}
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.download")
	if err != nil {
		return fmt.Errorf("create temporary binary: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return &ArchiveError{Entry: file.Name, Err: fmt.Errorf("extract formatter binary: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temporary binary: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0o755); err != nil {
			return fmt.Errorf("set executable permissions %s: %w", tmpPath, err)
		}
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("move binary into place %s: %w", dest, err)
	}
	committed = true
	return nil
}

// IsNetworkError reports whether err came from the release endpoint or the
// asset download.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
