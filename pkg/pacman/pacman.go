// Package pacman wraps the platform package manager's metadata
// subcommands (-Si, -Qi, -Ql, -Qp, -Fl, -Fy, -Q) behind a small Go API,
// parsing their line-oriented "Key : Value" output into model types. It
// never performs a privileged operation itself; installs/removes are
// always handed off to an external terminal by the executor worker.
package pacman

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every pacman invocation so a stalled mirror or a
// wedged file-database lock cannot hang a worker forever.
const DefaultTimeout = 8 * time.Second

// Runner executes pacman subcommands. The default Runner shells out to
// the real binary; tests substitute a fake that returns canned output
// without requiring pacman to be installed.
type Runner interface {
	Run(ctx context.Context, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner is the production Runner: os/exec against the real pacman
// binary.
type ExecRunner struct {
	// Binary defaults to "pacman" when empty.
	Binary string
}

func (r ExecRunner) Run(ctx context.Context, args ...string) (string, string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "pacman"
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Client wraps a Runner with the DefaultTimeout and the specific
// subcommands Pacsea needs.
type Client struct {
	Runner  Runner
	Timeout time.Duration
}

// NewClient returns a Client that shells out to the real pacman binary.
func NewClient() *Client {
	return &Client{Runner: ExecRunner{}, Timeout: DefaultTimeout}
}

func (c *Client) run(ctx context.Context, args ...string) (string, string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Runner.Run(ctx, args...)
}

// QueryInfoRemote runs `pacman -Si <name>` and parses the field block.
func (c *Client) QueryInfoRemote(ctx context.Context, name string) (Fields, error) {
	out, _, err := c.run(ctx, "-Si", name)
	if err != nil {
		return nil, err
	}
	return parseFieldBlocks(out)[0], nil
}

// QueryInfoLocal runs `pacman -Qi <name>`.
func (c *Client) QueryInfoLocal(ctx context.Context, name string) (Fields, error) {
	out, _, err := c.run(ctx, "-Qi", name)
	if err != nil {
		return nil, err
	}
	blocks := parseFieldBlocks(out)
	if len(blocks) == 0 {
		return nil, nil
	}
	return blocks[0], nil
}

// ListOwnedFiles runs `pacman -Ql <name>` and returns the absolute paths
// the package owns, stripping the leading "<name> " prefix pacman emits
// on every line.
func (c *Client) ListOwnedFiles(ctx context.Context, name string) ([]string, error) {
	out, stderr, err := c.run(ctx, "-Ql", name)
	if err != nil {
		if isMissingFileDatabase(stderr) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if _, path, ok := strings.Cut(line, " "); ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// QueryPackageFile runs `pacman -Qp <path>` against a cached .pkg.tar.zst
// artifact, used by the summary resolver to size AUR targets without a
// network round trip.
func (c *Client) QueryPackageFile(ctx context.Context, pkgFilePath string) (Fields, error) {
	out, _, err := c.run(ctx, "-Qp", pkgFilePath)
	if err != nil {
		return nil, err
	}
	blocks := parseFieldBlocks(out)
	if len(blocks) == 0 {
		return nil, nil
	}
	return blocks[0], nil
}

// QueryFileOwner runs `pacman -Fl <name>` to list every file in the
// file database entry for name, used by the files resolver. A missing
// file database (the user never ran `pacman -Fy`) is reported back as
// ErrFileDatabaseUnavailable rather than a generic error, so callers can
// degrade to an empty-but-present PackageFileInfo per the files
// resolver's contract.
func (c *Client) QueryFileOwner(ctx context.Context, name string) ([]string, error) {
	out, stderr, err := c.run(ctx, "-Fl", name)
	if err != nil {
		if isMissingFileDatabase(stderr) {
			return nil, ErrFileDatabaseUnavailable
		}
		return nil, err
	}
	var paths []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		if _, path, ok := strings.Cut(sc.Text(), " "); ok {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// SyncFileDatabase runs `pacman -Fy` to refresh the file database used by
// QueryFileOwner. Errors here are non-fatal to callers; the files
// resolver simply continues to treat the database as unavailable.
func (c *Client) SyncFileDatabase(ctx context.Context) error {
	_, _, err := c.run(ctx, "-Fy")
	return err
}

// ListExplicitlyInstalled runs `pacman -Qe` and returns the set of
// package names the user explicitly installed (as opposed to pulled in
// as a dependency), used to reconstruct the "installed only" filter for
// an empty search query.
func (c *Client) ListExplicitlyInstalled(ctx context.Context) ([]string, error) {
	out, _, err := c.run(ctx, "-Qe")
	if err != nil {
		return nil, err
	}
	var names []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		name, _, _ := strings.Cut(sc.Text(), " ")
		if name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// ListSyncPackages runs `pacman -Sl` to enumerate every package in the
// configured sync repositories, used once at startup to populate the
// process-wide index. Each line is "repo name version [installed]".
func (c *Client) ListSyncPackages(ctx context.Context) ([]SyncPackage, error) {
	out, _, err := c.run(ctx, "-Sl")
	if err != nil {
		return nil, err
	}
	var pkgs []SyncPackage
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 {
			continue
		}
		pkgs = append(pkgs, SyncPackage{Repo: fields[0], Name: fields[1], Version: fields[2]})
	}
	return pkgs, nil
}

// SyncPackage is one line of `pacman -Sl` output.
type SyncPackage struct {
	Repo    string
	Name    string
	Version string
}

// isMissingFileDatabase reports whether pacman's stderr indicates the
// sync-file database has never been downloaded (`-Fy` not yet run). This
// is the one error case the spec requires treating as "empty data", not
// fatal.
func isMissingFileDatabase(stderr string) bool {
	lower := strings.ToLower(stderr)
	return strings.Contains(lower, "no such file or directory") &&
		strings.Contains(lower, "files")
}

// ErrFileDatabaseUnavailable is returned by QueryFileOwner when pacman's
// sync-file database has not been downloaded.
var ErrFileDatabaseUnavailable = errFileDBUnavailable{}

type errFileDBUnavailable struct{}

func (errFileDBUnavailable) Error() string {
	return "pacman: file database unavailable (run pacman -Fy)"
}
