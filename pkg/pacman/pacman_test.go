package pacman

import (
	"context"
	"strings"
	"testing"
)

// fakeRunner is a canned Runner for tests; it never shells out.
type fakeRunner struct {
	stdout string
	stderr string
	err    error
	// lastArgs records the final call's arguments, for assertions.
	lastArgs []string
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (string, string, error) {
	f.lastArgs = args
	return f.stdout, f.stderr, f.err
}

func TestQueryInfoRemote_ParsesFieldBlock(t *testing.T) {
	r := &fakeRunner{stdout: "Name            : htop\nVersion         : 3.3.0-1\nDepends On      : ncurses  glibc\n"}
	c := &Client{Runner: r, Timeout: DefaultTimeout}

	fields, err := c.QueryInfoRemote(context.Background(), "htop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Str("Name") != "htop" {
		t.Errorf("Name = %q, want htop", fields.Str("Name"))
	}
	if got := fields.List("Depends On"); len(got) != 2 || got[0] != "ncurses" || got[1] != "glibc" {
		t.Errorf("Depends On = %v", got)
	}
	if r.lastArgs[0] != "-Si" {
		t.Errorf("expected -Si, got %v", r.lastArgs)
	}
}

func TestQueryInfoLocal_NotInstalled(t *testing.T) {
	r := &fakeRunner{stdout: "", stderr: "error: package 'foo' was not found"}
	c := &Client{Runner: r}

	fields, err := c.QueryInfoLocal(context.Background(), "foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields != nil {
		t.Errorf("expected nil fields for uninstalled package, got %v", fields)
	}
}

func TestListOwnedFiles_StripsNamePrefix(t *testing.T) {
	r := &fakeRunner{stdout: "htop /usr/bin/htop\nhtop /usr/share/man/man1/htop.1.gz\n"}
	c := &Client{Runner: r}

	paths, err := c.ListOwnedFiles(context.Background(), "htop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"/usr/bin/htop", "/usr/share/man/man1/htop.1.gz"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i, p := range want {
		if paths[i] != p {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], p)
		}
	}
}

func TestQueryFileOwner_MissingDatabase(t *testing.T) {
	r := &fakeRunner{err: errExit{}, stderr: "error: No such file or directory for database 'files'"}
	c := &Client{Runner: r}

	_, err := c.QueryFileOwner(context.Background(), "htop")
	if err != ErrFileDatabaseUnavailable {
		t.Fatalf("err = %v, want ErrFileDatabaseUnavailable", err)
	}
}

func TestQueryFileOwner_OtherErrorPropagates(t *testing.T) {
	r := &fakeRunner{err: errExit{}, stderr: "some other pacman failure"}
	c := &Client{Runner: r}

	_, err := c.QueryFileOwner(context.Background(), "htop")
	if err == nil || err == ErrFileDatabaseUnavailable {
		t.Fatalf("err = %v, want a generic non-nil error", err)
	}
}

func TestListExplicitlyInstalled(t *testing.T) {
	r := &fakeRunner{stdout: "htop 3.3.0-1\nneovim 0.10.0-1\n"}
	c := &Client{Runner: r}

	names, err := c.ListExplicitlyInstalled(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "htop" || names[1] != "neovim" {
		t.Errorf("names = %v", names)
	}
}

func TestFields_ListTreatsNoneAsEmpty(t *testing.T) {
	f := Fields{"Optional Deps": "None"}
	if got := f.List("Optional Deps"); got != nil {
		t.Errorf("List = %v, want nil for \"None\"", got)
	}
}

func TestFields_SizeBytes(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123.45 KiB", 126412},
		{"1.00 MiB", 1048576},
		{"0.00 B", 0},
		{"None", 0},
		{"", 0},
	}
	for _, tc := range cases {
		f := Fields{"Download Size": tc.in}
		if got := f.SizeBytes("Download Size"); got != tc.want {
			t.Errorf("SizeBytes(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseFieldBlocks_MultipleStanzasAndContinuationLines(t *testing.T) {
	out := "Name            : a\n" +
		"Depends On      : x\n" +
		"                  y\n" +
		"\n" +
		"Name            : b\n"
	blocks := parseFieldBlocks(out)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if !strings.Contains(blocks[0].Str("Depends On"), "x") || !strings.Contains(blocks[0].Str("Depends On"), "y") {
		t.Errorf("continuation line not folded: %q", blocks[0].Str("Depends On"))
	}
	if blocks[1].Str("Name") != "b" {
		t.Errorf("second block Name = %q, want b", blocks[1].Str("Name"))
	}
}

func TestIsMissingFileDatabase(t *testing.T) {
	if !isMissingFileDatabase("error: No such file or directory for database 'files'") {
		t.Error("expected true for missing file database stderr")
	}
	if isMissingFileDatabase("error: target not found: htop") {
		t.Error("expected false for unrelated stderr")
	}
}

type errExit struct{}

func (errExit) Error() string { return "exit status 1" }
