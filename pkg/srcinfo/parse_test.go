package srcinfo

import (
	"reflect"
	"testing"
)

func TestParseSrcinfo_Basic(t *testing.T) {
	raw := `pkgbase = example
	pkgname = example
	depends = glibc
	depends = zlib>=1.2
	makedepends = cmake
	optdepends = python: for scripts
	checkdepends = gtest
`
	got := ParseSrcinfo(raw)
	want := Dependencies{
		Depends:      []string{"glibc", "zlib>=1.2"},
		MakeDepends:  []string{"cmake"},
		CheckDepends: []string{"gtest"},
		OptDepends:   []string{"python"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParseSrcinfo_ArchSuffixFoldsIntoBaseKey(t *testing.T) {
	raw := `pkgname = example
	depends_x86_64 = foo
	depends = bar
`
	got := ParseSrcinfo(raw)
	if len(got.Depends) != 2 {
		t.Fatalf("expected arch-suffixed depends folded into depends, got %+v", got)
	}
}

func TestParseSrcinfo_FiltersVirtualSO(t *testing.T) {
	raw := `pkgname = example
	depends = libfoo.so
	depends = libfoo.so=1-64
	depends = realpkg
`
	got := ParseSrcinfo(raw)
	if !reflect.DeepEqual(got.Depends, []string{"realpkg"}) {
		t.Fatalf("expected .so specifiers filtered, got %+v", got.Depends)
	}
}

func TestParsePKGBUILD_SingleLineArray(t *testing.T) {
	raw := `pkgname=example
depends=('glibc' 'zlib>=1.2')
makedepends=(cmake)
`
	got := ParsePKGBUILD(raw)
	if !reflect.DeepEqual(got.Depends, []string{"glibc", "zlib>=1.2"}) {
		t.Fatalf("got depends %+v", got.Depends)
	}
	if !reflect.DeepEqual(got.MakeDepends, []string{"cmake"}) {
		t.Fatalf("got makedepends %+v", got.MakeDepends)
	}
}

func TestParsePKGBUILD_MultiLineArray(t *testing.T) {
	raw := `pkgname=example
depends=(
  'glibc'
  'zlib'
  'openssl>=3.0'
)
`
	got := ParsePKGBUILD(raw)
	want := []string{"glibc", "zlib", "openssl>=3.0"}
	if !reflect.DeepEqual(got.Depends, want) {
		t.Fatalf("got %+v, want %+v", got.Depends, want)
	}
}

func TestParsePKGBUILD_AppendFormInsidePackageFunction(t *testing.T) {
	raw := `pkgname=example
depends=('glibc')

package() {
  depends+=('extra-runtime-dep')
}
`
	got := ParsePKGBUILD(raw)
	want := []string{"glibc", "extra-runtime-dep"}
	if !reflect.DeepEqual(got.Depends, want) {
		t.Fatalf("got %+v, want %+v", got.Depends, want)
	}
}

func TestParsePKGBUILD_FiltersShortAndTrailingParenTokens(t *testing.T) {
	raw := `pkgname=example
depends=('a' 'x)' 'realpkg')
`
	got := ParsePKGBUILD(raw)
	if !reflect.DeepEqual(got.Depends, []string{"realpkg"}) {
		t.Fatalf("got %+v", got.Depends)
	}
}

func TestParsePKGBUILD_OptDependsStripsReason(t *testing.T) {
	raw := `pkgname=example
optdepends=('python: for helper scripts' 'bash-completion: completions')
`
	got := ParsePKGBUILD(raw)
	want := []string{"python", "bash-completion"}
	if !reflect.DeepEqual(got.OptDepends, want) {
		t.Fatalf("got %+v, want %+v", got.OptDepends, want)
	}
}
