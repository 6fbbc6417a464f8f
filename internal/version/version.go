// Package version orders distributable package files by the dotted numeric
// version embedded in their names.
package version

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/echoplay/echoplay/internal/domain"
)

// Prefix is the fixed file-name prefix of distributable packages.
const Prefix = "app-"

// Parse extracts the version string from a package file name, e.g.
// "app-1.2.0.apk" -> "1.2.0". The second return is false when the name does
// not follow the package naming pattern.
func Parse(name string) (string, bool) {
	if !strings.HasPrefix(name, Prefix) {
		return "", false
	}
	v := strings.TrimPrefix(name, Prefix)
	v = strings.TrimSuffix(v, filepath.Ext(v))
	if v == "" {
		return "", false
	}
	return v, true
}

// Compare orders two dotted version strings component-wise numerically.
// Non-numeric or missing components count as 0 for comparison only. The result
// is -1, 0 or 1 in the manner of strings.Compare.
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sort returns the packages among names, newest first. Names that do not match
// the package naming pattern are ignored.
func Sort(names []string) []domain.Package {
	var pkgs []domain.Package
	for _, name := range names {
		if v, ok := Parse(name); ok {
			pkgs = append(pkgs, domain.Package{Name: name, Version: v})
		}
	}
	sort.SliceStable(pkgs, func(i, j int) bool {
		return Compare(pkgs[i].Version, pkgs[j].Version) > 0
	})
	return pkgs
}

// Latest resolves the highest-versioned package among names. It returns
// domain.ErrNoneAvailable when names is empty or nothing matches the naming
// pattern.
func Latest(names []string) (domain.Package, error) {
	pkgs := Sort(names)
	if len(pkgs) == 0 {
		return domain.Package{}, domain.ErrNoneAvailable
	}
	return pkgs[0], nil
}
