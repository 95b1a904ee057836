package domain

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestDomainHasNoInternalImports ensures the domain package depends only on
// the standard library. Services and stores layer on top of it, never the
// other way around.
func TestDomainHasNoInternalImports(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, "beamcore/pkg/domain")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		for importPath := range pkg.Imports {
			if strings.HasPrefix(importPath, "beamcore/internal") || strings.Contains(importPath, ".") {
				violations = append(violations, pkg.PkgPath+": "+importPath)
			}
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import: %s", v)
		}
		t.Fatalf("found %d forbidden imports in the domain package", len(violations))
	}
}
