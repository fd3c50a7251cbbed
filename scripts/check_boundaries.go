// Command check_boundaries enforces the layering of every service under
// contexts/: domain imports nothing but itself, ports and application stay
// free of adapters and runtime infrastructure, and services never import
// each other.
package main

import (
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists the in-module prefixes (relative to the service root) a
// layer may import. Third-party imports are rejected for these layers.
type layerRule struct {
	allowed []string
}

var layerRules = map[string]layerRule{
	"domain":      {allowed: []string{"domain"}},
	"ports":       {allowed: []string{"domain", "ports"}},
	"application": {allowed: []string{"application", "domain", "ports"}},
}

func main() {
	module, err := modulePath("go.mod")
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	violations := collectViolations(module, "contexts")
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func modulePath(goMod string) (string, error) {
	data, err := os.ReadFile(goMod)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", goMod, err)
	}
	module := modfile.ModulePath(data)
	if module == "" {
		return "", fmt.Errorf("%s has no module directive", goMod)
	}
	return module, nil
}

func collectViolations(module string, root string) []violation {
	var violations []violation

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(filepath.Dir(root), path)
		if err != nil {
			return nil
		}
		normalized := filepath.ToSlash(rel)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 || parts[0] != "contexts" {
			return nil
		}

		servicePrefix := fmt.Sprintf("%s/contexts/%s/%s", module, parts[1], parts[2])
		violations = append(violations, validateFile(path, normalized, module, parts[3], servicePrefix)...)
		return nil
	})

	slices.SortFunc(violations, func(a, b violation) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		return strings.Compare(a.Import, b.Import)
	})
	return violations
}

func validateFile(path, normalizedPath, module, layer, servicePrefix string) []violation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalizedPath, Line: 1, Rule: "file must parse"}}
	}

	var violations []violation
	add := func(line int, importPath, rule string) {
		violations = append(violations, violation{File: normalizedPath, Line: line, Import: importPath, Rule: rule})
	}

	rule, layered := layerRules[layer]
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, `"`)
		line := fset.Position(imp.Pos()).Line

		if hasPrefix(importPath, module+"/contexts") && !hasPrefix(importPath, servicePrefix) {
			add(line, importPath, "cross-service imports are forbidden")
			continue
		}
		if !layered || isStdlib(module, importPath) {
			continue
		}
		switch {
		case strings.Contains(importPath, "/adapters/") || strings.HasSuffix(importPath, "/adapters"):
			add(line, importPath, layer+" must not import adapters")
		case hasPrefix(importPath, module+"/internal"):
			add(line, importPath, layer+" must not import runtime infrastructure")
		case !allowedIn(importPath, servicePrefix, rule.allowed):
			add(line, importPath, layer+" import is outside explicit allowlist")
		}
	}
	return violations
}

func allowedIn(importPath, servicePrefix string, allowed []string) bool {
	for _, layer := range allowed {
		if hasPrefix(importPath, servicePrefix+"/"+layer) {
			return true
		}
	}
	return false
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isStdlib(module, importPath string) bool {
	if hasPrefix(importPath, module) {
		return false
	}
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".")
}
