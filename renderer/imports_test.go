package renderer

import (
	"go/parser"
	"go/token"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "victorian-room"

// cgoImports are the packages that need a display and a GL driver to build.
var cgoImports = []string{
	"github.com/go-gl/glfw/",
	"github.com/go-gl/gl/",
}

// localImports walks the in-module import graph from pkg (a path relative to
// the module root) and returns every import seen, keyed by the importer.
func localImports(t *testing.T, pkg string) map[string][]string {
	t.Helper()
	seen := map[string][]string{}
	var visit func(string)
	visit = func(pkg string) {
		if _, ok := seen[pkg]; ok {
			return
		}
		seen[pkg] = nil

		files, err := filepath.Glob(filepath.Join("..", pkg, "*.go"))
		require.NoError(t, err)
		require.NotEmpty(t, files, pkg)

		fset := token.NewFileSet()
		for _, f := range files {
			if strings.HasSuffix(f, "_test.go") {
				continue
			}
			file, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
			require.NoError(t, err)
			for _, spec := range file.Imports {
				path, err := strconv.Unquote(spec.Path.Value)
				require.NoError(t, err)
				seen[pkg] = append(seen[pkg], path)
				if rest, ok := strings.CutPrefix(path, modulePath+"/"); ok {
					visit(rest)
				}
			}
		}
	}
	visit(pkg)
	return seen
}

func TestFrameLogicBuildsWithoutWindowOrGL(t *testing.T) {
	for _, root := range []string{"renderer", "scene", "core", "internal/passes", "config"} {
		for pkg, imports := range localImports(t, root) {
			for _, path := range imports {
				for _, banned := range cgoImports {
					assert.False(t, strings.HasPrefix(path, banned),
						"%s (reached from %s) imports %s", pkg, root, path)
				}
			}
		}
	}
}
