// Package fixture discovers and classifies conformance test fixtures.
//
// A fixture is one standalone source file whose filename encodes the
// expected compile outcome: the "succ" prefix marks a file that must
// compile, the "fail" prefix marks a file the compiler must reject.
// Files with neither prefix are not tests and are skipped.
package fixture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/AndreyAkinshin/compiletest/internal/errors"
)

// Expectation is the declared required outcome for a fixture.
type Expectation int

const (
	// MustSucceed marks a fixture that is expected to compile cleanly.
	MustSucceed Expectation = iota
	// MustFail marks a fixture the compiler is expected to reject.
	MustFail
)

// String returns the human-readable form used in reports.
func (e Expectation) String() string {
	switch e {
	case MustSucceed:
		return "must succeed"
	case MustFail:
		return "must fail"
	default:
		return "unknown"
	}
}

// Filename prefixes encoding the expectation. The mapping lives here and
// nowhere else so the convention stays auditable in one place.
const (
	succPrefix = "succ"
	failPrefix = "fail"
)

// markerSuffix names the optional sidecar file holding the expected
// diagnostic substring for a must-fail fixture (strict mode).
const markerSuffix = ".stderr"

// Fixture is a single source file used as one test case.
// Fixtures are immutable once discovered.
type Fixture struct {
	// Name is the path relative to the fixture root, used in reports.
	Name string
	// Path is the absolute path handed to the compiler.
	Path string
	// Expectation is derived from the filename prefix at discovery time.
	Expectation Expectation
	// Marker is the expected diagnostic substring for strict-mode
	// evaluation of must-fail fixtures. Empty when no sidecar exists.
	Marker string
}

// classify maps a base filename to its expectation.
// The second return is false for files matching neither convention.
func classify(base string) (Expectation, bool) {
	switch {
	case strings.HasPrefix(base, succPrefix):
		return MustSucceed, true
	case strings.HasPrefix(base, failPrefix):
		return MustFail, true
	default:
		return 0, false
	}
}

// Discover scans root for files matching pattern and classifies each by
// filename prefix. Files matching neither prefix are excluded without
// error. The returned slice is sorted lexicographically by name so
// repeated runs are reproducible and diffable.
//
// An unreadable root is fatal for the whole run: it is reported
// immediately rather than swallowed per-file.
func Discover(root, pattern string) ([]Fixture, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.PathError(root, "cannot resolve fixture directory", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.PathError(root, "fixture directory not readable", err)
	}
	if !info.IsDir() {
		return nil, errors.PathError(root, "fixture path is not a directory", nil)
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), pattern)
	if err != nil {
		return nil, errors.Configf("invalid fixture pattern %q: %v", pattern, err)
	}

	var fixtures []Fixture
	for _, rel := range matches {
		base := filepath.Base(rel)
		exp, ok := classify(base)
		if !ok {
			continue
		}
		// Sidecar files themselves are never fixtures, even though they
		// share the fail* prefix of the fixture they belong to.
		if strings.HasSuffix(base, markerSuffix) {
			continue
		}

		abs := filepath.Join(absRoot, filepath.FromSlash(rel))
		if info, err := os.Stat(abs); err != nil || info.IsDir() {
			continue
		}

		fixtures = append(fixtures, Fixture{
			Name:        filepath.ToSlash(rel),
			Path:        abs,
			Expectation: exp,
			Marker:      readMarker(abs),
		})
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Name < fixtures[j].Name
	})

	return fixtures, nil
}

// readMarker loads the expected diagnostic substring from the fixture's
// sidecar file, if present. The marker is the trimmed first line; a
// missing or empty sidecar yields an empty marker, which strict mode
// treats as "exit status only".
func readMarker(fixturePath string) string {
	data, err := os.ReadFile(fixturePath + markerSuffix)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}
