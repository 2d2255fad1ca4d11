package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bft-labs/flagscan/internal/domain"
)

// SnapshotDir implements ports.SnapshotSource over a directory of dump files
// named by a printf pattern with one integer verb, e.g. "memory%d.bin".
type SnapshotDir struct {
	dir     string
	pattern string
	count   int
	match   *regexp.Regexp
}

// NewSnapshotDir creates a SnapshotDir. A count of 0 discovers the number of
// snapshots from the directory contents.
func NewSnapshotDir(dir, pattern string, count int) *SnapshotDir {
	return &SnapshotDir{
		dir:     dir,
		pattern: pattern,
		count:   count,
		match:   patternRegexp(pattern),
	}
}

// Path returns the file path of snapshot i.
func (s *SnapshotDir) Path(i int) string {
	return filepath.Join(s.dir, fmt.Sprintf(s.pattern, i))
}

// Dir returns the snapshot directory.
func (s *SnapshotDir) Dir() string {
	return s.dir
}

// Count returns the configured count, or when discovering, the length of the
// contiguous run of snapshots starting at index 0.
func (s *SnapshotDir) Count(ctx context.Context) (int, error) {
	if s.count > 0 {
		return s.count, nil
	}
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fi, err := os.Stat(s.Path(n))
		if err != nil {
			if os.IsNotExist(err) {
				break
			}
			return 0, fmt.Errorf("stat snapshot %d: %w", n, err)
		}
		if fi.IsDir() {
			break
		}
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrNoSnapshots, s.Path(0))
	}
	return n, nil
}

// Load reads snapshot i fully into memory.
func (s *SnapshotDir) Load(ctx context.Context, i int) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}
	path := s.Path(i)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read snapshot %d: %w", i, err)
	}
	return domain.Snapshot{Index: i, Path: path, Data: data}, nil
}

// MatchIndex reports whether a file name (base name only) follows the
// snapshot pattern and returns its index.
func (s *SnapshotDir) MatchIndex(name string) (int, bool) {
	m := s.match.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	i, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return i, true
}

// patternRegexp turns "memory%d.bin" into ^memory(\d+)\.bin$. "%%" is a
// literal percent and is consumed before the verb is looked for.
func patternRegexp(pattern string) *regexp.Regexp {
	base := filepath.Base(pattern)
	var b strings.Builder
	b.WriteString("^")
	var lit strings.Builder
	for i := 0; i < len(base); i++ {
		if base[i] == '%' && i+1 < len(base) {
			switch base[i+1] {
			case '%':
				lit.WriteByte('%')
				i++
				continue
			case 'd':
				b.WriteString(regexp.QuoteMeta(lit.String()))
				lit.Reset()
				b.WriteString(`(\d+)`)
				i++
				continue
			}
		}
		lit.WriteByte(base[i])
	}
	b.WriteString(regexp.QuoteMeta(lit.String()))
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}
