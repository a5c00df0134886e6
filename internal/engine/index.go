package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/xxh3"
)

// Role is one of the recognized log file categories.
type Role int

const (
	RoleSettings Role = iota
	RoleCases
	RoleOptimization
	RoleSimulation
	RoleUUIDMap

	numRoles
)

// Roles lists every role in match order.
var Roles = []Role{RoleSettings, RoleCases, RoleOptimization, RoleSimulation, RoleUUIDMap}

// LogFilePattern is the glob a directory entry must match to be considered.
const LogFilePattern = "log_*.csv"

// SettingsFileName must be present for a directory to count as a log directory.
const SettingsFileName = "log_settings.csv"

// ErrNotLogDirectory is returned by ValidateDirectory.
var ErrNotLogDirectory = errors.New("directory does not contain " + SettingsFileName)

// roleMarkers are tested against the file base name in Roles order.
var roleMarkers = [numRoles]string{
	RoleSettings:     "settings",
	RoleCases:        "cases",
	RoleOptimization: "optimization",
	RoleSimulation:   "simulation",
	RoleUUIDMap:      "property_uuid",
}

var roleNames = [numRoles]string{
	RoleSettings:     "settings",
	RoleCases:        "cases",
	RoleOptimization: "optimization",
	RoleSimulation:   "simulation",
	RoleUUIDMap:      "uuid-map",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// MatchRole returns the role a file name belongs to.
// The base name (up to the first dot) is searched case-sensitively for each
// role marker; the first matching role wins.
func MatchRole(name string) (Role, bool) {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i != -1 {
		base = base[:i]
	}
	for _, r := range Roles {
		if strings.Contains(base, roleMarkers[r]) {
			return r, true
		}
	}
	return 0, false
}

type binding struct {
	path     string
	table    *Table
	checksum uint64
}

// Index binds each role to at most one log file in a directory.
//
// An Index is owned by a single goroutine: Refresh and the queries built on
// top of it must not run concurrently.
type Index struct {
	dir      string
	log      *slog.Logger
	bindings [numRoles]*binding
}

// NewIndex creates an Index for dir and performs the first scan.
func NewIndex(dir string, log *slog.Logger) *Index {
	idx := OpenIndex(dir, log)
	if err := idx.Refresh(); err != nil {
		idx.log.Warn("initial log scan failed", "dir", dir, "error", err)
	}
	return idx
}

// OpenIndex creates an Index for dir without scanning it. Every role is
// unbound until the first Refresh.
func OpenIndex(dir string, log *slog.Logger) *Index {
	if log == nil {
		log = slog.Default()
	}
	return &Index{dir: dir, log: log}
}

// Dir returns the monitored directory.
func (idx *Index) Dir() string {
	return idx.dir
}

// Refresh rescans the directory and rebuilds every table from scratch.
//
// Entries are visited in lexicographic order, so when several files match the
// same role the lexicographically last one is bound. Roles without a matching
// file end up unbound. If the directory cannot be listed all roles are unbound
// and the error is returned.
func (idx *Index) Refresh() error {
	var next [numRoles]*binding
	defer func() { idx.bindings = next }()

	// os.ReadDir sorts by filename
	entries, err := os.ReadDir(idx.dir)
	if err != nil {
		return fmt.Errorf("list %s: %w", idx.dir, err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(LogFilePattern, name); !ok {
			continue
		}
		role, ok := MatchRole(name)
		if !ok {
			continue
		}

		path, err := filepath.Abs(filepath.Join(idx.dir, name))
		if err != nil {
			path = filepath.Join(idx.dir, name)
		}

		if prev := next[role]; prev != nil {
			idx.log.Warn("multiple log files match role, using last",
				"role", role.String(), "ignored", prev.path, "used", path)
		}

		b := &binding{path: path}
		content, err := os.ReadFile(path)
		if err != nil {
			idx.log.Debug("log file unreadable, binding empty table", "role", role.String(), "path", path, "error", err)
		} else {
			b.checksum = xxh3.Hash(content)
		}
		b.table = ParseBytes(content)
		next[role] = b

		idx.log.Debug("bound log file", "role", role.String(), "path", path,
			"rows", b.table.Rows(), "dropped", b.table.Dropped())
	}
	return nil
}

// Table returns the table bound to role, or nil when the role has no file.
func (idx *Index) Table(role Role) *Table {
	if role < 0 || role >= numRoles || idx.bindings[role] == nil {
		return nil
	}
	return idx.bindings[role].table
}

// Path returns the absolute path bound to role, or "".
func (idx *Index) Path(role Role) string {
	if role < 0 || role >= numRoles || idx.bindings[role] == nil {
		return ""
	}
	return idx.bindings[role].path
}

// ValidateDirectory reports whether dir looks like an optimizer log directory,
// i.e. contains a file named exactly log_settings.csv.
func ValidateDirectory(dir string) error {
	info, err := os.Stat(filepath.Join(dir, SettingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", dir, ErrNotLogDirectory)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotLogDirectory)
	}
	return nil
}
