package database

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

// Migration is one versioned pair of SQL scripts.
type Migration struct {
	Version    int
	Name       string
	UpScript   string
	DownScript string
}

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrations []Migration

func init() {
	loaded, err := LoadMigrations(migrationFS, "migrations")
	if err != nil {
		panic(err)
	}
	migrations = loaded
}

// LoadMigrations reads every NNNNNN_name.up.sql file in dir together with its
// .down.sql partner. Versions must be positive and unique.
func LoadMigrations(fsys fs.FS, dir string) ([]Migration, error) {
	ups, err := fs.Glob(fsys, path.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	out := make([]Migration, 0, len(ups))
	seen := make(map[int]string, len(ups))
	for _, upPath := range ups {
		base := strings.TrimSuffix(path.Base(upPath), ".up.sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok || name == "" {
			return nil, fmt.Errorf("migration %s: want NNNNNN_name.up.sql", upPath)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version %q", upPath, prefix)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration %s: version %06d already used by %s", upPath, version, other)
		}
		seen[version] = upPath

		up, err := fs.ReadFile(fsys, upPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", upPath, err)
		}
		downPath := path.Join(dir, base+".down.sql")
		down, err := fs.ReadFile(fsys, downPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", downPath, err)
		}

		out = append(out, Migration{
			Version:    version,
			Name:       name,
			UpScript:   string(up),
			DownScript: string(down),
		})
	}

	slices.SortFunc(out, func(a, b Migration) int { return cmp.Compare(a.Version, b.Version) })
	return out, nil
}

// GetMigrations returns the embedded migrations in version order.
func GetMigrations() []Migration {
	return migrations
}

func GetMigrationByVersion(version int) *Migration {
	i := slices.IndexFunc(migrations, func(m Migration) bool { return m.Version == version })
	if i < 0 {
		return nil
	}
	return &migrations[i]
}

func (m *Migration) String() string {
	return fmt.Sprintf("%06d_%s", m.Version, m.Name)
}
