package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var (
	migrationFileRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)
	unsafeNameRe    = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	upMarker   = "-- +goose Up"
	downMarker = "-- +goose Down"
)

type migrationFile struct {
	Version string
	Name    string
	Path    string
}

// listMigrations returns the .sql files in dir ordered by version. Malformed
// names and duplicate versions are errors.
func listMigrations(dir string) ([]migrationFile, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	var files []migrationFile
	byVersion := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		m := migrationFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			return nil, fmt.Errorf("invalid migration filename %q (expected %s_name.sql)", e.Name(), versionLayout)
		}
		if prev, dup := byVersion[m[1]]; dup {
			return nil, fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, e.Name())
		}
		byVersion[m[1]] = e.Name()
		files = append(files, migrationFile{Version: m[1], Name: m[2], Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

// ValidateDir checks every migration in dir for a well formed name, a unique
// version and goose Up/Down sections in that order.
func ValidateDir(dir string) error {
	files, err := listMigrations(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %q", dir)
	}
	for _, f := range files {
		body, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("read file %q: %w", f.Path, err)
		}
		up := strings.Index(string(body), upMarker)
		down := strings.Index(string(body), downMarker)
		switch {
		case up < 0:
			return fmt.Errorf("migration %q missing %q", filepath.Base(f.Path), upMarker)
		case down < 0:
			return fmt.Errorf("migration %q missing %q", filepath.Base(f.Path), downMarker)
		case down < up:
			return fmt.Errorf("migration %q declares Down before Up", filepath.Base(f.Path))
		}
	}
	return nil
}

// CreateSQLMigration writes an empty goose migration named
// <dir>/<YYYYMMDDHHMMSS>_<name>.sql and returns its path.
func CreateSQLMigration(dir, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now().UTC())
}

func createSQLMigration(dir, name string, now time.Time) (string, error) {
	slug := strings.Trim(unsafeNameRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("migration name %q is empty once sanitized", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}

	existing, err := listMigrations(dir)
	if err != nil {
		return "", err
	}
	version := now.UTC().Format(versionLayout)
	if n := len(existing); n > 0 && existing[n-1].Version >= version {
		return "", fmt.Errorf("version %s is not newer than %s", version, filepath.Base(existing[n-1].Path))
	}

	path := filepath.Join(dir, version+"_"+slug+".sql")
	body := fmt.Sprintf("%s\n-- +goose StatementBegin\n-- %s\n-- +goose StatementEnd\n\n%s\n-- +goose StatementBegin\n-- rollback %s\n-- +goose StatementEnd\n",
		upMarker, slug, downMarker, slug)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write migration %q: %w", path, err)
	}
	return path, nil
}
