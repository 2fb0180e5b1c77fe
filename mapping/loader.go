package mapping

import (
	"cmp"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var embeddedProfiles embed.FS

// ProfileRegistry indexes profiles by name. Later loads replace earlier
// profiles of the same name, so user directories override embedded profiles.
type ProfileRegistry struct {
	profiles map[string]*Profile
}

// NewProfileRegistry returns a registry holding the profiles shipped with
// marc2bib.
func NewProfileRegistry() (*ProfileRegistry, error) {
	r := &ProfileRegistry{profiles: make(map[string]*Profile)}

	sub, err := fs.Sub(embeddedProfiles, "profiles")
	if err != nil {
		return nil, fmt.Errorf("opening embedded profiles: %w", err)
	}
	if err := r.loadFS(sub, "embedded"); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFromDirectory adds every *.yaml or *.yml profile in dir. Files that do
// not compile to tag functions are logged and skipped.
func (r *ProfileRegistry) LoadFromDirectory(dir string) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("reading profile directory: %w", err)
	}
	return r.loadFS(os.DirFS(dir), dir)
}

func (r *ProfileRegistry) loadFS(fsys fs.FS, origin string) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading %s profiles: %w", origin, err)
	}

	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			slog.Warn("skipping unreadable profile", "origin", origin, "file", entry.Name(), "error", err)
			continue
		}
		profile, err := parseProfile(data)
		if err != nil {
			slog.Warn("skipping invalid profile", "origin", origin, "file", entry.Name(), "error", err)
			continue
		}

		if profile.Name == "" {
			profile.Name = strings.TrimSuffix(entry.Name(), ext)
		}
		slog.Debug("loaded profile", "name", profile.Name, "origin", origin, "fields", len(profile.Fields))
		r.profiles[profile.Name] = profile
	}
	return nil
}

// Get returns the profile with the given name.
func (r *ProfileRegistry) Get(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// List returns the profile names, sorted.
func (r *ProfileRegistry) List() []string {
	return slices.Sorted(maps.Keys(r.profiles))
}

// LoadProfile reads a single profile file.
func LoadProfile(file string) (*Profile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	return parseProfile(data)
}

// LoadProfileFromString parses profile YAML.
func LoadProfileFromString(content string) (*Profile, error) {
	return parseProfile([]byte(content))
}

// parseProfile decodes a profile and rejects it unless every field mapping
// compiles.
func parseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile YAML: %w", err)
	}
	if _, err := profile.TagFuncs(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// MergeProfiles lays custom over base. Field mappings of the same BibTeX
// field are replaced whole; unset profile settings fall back to base.
func MergeProfiles(base, custom *Profile) *Profile {
	merged := &Profile{
		Name:        custom.Name,
		Description: cmp.Or(custom.Description, base.Description),
		EntryType:   cmp.Or(custom.EntryType, base.EntryType),
		KeyStyle:    cmp.Or(custom.KeyStyle, base.KeyStyle),
		Fields:      make(map[string]FieldMapping, len(base.Fields)+len(custom.Fields)),
	}
	maps.Copy(merged.Fields, base.Fields)
	maps.Copy(merged.Fields, custom.Fields)
	return merged
}

// UserProfileDir returns ~/.config/marc2bib/profiles.
func UserProfileDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "marc2bib", "profiles"), nil
}
