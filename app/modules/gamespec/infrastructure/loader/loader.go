package gamespecloader

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	gamespecdomain "github.com/Black-And-White-Club/golf-scoring/app/modules/gamespec/domain"
	"gopkg.in/yaml.v3"
)

//go:embed specs/*.yaml
var builtin embed.FS

// Parse decodes every YAML document in data and validates each spec. Unknown
// fields are rejected so typos surface at load time.
func Parse(data []byte) ([]gamespecdomain.GameSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var specs []gamespecdomain.GameSpec
	var errs []error
	for {
		var spec gamespecdomain.GameSpec
		err := dec.Decode(&spec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode: %v", gamespecdomain.ErrMalformedGameSpec, err)
		}
		if err := gamespecdomain.Validate(spec); err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}

// LoadFile reads and validates the specs in one YAML file.
func LoadFile(filename string) ([]gamespecdomain.GameSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read gamespec file: %w", err)
	}
	specs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return specs, nil
}

// LoadDir loads every .yaml and .yml file in dir, in file name order.
func LoadDir(dir string) ([]gamespecdomain.GameSpec, error) {
	return loadFS(os.DirFS(dir), ".", dir)
}

// Builtin returns the specs shipped with the binary.
func Builtin() ([]gamespecdomain.GameSpec, error) {
	return loadFS(builtin, "specs", "builtin")
}

func loadFS(fsys fs.FS, root, label string) ([]gamespecdomain.GameSpec, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to list gamespecs in %s: %w", label, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	var specs []gamespecdomain.GameSpec
	var errs []error
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read gamespec %s: %w", name, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		specs = append(specs, parsed...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return specs, nil
}

// Find returns the spec with the given name and, when version is positive,
// that version. Otherwise the highest version wins.
func Find(specs []gamespecdomain.GameSpec, name string, version int) (gamespecdomain.GameSpec, bool) {
	var best gamespecdomain.GameSpec
	found := false
	for _, s := range specs {
		if s.Name != name {
			continue
		}
		if version > 0 {
			if s.Version == version {
				return s, true
			}
			continue
		}
		if !found || s.Version > best.Version {
			best, found = s, true
		}
	}
	return best, found
}
