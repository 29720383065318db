package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var manifestValidate *validator.Validate

func init() {
	manifestValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their YAML key so messages match the manifest.
	manifestValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateManifest checks the manifest before conversion and returns every
// problem found. baseDir resolves relative paths for the duplicate check.
func ValidateManifest(m *Manifest, baseDir string) []error {
	var errs []error

	if err := manifestValidate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{err}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	ids := make(map[string]int)
	paths := make(map[string]int)
	for i, e := range m.Projects {
		prefix := fmt.Sprintf("projects[%d]", i)

		if e.ID != "" {
			if prev, ok := ids[strings.ToLower(e.ID)]; ok {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q (also projects[%d])", prefix, e.ID, prev))
			} else {
				ids[strings.ToLower(e.ID)] = i
			}
		}

		var abs string
		if e.Path != "" {
			abs = resolvePath(baseDir, e.Path)
			if prev, ok := paths[abs]; ok {
				errs = append(errs, fmt.Errorf("%s.path: duplicate path %q (also projects[%d])", prefix, e.Path, prev))
			} else {
				paths[abs] = i
			}
		}

		for j, ref := range e.References {
			if ref == "" {
				continue
			}
			if (e.ID != "" && strings.EqualFold(ref, e.ID)) || (abs != "" && resolvePath(baseDir, ref) == abs) {
				errs = append(errs, fmt.Errorf("%s.references[%d]: project references itself", prefix, j))
			}
		}
	}

	return errs
}

func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "min":
		return fmt.Errorf("%s must contain at least %s entry", field, fe.Param())
	case "uuid":
		return fmt.Errorf("%s: %q is not a UUID", field, fe.Value())
	default:
		return fmt.Errorf("%s: failed %q validation", field, fe.Tag())
	}
}

// resolvePath returns path as a clean absolute path, joining relative
// paths to baseDir.
func resolvePath(baseDir, path string) string {
	path = filepath.FromSlash(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	return filepath.Clean(path)
}
