package workflow

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// templateFile formato YAML de una plantilla de estados:
//
//	statuses:
//	  - name: Pendiente
//	    color: "#f59e0b"
//	    icon: clock
//	    sort_order: 1
type templateFile struct {
	Statuses []entity.StatusSpec `yaml:"statuses"`
}

// LoadTemplate lee una plantilla de estados desde YAML. Ruta vacía = plantilla por defecto.
func LoadTemplate(path string) ([]entity.StatusSpec, error) {
	if strings.TrimSpace(path) == "" {
		return entity.DefaultStatusTemplate(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer plantilla de estados: %w", err)
	}
	return ParseTemplate(raw)
}

// ParseTemplate decodifica y valida una plantilla: al menos un estado, nombres no vacíos y únicos.
func ParseTemplate(raw []byte) ([]entity.StatusSpec, error) {
	var f templateFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decodificar plantilla de estados: %w", err)
	}
	if len(f.Statuses) == 0 {
		return nil, fmt.Errorf("plantilla de estados vacía")
	}
	seen := make(map[string]struct{}, len(f.Statuses))
	for i := range f.Statuses {
		spec := &f.Statuses[i]
		spec.Name = normalizeName(spec.Name)
		if spec.Name == "" {
			return nil, fmt.Errorf("plantilla de estados: entrada %d sin nombre", i+1)
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("plantilla de estados: nombre repetido %q", spec.Name)
		}
		seen[spec.Name] = struct{}{}
		if spec.Color == "" {
			spec.Color = entity.DefaultStatusColor
		}
		if spec.Icon == "" {
			spec.Icon = entity.DefaultStatusIcon
		}
		if spec.SortOrder == 0 {
			spec.SortOrder = i + 1
		}
	}
	return f.Statuses, nil
}

// normalizeName recorta espacios y lleva el nombre a NFC para que "Preparado" compuesto y
// descompuesto no convivan como estados distintos.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
