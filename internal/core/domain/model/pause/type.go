package pause

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Type is the category of a pause as chosen by the operator.
type Type string

const (
	Setup                Type = "Preparación Arranque"
	QualityCheck         Type = "Verificación Calidad"
	MaterialShortage     Type = "Falta de Material"
	PositionerIncident   Type = "Incidencia Máquina: Posicionadora"
	CounterIncident      Type = "Incidencia Máquina: Contadora"
	CapperIncident       Type = "Incidencia Máquina: Taponadora"
	LabelerIncident      Type = "Incidencia Máquina: Etiquetadora"
	CheckweigherIncident Type = "Incidencia Máquina: Controladora de Peso"
	CaserIncident        Type = "Incidencia Máquina: Encajadora"
	Maintenance          Type = "Mantenimiento"
	ShiftChange          Type = "cambio_turno"
	PartialInterruption  Type = "pausa_parcial"
)

func (t Type) String() string {
	return string(t)
}

// IsExcludedFromDowntime reports whether pauses of this type are never
// counted as downtime.
func (t Type) IsExcludedFromDowntime() bool {
	return t == ShiftChange || t == PartialInterruption
}

// CatalogEntry is one allowed pause type.
type CatalogEntry struct {
	Type                 Type `json:"type"`
	CountsTowardDowntime bool `json:"countsTowardDowntime"`
}

// Catalog is the configured set of allowed pause types.
type Catalog struct {
	entries []CatalogEntry
	index   map[Type]bool
}

// NewCatalog builds a catalog, rejecting blank and duplicated types.
// Excluded types are always stored with the downtime flag cleared.
func NewCatalog(entries ...CatalogEntry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, errs.NewValueIsRequiredError("pause catalog")
	}

	c := &Catalog{
		entries: make([]CatalogEntry, 0, len(entries)),
		index:   make(map[Type]bool, len(entries)),
	}
	for _, e := range entries {
		if strings.TrimSpace(string(e.Type)) == "" {
			return nil, errs.NewValueIsRequiredError("pause type")
		}
		if _, ok := c.index[e.Type]; ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("pause catalog", fmt.Errorf("%q is listed twice", e.Type))
		}
		if e.Type.IsExcludedFromDowntime() {
			e.CountsTowardDowntime = false
		}
		c.entries = append(c.entries, e)
		c.index[e.Type] = e.CountsTowardDowntime
	}

	return c, nil
}

// DefaultCatalog returns the pause types used on the packaging lines.
func DefaultCatalog() *Catalog {
	c, _ := NewCatalog(
		CatalogEntry{Type: Setup, CountsTowardDowntime: true},
		CatalogEntry{Type: QualityCheck, CountsTowardDowntime: true},
		CatalogEntry{Type: MaterialShortage, CountsTowardDowntime: true},
		CatalogEntry{Type: PositionerIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: CounterIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: CapperIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: LabelerIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: CheckweigherIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: CaserIncident, CountsTowardDowntime: true},
		CatalogEntry{Type: Maintenance, CountsTowardDowntime: true},
		CatalogEntry{Type: ShiftChange, CountsTowardDowntime: false},
		CatalogEntry{Type: PartialInterruption, CountsTowardDowntime: false},
	)
	return c
}

// Parse resolves a raw type name against the catalog and returns the type with
// its downtime flag. Unknown names yield a ValueIsInvalidError.
func (c *Catalog) Parse(raw string) (Type, bool, error) {
	t := Type(raw)
	counts, ok := c.index[t]
	if !ok {
		if strings.TrimSpace(raw) == "" {
			return "", false, errs.NewValueIsRequiredError("pause type")
		}
		return "", false, errs.NewValueIsInvalidErrorWithCause("pause type", fmt.Errorf("%q is not an allowed pause type", raw))
	}
	return t, counts, nil
}

// Entries returns the allowed types in configuration order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}
