package screener

// CellKind tells how a cell should be displayed.
type CellKind int

const (
	// CellText is displayed as is.
	CellText CellKind = iota
	// CellNumber is a formatted number.
	CellNumber
	// CellBadge is a value from a small set, displayed as a badge.
	CellBadge
)

func (k CellKind) String() string {
	switch k {
	case CellText:
		return "text"
	case CellNumber:
		return "number"
	case CellBadge:
		return "badge"
	default:
		return "unknown"
	}
}

// DefaultBadgeThreshold is the default number of unique values under which a column is
// displayed with badges.
const DefaultBadgeThreshold = 15

// Cells infers the display kind of the cells of a dataset.
type Cells struct {
	uniques   map[string]int
	threshold int
}

// NewCells counts the unique values of every field of the dataset. Columns holding fewer than
// 'threshold' unique values, null included, are displayed as badges.
// A threshold <= 0 uses DefaultBadgeThreshold.
func NewCells(ds Dataset, threshold int) *Cells {
	if threshold <= 0 {
		threshold = DefaultBadgeThreshold
	}
	sets := make(map[string]map[string]bool)
	for _, r := range ds {
		for f := range r.Fields() {
			set, ok := sets[f.Name]
			if !ok {
				set = make(map[string]bool)
				sets[f.Name] = set
			}
			set[valueKey(f.Value)] = true
		}
	}
	c := &Cells{uniques: make(map[string]int, len(sets)), threshold: threshold}
	for name, set := range sets {
		c.uniques[name] = len(set)
	}
	return c
}

// Unique returns the number of unique values of the field 'name'.
func (c *Cells) Unique(name string) int { return c.uniques[name] }

// Kind returns the display kind of value v in the field 'name'.
// Numbers are always CellNumber, whatever the column.
func (c *Cells) Kind(name string, v Value) CellKind {
	switch {
	case v.IsNumber():
		return CellNumber
	case c.uniques[name] < c.threshold:
		return CellBadge
	default:
		return CellText
	}
}

// Format returns the display text and kind of value v in the field 'name'.
func (c *Cells) Format(name string, v Value) (string, CellKind) {
	k := c.Kind(name, v)
	if d, ok := v.Number(); ok {
		return FormatNumber(d), k
	}
	return v.String(), k
}

// valueKey returns a string unique to the value kind and content.
func valueKey(v Value) string {
	switch {
	case v.IsNumber():
		return "n:" + v.String()
	case v.IsText():
		return "s:" + v.String()
	default:
		return "z:"
	}
}
