package layout

import "math"

// Default distances, in rendering units.
const (
	DefaultNodeWidth         = 160.0
	DefaultNodeHeight        = 60.0
	DefaultHorizontalSpacing = 40.0
	DefaultVerticalSpacing   = 120.0
	DefaultPadding           = 20.0
	DefaultGridScaleX        = 200.0
	DefaultGridScaleY        = 120.0
)

// Config holds the distances that drive a layout. All values are in
// rendering units. The zero value is usable: [Config.Normalize] fills every
// missing distance with its default.
type Config struct {
	NodeWidth         float64 `json:"node_width,omitempty" mapstructure:"node_width" validate:"gte=0"`
	NodeHeight        float64 `json:"node_height,omitempty" mapstructure:"node_height" validate:"gte=0"`
	HorizontalSpacing float64 `json:"horizontal_spacing,omitempty" mapstructure:"horizontal_spacing" validate:"gte=0"`
	VerticalSpacing   float64 `json:"vertical_spacing,omitempty" mapstructure:"vertical_spacing" validate:"gte=0"`
	Padding           float64 `json:"padding,omitempty" mapstructure:"padding" validate:"gte=0"`

	// GridScaleX and GridScaleY convert seed grid cells to rendering units
	// for trees placed by the fallback path.
	GridScaleX float64 `json:"grid_scale_x,omitempty" mapstructure:"grid_scale_x" validate:"gte=0"`
	GridScaleY float64 `json:"grid_scale_y,omitempty" mapstructure:"grid_scale_y" validate:"gte=0"`

	// LabelCharWidth, when positive, widens nodes whose label would not fit:
	// width = max(NodeWidth, runes(label)*LabelCharWidth + 2*Padding).
	LabelCharWidth float64 `json:"label_char_width,omitempty" mapstructure:"label_char_width" validate:"gte=0"`
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:         DefaultNodeWidth,
		NodeHeight:        DefaultNodeHeight,
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		Padding:           DefaultPadding,
		GridScaleX:        DefaultGridScaleX,
		GridScaleY:        DefaultGridScaleY,
	}
}

// Normalize returns a copy with every non-positive or non-finite distance
// replaced by its default. LabelCharWidth is reset to 0 (disabled) when invalid.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	fix := func(v, d float64) float64 {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return d
		}
		return v
	}
	c.NodeWidth = fix(c.NodeWidth, def.NodeWidth)
	c.NodeHeight = fix(c.NodeHeight, def.NodeHeight)
	c.HorizontalSpacing = fix(c.HorizontalSpacing, def.HorizontalSpacing)
	c.VerticalSpacing = fix(c.VerticalSpacing, def.VerticalSpacing)
	c.Padding = fix(c.Padding, def.Padding)
	c.GridScaleX = fix(c.GridScaleX, def.GridScaleX)
	c.GridScaleY = fix(c.GridScaleY, def.GridScaleY)
	if c.LabelCharWidth < 0 || math.IsNaN(c.LabelCharWidth) || math.IsInf(c.LabelCharWidth, 0) {
		c.LabelCharWidth = 0
	}
	return c
}
