package cache

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	NodeWidth         float64 `json:"node_width"`
	NodeHeight        float64 `json:"node_height"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	Padding           float64 `json:"padding"`
	GridScaleX        float64 `json:"grid_scale_x"`
	GridScaleY        float64 `json:"grid_scale_y"`
	LabelCharWidth    float64 `json:"label_char_width"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string `json:"format"`
	ShowLabel bool   `json:"show_label"`
	FlipY     bool   `json:"flip_y"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of the records with the given
	// content hash.
	LayoutKey(recordsHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key for an artifact rendered from the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "kind:sha256(hash, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(recordsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", recordsHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
