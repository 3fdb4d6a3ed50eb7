package splitpane

// DefaultMinSize is the floor applied when no MinSize is configured.
const DefaultMinSize = 50

// Config is the full set of options a host can pass to a split pane.
// Start from DefaultConfig; the zero Config disables resizing.
type Config struct {
	// AllowResize turns the drag state machine on. When false the divider
	// still renders but pointer input is ignored.
	AllowResize bool
	// MinSize is the floor for the primary pane size.
	MinSize int
	// MaxSize is the optional ceiling. Values <= 0 mean "container extent
	// minus |MaxSize|".
	MaxSize *int
	// DefaultSize is used when neither Size nor a previous drag applies.
	DefaultSize Size
	// Size is the controlled size; a change overrides the drag memory.
	Size Size
	// Primary selects which pane is explicitly sized.
	Primary Primary
	// Split selects the resize axis and the flex direction.
	Split Orientation

	OnDragStarted  func()
	OnChange       func(Size)
	OnDragFinished func(Size)

	ClassName        string
	ResizerClassName string
	Style            Style
	PaneStyle        Style
	Pane1Style       Style
	Pane2Style       Style
	ResizerStyle     Style

	OnResizerClick       func()
	OnResizerDoubleClick func()
}

// DefaultConfig returns the documented defaults: resizing on, min size 50,
// first pane primary, vertical split.
func DefaultConfig() Config {
	return Config{
		AllowResize: true,
		MinSize:     DefaultMinSize,
		Primary:     First,
		Split:       Vertical,
	}
}

// IntPtr is a helper for the optional MaxSize field.
func IntPtr(v int) *int { return &v }

func (c Config) primaryFirst() bool { return c.Primary == First }
