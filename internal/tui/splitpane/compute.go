package splitpane

// ResizeInput carries everything one resize step needs.
type ResizeInput struct {
	// Current is the pointer coordinate along the split axis.
	Current int
	// Anchor is the coordinate recorded at the last accepted step.
	Anchor int
	// PaneExtent is the measured extent of the primary pane.
	PaneExtent int
	// ContainerExtent is the measured extent of the whole split pane. Only
	// consulted when MaxSize is container-relative.
	ContainerExtent int
	PrimaryFirst    bool
	MinSize         int
	MaxSize         *int
}

// ResizeResult is the outcome of one resize step. When Clamped is set the
// anchor must not advance.
type ResizeResult struct {
	Size    int
	Clamped bool
}

// EffectiveMaxSize resolves MaxSize against the container: values <= 0 are
// measured back from the far edge. ok is false when there is no ceiling.
func EffectiveMaxSize(maxSize *int, containerExtent int) (int, bool) {
	if maxSize == nil {
		return 0, false
	}
	if *maxSize <= 0 {
		return containerExtent + *maxSize, true
	}
	return *maxSize, true
}

// ComputeSize turns a pointer delta into a new primary pane size.
//
// A clamped step keeps the old anchor, so after hitting a bound the pane
// stays there until the pointer crosses back over the point where the bound
// was first reached.
func ComputeSize(in ResizeInput) ResizeResult {
	delta := in.Current - in.Anchor
	if in.PrimaryFirst {
		delta = in.Anchor - in.Current
	}
	size := in.PaneExtent - delta

	if size < in.MinSize {
		return ResizeResult{Size: in.MinSize, Clamped: true}
	}
	if ceiling, ok := EffectiveMaxSize(in.MaxSize, in.ContainerExtent); ok && size > ceiling {
		return ResizeResult{Size: ceiling, Clamped: true}
	}
	return ResizeResult{Size: size}
}

// ResolveSize picks the primary pane size for a configuration:
// explicit Size, then the last dragged size, then DefaultSize, then MinSize.
func ResolveSize(cfg Config, dragged Size) Size {
	switch {
	case cfg.Size.IsSet():
		return cfg.Size
	case dragged.IsSet():
		return dragged
	case cfg.DefaultSize.IsSet():
		return cfg.DefaultSize
	}
	return Cells(cfg.MinSize)
}

// ClampSize applies the configured bounds to an already resolved size.
// The floor always applies; the ceiling only when MaxSize is set.
func ClampSize(size, containerExtent int, cfg Config) int {
	if ceiling, ok := EffectiveMaxSize(cfg.MaxSize, containerExtent); ok && size > ceiling {
		size = ceiling
	}
	if size < cfg.MinSize {
		size = cfg.MinSize
	}
	return size
}
