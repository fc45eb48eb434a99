package model

// PreviewModel tracks whether the annotated preview is rendered. Rendering
// costs a PNG encode per frame, so it can be switched off while flying.
// The zero value is disabled and usable.
type PreviewModel struct{ enabled bool }

// NewPreviewModel returns a model with the given initial state.
func NewPreviewModel(enabled bool) *PreviewModel { return &PreviewModel{enabled: enabled} }

// Enabled reports whether the preview is rendered.
func (m *PreviewModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled
}

// SetEnabled stores the enabled flag.
func (m *PreviewModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	m.enabled = b
}

// Toggle flips the flag and returns the new value.
func (m *PreviewModel) Toggle() bool {
	if m == nil {
		return false
	}
	m.enabled = !m.enabled
	return m.enabled
}
