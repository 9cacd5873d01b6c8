package clipboard

// MemorySink records writes in memory. It backs tests and dry runs.
type MemorySink struct {
	// Writes holds every text written, in order.
	Writes []string
	// FailOn, when set, is returned by the write whose text it receives.
	FailOn func(text string) error
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Write implements Sink.
func (m *MemorySink) Write(text string) error {
	if m.FailOn != nil {
		if err := m.FailOn(text); err != nil {
			return wrap("memory", text, err)
		}
	}
	m.Writes = append(m.Writes, text)
	return nil
}

// Current returns the clipboard content, empty if nothing was written.
func (m *MemorySink) Current() string {
	if len(m.Writes) == 0 {
		return ""
	}
	return m.Writes[len(m.Writes)-1]
}
