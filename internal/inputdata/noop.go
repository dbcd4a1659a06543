package inputdata

// Noop passes the payload through as a string. It is never auto-detected.
type Noop struct{}

func (Noop) Name() string { return NameNoop }

func (Noop) Detect(string) bool { return false }

func (Noop) Transform(raw string) (any, error) { return raw, nil }
