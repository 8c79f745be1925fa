package core

// RuntimeConfig contains the terminal settings the platform hands to a
// screen. Match rules live in the config package.
type RuntimeConfig struct {
	ScreenW int // Screen width in characters
	ScreenH int // Screen height in characters
}

// DefaultConfig returns the size used when the terminal cannot report one.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
