package bell

import (
	"fmt"
	"time"
)

// Config controls bell synthesis and rate limiting
type Config struct {
	Enabled    bool          `yaml:"enabled" env:"ENABLED"`
	Volume     float64       `yaml:"volume" env:"VOLUME"`       // 0.0-1.0
	Frequency  float64       `yaml:"frequency" env:"FREQUENCY"` // Hz, error buzz
	Duration   time.Duration `yaml:"duration" env:"DURATION"`   // Per sound
	MinGap     time.Duration `yaml:"min_gap" env:"MIN_GAP"`     // Between rings
	SampleRate int           `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// DefaultConfig returns a muted bell with a short low buzz
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Volume:     0.5,
		Frequency:  220,
		Duration:   80 * time.Millisecond,
		MinGap:     150 * time.Millisecond,
		SampleRate: 44100,
	}
}

// Validate rejects values the synthesizer cannot use
func (c Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("bell volume %v out of range [0,1]", c.Volume)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("bell frequency must be positive, got %v", c.Frequency)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("bell duration must be positive, got %v", c.Duration)
	}
	if c.MinGap < 0 {
		return fmt.Errorf("bell min gap must not be negative, got %v", c.MinGap)
	}
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("bell sample rate %d out of range", c.SampleRate)
	}
	return nil
}
