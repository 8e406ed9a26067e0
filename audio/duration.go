package audio

import (
	"fmt"
	"os"
)

// DefaultBitrateKbps is assumed for compressed files whose bitrate cannot be read
const DefaultBitrateKbps = 128

// Duration is an estimated play time. Known is false when no estimate could be made.
type Duration struct {
	Seconds float64
	Known   bool
}

// Unknown is the estimate returned when a file cannot be measured
var Unknown = Duration{}

// Seconds wraps a known duration
func Seconds(s float64) Duration {
	return Duration{Seconds: s, Known: true}
}

// String formats the duration as "1h 2m 3s", "2m 3s" or "3s".
// Fractional seconds are truncated.
func (d Duration) String() string {
	if !d.Known || d.Seconds < 0 {
		return "unknown duration"
	}

	total := int64(d.Seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDuration is the human text for an estimate
func FormatDuration(d Duration) string {
	return d.String()
}

// EstimateDuration returns the approximate play time of the file at path.
// The extension picks the strategy (case-insensitive): WAV headers are parsed
// exactly, MP3 uses the first frame header's bitrate, anything else assumes
// DefaultBitrateKbps. It never fails; unreadable or malformed files yield Unknown.
func EstimateDuration(path, ext string) Duration {
	switch normalizeExt(ext) {
	case ".wav":
		return wavDuration(path)
	case ".mp3":
		return mp3Duration(path)
	default:
		return fallbackDuration(path)
	}
}

// bitrateDuration is file_size_bits / (kbps * 1000)
func bitrateDuration(size int64, kbps int) Duration {
	if kbps <= 0 || size < 0 {
		return Unknown
	}
	return Seconds(float64(size) * 8 / (float64(kbps) * 1000))
}

func fallbackDuration(path string) Duration {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return Unknown
	}
	return bitrateDuration(fi.Size(), DefaultBitrateKbps)
}
