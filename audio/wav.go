package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrNotWAV        = errors.New("not a RIFF/WAVE file")
	ErrMissingChunk  = errors.New("missing WAV chunk")
	ErrInvalidFormat = errors.New("invalid WAV format chunk")
)

// maxFmtChunk bounds the fmt chunk read; WAVE_FORMAT_EXTENSIBLE is 40 bytes
const maxFmtChunk = 1 << 10

// WAVInfo holds the fields of a WAV header needed for duration
type WAVInfo struct {
	Channels   uint16
	SampleRate uint32
	BlockAlign uint16
	DataSize   uint32
}

// Frames is the number of sample frames declared by the data chunk
func (w WAVInfo) Frames() uint32 {
	if w.BlockAlign == 0 {
		return 0
	}
	return w.DataSize / uint32(w.BlockAlign)
}

// Duration is frames / sample rate
func (w WAVInfo) Duration() Duration {
	if w.SampleRate == 0 || w.BlockAlign == 0 {
		return Unknown
	}
	return Seconds(float64(w.Frames()) / float64(w.SampleRate))
}

// ParseWAV walks the RIFF chunks of r until it has seen "fmt " and "data",
// in either order.
func ParseWAV(r io.ReadSeeker) (WAVInfo, error) {
	var info WAVInfo

	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return info, fmt.Errorf("failed to read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return info, ErrNotWAV
	}

	haveFmt, haveData := false, false
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				missing := "data"
				if !haveFmt {
					missing = "fmt"
				}
				return info, fmt.Errorf("%w: %s", ErrMissingChunk, missing)
			}
			return info, fmt.Errorf("failed to read chunk header: %w", err)
		}

		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			if size < 16 || size > maxFmtChunk {
				return info, fmt.Errorf("%w: size %d", ErrInvalidFormat, size)
			}
			buf := make([]byte, size)
			if _, err := io.ReadFull(r, buf); err != nil {
				return info, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			info.Channels = binary.LittleEndian.Uint16(buf[2:4])
			info.SampleRate = binary.LittleEndian.Uint32(buf[4:8])
			info.BlockAlign = binary.LittleEndian.Uint16(buf[12:14])
			if info.BlockAlign == 0 {
				bits := binary.LittleEndian.Uint16(buf[14:16])
				info.BlockAlign = info.Channels * ((bits + 7) / 8)
			}
			if info.SampleRate == 0 || info.BlockAlign == 0 {
				return info, ErrInvalidFormat
			}
			haveFmt = true
			if haveData {
				return info, nil
			}
			if err := skipPad(r, size); err != nil {
				return info, err
			}

		case "data":
			info.DataSize = size
			haveData = true
			if haveFmt {
				return info, nil
			}
			if err := skipChunk(r, id, size); err != nil {
				return info, err
			}

		default:
			if err := skipChunk(r, id, size); err != nil {
				return info, err
			}
		}
	}
}

// skipChunk seeks past a chunk body and its pad byte
func skipChunk(r io.Seeker, id string, size uint32) error {
	if _, err := r.Seek(int64(size)+int64(size&1), io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip %q chunk: %w", id, err)
	}
	return nil
}

// skipPad consumes the pad byte that follows odd-sized chunks
func skipPad(r io.Seeker, size uint32) error {
	if size&1 == 0 {
		return nil
	}
	if _, err := r.Seek(1, io.SeekCurrent); err != nil {
		return fmt.Errorf("failed to skip pad byte: %w", err)
	}
	return nil
}

func wavDuration(path string) Duration {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer func() { _ = f.Close() }()

	info, err := ParseWAV(f)
	if err != nil {
		return Unknown
	}
	return info.Duration()
}
