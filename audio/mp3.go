package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
)

// mp3ScanWindow is how far into the file the frame sync search looks
const mp3ScanWindow = 4096

// mpeg1Layer3Kbps is indexed by the 4-bit bitrate index; 0 (free) and 15 (bad) are invalid
var mpeg1Layer3Kbps = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}

// FindFrameSync returns the offset of the first 0xFF byte followed by a byte
// with its top three bits set, or -1.
func FindFrameSync(buf []byte) int {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == 0xFF && buf[i+1]&0xE0 == 0xE0 {
			return i
		}
	}
	return -1
}

// MP3Bitrate reads the bitrate of a 4-byte frame header using the MPEG-1
// Layer III table. Other MPEG versions and layers are read through the same
// table; this is an approximation.
func MP3Bitrate(header []byte) (int, bool) {
	if len(header) < 4 {
		return 0, false
	}
	h := binary.BigEndian.Uint32(header[:4])
	kbps := mpeg1Layer3Kbps[(h>>12)&0xF]
	return kbps, kbps > 0
}

// ScanMP3Bitrate takes the first frame sync in buf unconditionally and reads its bitrate.
// The sync must start within the first mp3ScanWindow bytes; its header may run past
// them, so callers pass up to three extra bytes. ID3 padding and VBR streams are
// misjudged; callers fall back to DefaultBitrateKbps.
func ScanMP3Bitrate(buf []byte) (int, bool) {
	off := FindFrameSync(buf)
	if off < 0 || off >= mp3ScanWindow || off+4 > len(buf) {
		return 0, false
	}
	return MP3Bitrate(buf[off : off+4])
}

func mp3Duration(path string) Duration {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		return Unknown
	}

	buf := make([]byte, mp3ScanWindow+3)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Unknown
	}

	kbps, ok := ScanMP3Bitrate(buf[:n])
	if !ok {
		kbps = DefaultBitrateKbps
	}
	return bitrateDuration(fi.Size(), kbps)
}
