package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AudioExtensions lists the extensions offered for selection. The extension is
// advisory: content is only inspected for WAV and MP3 duration estimation.
var AudioExtensions = []string{".mp3", ".wav", ".flac", ".aac", ".ogg"}

// IsAudioFile checks if the given file extension is one of known audio file extensions
func IsAudioFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, v := range AudioExtensions {
		if v == ext {
			return true
		}
	}
	return false
}

// normalizeExt lowercases an extension and makes sure it starts with a dot
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExpandInputs turns command line arguments into a list of files.
// Files are passed through as given; directories are scanned for audio files,
// descending into subdirectories only when recursive is set.
func ExpandInputs(args []string, recursive bool) ([]string, error) {
	var files []string

	for _, arg := range args {
		fi, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", arg, err)
		}

		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := findAudioFiles(arg, recursive)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
		files = append(files, found...)
	}

	return files, nil
}

// findAudioFiles uses filepath.WalkDir to collect audio files under directory
func findAudioFiles(directory string, recursive bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != directory && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}
