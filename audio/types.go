package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// InputFile is one user-selected audio file captured for a merge job
type InputFile struct {
	Path      string
	Extension string
}

// NewInputFile captures the path and extension of a file without touching the filesystem
func NewInputFile(path string) InputFile {
	return InputFile{
		Path:      path,
		Extension: filepath.Ext(path),
	}
}

// Name returns the base name of the file
func (f InputFile) Name() string {
	return filepath.Base(f.Path)
}

// Size stats the file on every call; the result is never cached
func (f InputFile) Size() (int64, error) {
	fi, err := os.Stat(f.Path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// MergeJob is the frozen description of one merge run.
// Inputs are put in natural order when the job is created and never reordered.
type MergeJob struct {
	ID        string
	BaseName  string
	OutputDir string
	Extension string

	inputs []InputFile
}

// NewMergeJob orders paths and derives the output location from the first ordered input.
// It never fails: an empty path list or a blank base name is rejected by the engine.
func NewMergeJob(paths []string, baseName string) MergeJob {
	ordered := OrderPaths(paths)

	inputs := make([]InputFile, len(ordered))
	for i, p := range ordered {
		inputs[i] = NewInputFile(p)
	}

	job := MergeJob{
		ID:       uuid.NewString(),
		BaseName: strings.TrimSpace(baseName),
		inputs:   inputs,
	}
	if len(inputs) > 0 {
		job.OutputDir = filepath.Dir(inputs[0].Path)
		job.Extension = inputs[0].Extension
	}
	return job
}

// Inputs returns a copy of the ordered inputs
func (j MergeJob) Inputs() []InputFile {
	out := make([]InputFile, len(j.inputs))
	copy(out, j.inputs)
	return out
}

// Paths returns the ordered input paths
func (j MergeJob) Paths() []string {
	out := make([]string, len(j.inputs))
	for i, in := range j.inputs {
		out[i] = in.Path
	}
	return out
}

// OutputPath is directory_of(first) / (base name + extension_of(first)).
// The extension is always taken from the first input, whatever the other formats are.
func (j MergeJob) OutputPath() string {
	return filepath.Join(j.OutputDir, j.BaseName+j.Extension)
}

// DuplicateGroup is a set of inputs believed to have identical content
type DuplicateGroup struct {
	Size   int64
	Digest string
	Files  []InputFile
}

// Paths returns the paths of the files in the group
func (g DuplicateGroup) Paths() []string {
	out := make([]string, len(g.Files))
	for i, f := range g.Files {
		out[i] = f.Path
	}
	return out
}
