package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lepinkainen/audiomerge/audio"
)

func TestJobFinished(t *testing.T) {
	c := NewCollector()

	c.JobFinished(audio.StatusSucceeded, 3, 425, 1500*time.Millisecond)
	c.JobFinished(audio.StatusSucceeded, 2, 100, time.Second)
	c.JobFinished(audio.StatusCancelled, 2, 0, time.Millisecond)

	if got := testutil.ToFloat64(c.jobsTotal.WithLabelValues("succeeded")); got != 2 {
		t.Errorf("Expected 2 succeeded jobs, got %f", got)
	}
	if got := testutil.ToFloat64(c.jobsTotal.WithLabelValues("cancelled")); got != 1 {
		t.Errorf("Expected 1 cancelled job, got %f", got)
	}
	if got := testutil.ToFloat64(c.bytesWritten); got != 525 {
		t.Errorf("Expected 525 bytes written, got %f", got)
	}
	if got := testutil.CollectAndCount(c.inputFiles); got != 1 {
		t.Errorf("Expected one input histogram, got %d", got)
	}
}

func TestDuplicatesFound(t *testing.T) {
	c := NewCollector()
	c.DuplicatesFound(0)
	c.DuplicatesFound(2)

	if got := testutil.ToFloat64(c.duplicateGroups); got != 2 {
		t.Errorf("Expected 2 duplicate groups, got %f", got)
	}
}

func TestCollectorImplementsRecorder(t *testing.T) {
	var _ audio.Recorder = NewCollector()
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	a.DuplicatesFound(1)

	if got := testutil.ToFloat64(b.duplicateGroups); got != 0 {
		t.Errorf("Expected separate registries, got %f", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.JobFinished(audio.StatusFailed, 1, 64, time.Second)

	path := filepath.Join(t.TempDir(), "audiomerge.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read textfile: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		`audiomerge_jobs_total{status="failed"} 1`,
		"audiomerge_bytes_written_total 64",
		"audiomerge_job_duration_seconds_bucket",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Textfile missing %q:\n%s", want, content)
		}
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	c := NewCollector()
	if err := c.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")); err == nil {
		t.Error("Expected error for unwritable path")
	}
}
