package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lepinkainen/audiomerge/audio"
	"github.com/lepinkainen/audiomerge/types"
	"github.com/lepinkainen/audiomerge/ui"
)

type DurationCmd struct {
	Files []string `arg:"" name:"files" help:"Audio files to inspect" type:"existingfile"`
}

func (cmd *DurationCmd) Run(appCtx *types.AppContext) error {
	fmt.Println(ui.Title(types.VersionOf(appCtx), ""))
	printDurations(os.Stdout, audio.OrderPaths(cmd.Files))
	return nil
}

// printDurations lists the estimate for every file and the total of the known ones
func printDurations(w io.Writer, files []string) {
	var total float64
	unknown := 0

	for _, path := range files {
		d := audio.EstimateDuration(path, filepath.Ext(path))
		if d.Known {
			total += d.Seconds
			_, _ = fmt.Fprintf(w, "%s  %s\n", d, path)
		} else {
			unknown++
			_, _ = fmt.Fprintf(w, "%s  %s\n", ui.ErrorStyle.Render(d.String()), path)
		}
	}

	summary := fmt.Sprintf("Total: %s for %d file(s)", audio.Seconds(total), len(files)-unknown)
	if unknown > 0 {
		summary += fmt.Sprintf(", %d unknown", unknown)
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", ui.InfoStyle.Render(summary))
}
