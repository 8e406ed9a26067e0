package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/lepinkainen/audiomerge/audio"
	"github.com/lepinkainen/audiomerge/types"
)

type OrderCmd struct {
	Files     []string `arg:"" name:"files" help:"Audio files or directories to order" type:"path"`
	Recursive bool     `short:"r" help:"Descend into subdirectories"`
}

// Run prints one path per line so the output can be fed back to merge
func (cmd *OrderCmd) Run(appCtx *types.AppContext) error {
	files, err := audio.ExpandInputs(cmd.Files, cmd.Recursive)
	if err != nil {
		return fmt.Errorf("failed to collect input files: %w", err)
	}

	types.LoggerOf(appCtx, false).Debug("ordering files", "count", len(files))
	printOrder(os.Stdout, files)
	return nil
}

func printOrder(w io.Writer, files []string) {
	for _, path := range audio.OrderPaths(files) {
		_, _ = fmt.Fprintln(w, path)
	}
}
