package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
)

// maxScriptFrames bounds headless script replay.
const maxScriptFrames = 100000

func newInspectCmd() *cobra.Command {
	var (
		src        sourceOpts
		scriptPath string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print index and frame statistics without opening a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := src.engine(cmd)
			if err != nil {
				return err
			}
			runner, err := loadScript(scriptPath)
			if err != nil {
				return err
			}
			if runner != nil {
				if err := replay(e, runner); err != nil {
					return err
				}
			}
			return printSummary(cmd.OutOrStdout(), e)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&scriptPath, "script", "s", "", "JSON interaction script to replay before printing")
	return cmd
}

// replay steps the script at 60 ticks per second until it finishes and the
// camera has settled. Screenshot steps are ignored.
func replay(e *canopy.Engine, r *canopy.ScriptRunner) error {
	const dt = float32(1.0 / 60)
	for frame := 0; frame < maxScriptFrames; frame++ {
		if r.Done() && !e.Camera().Animating() && !e.Camera().WheelPending() {
			return nil
		}
		r.Step(e)
		e.Update(dt)
	}
	return errors.New("replay: script did not finish")
}

func printSummary(w io.Writer, e *canopy.Engine) error {
	f := e.Frame()
	exp := e.Expansion()
	_, err := fmt.Fprintf(w,
		"indexed nodes: %d\nlevels: %d\nopen path: %v\nvisible nodes: %d\nedge polylines: %d\nprimitives: %d\npan: (%.1f, %.1f) zoom: %.2f\n",
		e.Index().Len(), exp.Depth(), exp.OpenPath(),
		len(f.Nodes), len(f.Edges), f.Primitives(),
		f.Camera.PanX, f.Camera.PanY, f.Camera.Scale,
	)
	return err
}
