package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy/ebitenview"
)

func newViewCmd() *cobra.Command {
	var (
		src            sourceOpts
		scriptPath     string
		screenshotDir  string
		exitAfter      bool
		showFPS, debug bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the interactive tree viewer",
		Long: `Open a window showing the tree. Click a node to expand or collapse it,
drag or scroll to pan, +/- or ctrl+wheel to zoom, Home to recenter on the root,
F3 toggles the stats overlay and F12 saves a screenshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := src.engine(cmd)
			if err != nil {
				return err
			}
			e.SetDebugMode(debug)

			runner, err := loadScript(scriptPath)
			if err != nil {
				return err
			}

			opts := []ebitenview.Option{
				ebitenview.WithLogger(loggerFromContext(cmd.Context())),
				ebitenview.WithScreenshotDir(screenshotDir),
			}
			if runner != nil {
				opts = append(opts, ebitenview.WithScript(runner))
				if exitAfter {
					opts = append(opts, ebitenview.WithExitOnScriptDone())
				}
			}

			return ebitenview.Run(ebitenview.NewView(e, opts...), ebitenview.RunConfig{
				Title:   "Canopy",
				Width:   src.width,
				Height:  src.height,
				ShowFPS: showFPS,
			})
		},
	}

	src.register(cmd)
	f := cmd.Flags()
	f.StringVarP(&scriptPath, "script", "s", "", "JSON interaction script to replay")
	f.StringVar(&screenshotDir, "screenshots", "screenshots", "directory for screenshots")
	f.BoolVar(&exitAfter, "exit", false, "quit when the script finishes")
	f.BoolVar(&showFPS, "fps", false, "show the stats overlay")
	f.BoolVar(&debug, "debug", false, "log per-frame cull timings (with --verbose)")
	return cmd
}
