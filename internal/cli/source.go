package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/canopy"
	"github.com/phanxgames/canopy/internal/treedata"
)

// sourceOpts selects the tree and engine configuration shared by every
// command.
type sourceOpts struct {
	configPath string
	dataPath   string
	demo       string
	fanout     int
	depth      int
	width      int
	height     int
}

func (o *sourceOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "layout config file (.toml, .yaml)")
	f.StringVarP(&o.dataPath, "data", "d", "", "JSON tree file (overrides --demo)")
	f.StringVar(&o.demo, "demo", "org", "built-in tree: org or shared")
	f.IntVar(&o.fanout, "fanout", 100, "children per node for --demo shared")
	f.IntVar(&o.depth, "depth", 4, "levels below the root for --demo shared")
	f.IntVar(&o.width, "width", 1280, "viewport width in pixels")
	f.IntVar(&o.height, "height", 800, "viewport height in pixels")
}

// config loads the engine configuration, applying the viewport flags.
func (o *sourceOpts) config() (canopy.Config, error) {
	cfg := canopy.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = canopy.LoadConfig(o.configPath); err != nil {
			return cfg, err
		}
	}
	cfg.ViewportWidth = float64(o.width)
	cfg.ViewportHeight = float64(o.height)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// tree loads the input tree and returns it with a short description for
// logging.
func (o *sourceOpts) tree() (*canopy.Node, string, error) {
	if o.dataPath != "" {
		root, err := treedata.Load(o.dataPath)
		return root, o.dataPath, err
	}
	switch o.demo {
	case "org":
		return treedata.OrgChart(), "org chart", nil
	case "shared":
		root, err := treedata.Shared(o.fanout, o.depth)
		if err != nil {
			return nil, "", err
		}
		desc := fmt.Sprintf("shared %d^%d (%d virtual nodes)", o.fanout, o.depth, treedata.VirtualCount(o.fanout, o.depth))
		return root, desc, nil
	default:
		return nil, "", fmt.Errorf("unknown demo %q (want org or shared)", o.demo)
	}
}

// engine builds an engine from the flags, logging through the command's
// logger.
func (o *sourceOpts) engine(cmd *cobra.Command) (*canopy.Engine, error) {
	logger := loggerFromContext(cmd.Context())

	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	prog := newProgress(logger)
	root, desc, err := o.tree()
	if err != nil {
		return nil, err
	}

	e, err := canopy.NewEngine(root, cfg,
		canopy.WithLogger(logger),
		canopy.WithActivationHandler(func(a canopy.Activation) {
			logger.Debug("node activated", "id", a.Node.ID, "level", a.Node.Level, "transition", a.Transition)
		}),
	)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded tree", "source", desc, "indexed", e.Index().Len())
	return e, nil
}

// loadScript reads an interaction script, or returns nil for an empty path.
func loadScript(path string) (*canopy.ScriptRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return canopy.LoadScript(data)
}
