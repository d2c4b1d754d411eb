// Command galinfo lists the gal backends, their physical devices and what
// those devices support.
//
// Usage:
//
//	galinfo backends
//	galinfo devices [--backend wgpu]
//	galinfo formats --backend null --device 0
//	galinfo check
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/backend/null"
	"github.com/gogpu/gal/backend/wgpu"

	_ "github.com/gogpu/wgpu/hal/allbackends"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	reg, err := gal.NewRegistry(wgpu.Plugin(), null.Plugin())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := newRootCmd(reg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	config     string
	plugins    string
	backend    string
	verbose    bool
	validation bool
}

// options turns the persistent flags into renderer options. Flags that
// were set override the config file.
func (f *flags) options(cmd *cobra.Command) ([]gal.Option, error) {
	var opts []gal.Option
	if f.config != "" {
		cfg, err := gal.LoadConfig(f.config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gal.WithConfig(cfg))
	}
	if cmd.Flags().Changed("validation") {
		opts = append(opts, gal.WithValidation(f.validation))
	}
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	gal.SetLogger(logger)
	return append(opts, gal.WithAppName("galinfo"), gal.WithLogger(logger)), nil
}

// selected returns the backends chosen by --backend, or all of them.
func (f *flags) selected(reg *gal.Registry) ([]gal.Plugin, error) {
	if f.backend == "" {
		return reg.Plugins(), nil
	}
	p, ok := reg.Lookup(f.backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", gal.ErrBackendNotFound, f.backend, reg.Names())
	}
	return []gal.Plugin{p}, nil
}

func newRootCmd(reg *gal.Registry) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "galinfo",
		Short:        "Inspect gal backends and devices",
		Version:      "api " + gal.APIVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if f.plugins == "" {
				return nil
			}
			// a broken manifest does not hide the working backends
			if err := reg.Probe(f.plugins); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "galinfo: %v\n", err)
			}
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "TOML config file")
	pf.StringVar(&f.plugins, "plugins", "", "directory probed for plugin manifests")
	pf.StringVarP(&f.backend, "backend", "b", "", "backend ID or name (default: all)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")
	pf.BoolVar(&f.validation, "validation", true, "enable layer validation")

	root.AddCommand(
		newBackendsCmd(reg),
		newDevicesCmd(reg, f),
		newFormatsCmd(reg, f),
		newCheckCmd(reg, f),
	)
	return root
}
