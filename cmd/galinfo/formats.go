package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/gal"
)

// physicalDevice creates the renderer chosen by --backend and returns its
// device index. The caller destroys the renderer.
func physicalDevice(cmd *cobra.Command, reg *gal.Registry, f *flags, index int) (gal.Renderer, gal.PhysicalDevice, error) {
	if f.backend == "" {
		return nil, nil, fmt.Errorf("--backend is required (have %v)", reg.Names())
	}
	opts, err := f.options(cmd)
	if err != nil {
		return nil, nil, err
	}
	r, err := reg.CreateRenderer(f.backend, opts...)
	if err != nil {
		return nil, nil, err
	}
	pd, err := r.PhysicalDevice(index)
	if err != nil {
		r.Destroy()
		return nil, nil, err
	}
	return r, pd, nil
}

func newFormatsCmd(reg *gal.Registry, f *flags) *cobra.Command {
	var (
		index int
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Print the format features of one device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, pd, err := physicalDevice(cmd, reg, f, index)
			if err != nil {
				return err
			}
			defer r.Destroy()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FORMAT\tOPTIMAL\tLINEAR\tBUFFER\tSAMPLES")
			for _, format := range gal.Formats() {
				p := pd.FormatProperties(format)
				if !all && p.Optimal == 0 && p.Linear == 0 && p.Buffer == 0 {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", format, p.Optimal, p.Linear, p.Buffer, p.SampleCounts)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&index, "device", "d", 0, "physical device index")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include unsupported formats")
	return cmd
}
