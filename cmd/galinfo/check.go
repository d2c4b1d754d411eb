package main

import (
	stdbytes "bytes"
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/staging"
)

// checkSize is the number of bytes sent through each device.
const checkSize = 64 << 10

type checkResult struct {
	backend string
	device  string
	elapsed time.Duration
	err     error
}

// errMismatch is returned when read back data differs from what was
// uploaded.
var errMismatch = errors.New("read back data differs")

// roundTrip uploads a pattern into a device-local buffer through a small
// staging buffer and reads it back.
func roundTrip(ctx context.Context, pd gal.PhysicalDevice) (err error) {
	dev, err := pd.CreateDevice(gal.DeviceCreateInfo{Label: "galinfo check"})
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, dev.Destroy()) }()

	q, err := dev.Queue(0, 0)
	if err != nil {
		return err
	}
	st, err := staging.New(dev, q, staging.WithSize(checkSize/4), staging.WithLabel("galinfo staging"))
	if err != nil {
		return err
	}
	defer st.Destroy()
	buf, err := dev.CreateBuffer(gal.BufferCreateInfo{
		Label: "galinfo buffer",
		Size:  checkSize,
		Usage: gal.BufferUsageTransferSrc | gal.BufferUsageTransferDst | gal.BufferUsageStorage,
	})
	if err != nil {
		return err
	}
	defer buf.Destroy()

	data := make([]byte, checkSize)
	for i := range data {
		data[i] = byte(i * 31)
	}
	if err := st.UploadBuffer(ctx, buf, 0, data, staging.ShaderRead); err != nil {
		return err
	}
	got := make([]byte, checkSize)
	if err := st.DownloadBuffer(ctx, buf, 0, got); err != nil {
		return err
	}
	if !stdbytes.Equal(data, got) {
		return errMismatch
	}
	return dev.WaitIdle(ctx)
}

func newCheckCmd(reg *gal.Registry, f *flags) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Round trip a buffer through every device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			plugins, err := f.selected(reg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			var results []checkResult
			var renderers []gal.Renderer
			defer func() {
				for _, r := range renderers {
					r.Destroy()
				}
			}()
			var pds []gal.PhysicalDevice
			for _, p := range plugins {
				cfg, err := gal.NewConfig(opts...)
				if err != nil {
					return err
				}
				r, err := p.Create(cfg)
				if err != nil {
					results = append(results, checkResult{backend: p.ID, device: "-", err: err})
					continue
				}
				renderers = append(renderers, r)
				for i := range r.PhysicalDeviceCount() {
					pd, err := r.PhysicalDevice(i)
					if err != nil {
						return err
					}
					pds = append(pds, pd)
					results = append(results, checkResult{backend: p.ID, device: pd.Properties().Name})
				}
			}

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(probeLimit)
			next := 0
			for i := range results {
				if results[i].err != nil {
					continue
				}
				pd := pds[next]
				next++
				g.Go(func() error {
					start := time.Now()
					results[i].err = roundTrip(gctx, pd)
					results[i].elapsed = time.Since(start)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BACKEND\tDEVICE\tRESULT")
			failed := 0
			for _, r := range results {
				status := fmt.Sprintf("ok (%s)", r.elapsed.Round(time.Microsecond))
				if r.err != nil {
					status = "FAIL: " + r.err.Error()
					failed++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.backend, r.device, status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "time allowed for all checks")
	return cmd
}
