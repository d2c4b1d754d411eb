// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package null

import (
	"encoding/binary"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/record"
	"github.com/gogpu/gal/internal/track"
)

// CommandBuffer records through the shared recorder and is replayed by a
// queue worker.
type CommandBuffer struct {
	*record.Recorder
	dev *Device
	id  track.ID
}

// CreateCommandBuffer creates a command buffer for one queue family.
func (d *Device) CreateCommandBuffer(info gal.CommandBufferCreateInfo) (gal.CommandBuffer, error) {
	if err := d.check("create command buffer"); err != nil {
		return nil, err
	}
	if int(info.Family) >= len(d.pd.QueueFamilies()) {
		return nil, d.errorf(gal.ErrInvalidArgument, "command buffer %q: no queue family %d", info.Label, info.Family)
	}
	cb := &CommandBuffer{Recorder: record.New(info, d.Lost), dev: d}
	cb.id = d.tracker.Add(track.KindCommandBuffer, info.Label, cb.Destroy)
	return cb, nil
}

// Destroy drops the recorded commands.
func (cb *CommandBuffer) Destroy() {
	if cb.MarkDestroyed() {
		cb.dev.tracker.Remove(cb.id)
	}
}

func (cb *CommandBuffer) device() *Device { return cb.dev }

// requiredFlags returns the queue capabilities cmds need.
func requiredFlags(cmds []record.Command) gal.QueueFlags {
	var need gal.QueueFlags
	for _, c := range cmds {
		switch c.Op() {
		case record.OpBeginRenderPass:
			need |= gal.QueueGraphics
		case record.OpDispatch:
			need |= gal.QueueCompute
		}
	}
	return need
}

// counts of commands the host cannot execute.
type counts struct {
	draws, dispatches int
}

// execute replays cmds on host memory.
func execute(cmds []record.Command) counts {
	var n counts
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case record.BeginRenderPass:
			clearAttachments(c.Info)
		case record.Draw, record.DrawIndexed:
			n.draws++
		case record.Dispatch:
			n.dispatches++
		case record.CopyBuffer:
			copyBuffer(c)
		case record.CopyBufferToImage:
			copyBufferToImage(c)
		case record.CopyImageToBuffer:
			copyImageToBuffer(c)
		case record.FillBuffer:
			c.Dst.(*Buffer).bytes(func(data []byte) {
				for off := c.Offset; off < c.Offset+c.Size; off += 4 {
					binary.LittleEndian.PutUint32(data[off:], c.Value)
				}
			})
		case record.UpdateBuffer:
			c.Dst.(*Buffer).bytes(func(data []byte) {
				copy(data[c.Offset:], c.Data)
			})
		}
	}
	return n
}

func copyBuffer(c record.CopyBuffer) {
	src, dst := c.Src.(*Buffer), c.Dst.(*Buffer)
	for _, r := range c.Regions {
		// staged so that the two buffer locks are never held together
		var tmp []byte
		if !src.bytes(func(data []byte) { tmp = append(tmp, data[r.SrcOffset:r.SrcOffset+r.Size]...) }) {
			return
		}
		dst.bytes(func(data []byte) { copy(data[r.DstOffset:], tmp) })
	}
}

func copyBufferToImage(c record.CopyBufferToImage) {
	src, img := c.Src.(*Buffer), c.Dst.(*Image)
	format := img.info.Format
	for _, r := range c.Regions {
		size := record.Footprint(format, r)
		var tmp []byte
		if !src.bytes(func(data []byte) { tmp = append(tmp, data[r.BufferOffset:r.BufferOffset+size]...) }) {
			return
		}
		r.BufferOffset = 0
		img.mu.Lock()
		if p := img.plane(r.ImageSubresource.Aspect); p != nil {
			p.copyRegion(format, tmp, r, true)
		}
		img.mu.Unlock()
	}
}

func copyImageToBuffer(c record.CopyImageToBuffer) {
	img, dst := c.Src.(*Image), c.Dst.(*Buffer)
	format := img.info.Format
	for _, r := range c.Regions {
		off, size := r.BufferOffset, record.Footprint(format, r)
		var tmp []byte
		if !dst.bytes(func(data []byte) { tmp = append(tmp, data[off:off+size]...) }) {
			return
		}
		r.BufferOffset = 0
		img.mu.Lock()
		if p := img.plane(r.ImageSubresource.Aspect); p != nil {
			p.copyRegion(format, tmp, r, false)
		}
		img.mu.Unlock()
		dst.bytes(func(data []byte) { copy(data[off:], tmp) })
	}
}

// clearAttachments applies the Clear load ops of a render pass to the
// render area of every attachment.
func clearAttachments(info gal.RenderPassBeginInfo) {
	rp := info.RenderPass.Info()
	fb := info.FrameBuffer
	views := fb.Attachments()
	for i, a := range rp.Attachments {
		if i >= len(views) || i >= len(info.ClearValues) {
			continue
		}
		v := views[i]
		img, ok := v.Image().(*Image)
		if !ok {
			continue
		}
		cv := info.ClearValues[i]
		r := v.Range()
		levels := [2]uint32{r.BaseMipLevel, r.BaseMipLevel + 1}
		layers := [2]uint32{r.BaseArrayLayer, r.BaseArrayLayer + min(r.LayerCount, fb.Layers())}

		img.mu.Lock()
		if a.LoadOp == gal.AttachmentLoadOpClear {
			switch {
			case v.Format().IsColor():
				if p := img.plane(gal.ImageAspectColor); p != nil {
					p.fill(encodeColor(v.Format(), cv.Color), levels, layers, info.RenderArea)
				}
			case v.Format().HasDepth():
				if p := img.plane(gal.ImageAspectDepth); p != nil {
					p.fill(encodeDepth(v.Format(), cv.Depth), levels, layers, info.RenderArea)
				}
			}
		}
		if a.StencilLoadOp == gal.AttachmentLoadOpClear && v.Format().HasStencil() {
			if p := img.plane(gal.ImageAspectStencil); p != nil {
				p.fill([]byte{byte(cv.Stencil)}, levels, layers, info.RenderArea)
			}
		}
		img.mu.Unlock()
	}
}
