package wgpu

import (
	"github.com/gogpu/gal"
	"github.com/gogpu/gal/internal/record"
	"github.com/gogpu/gal/internal/track"
)

// CommandBuffer records through the shared recorder. The commands are
// encoded into a HAL command buffer on every submission.
type CommandBuffer struct {
	*record.Recorder
	dev *Device
	id  track.ID
}

// CreateCommandBuffer creates a command buffer for the universal family.
func (d *Device) CreateCommandBuffer(info gal.CommandBufferCreateInfo) (gal.CommandBuffer, error) {
	if err := d.check("create command buffer"); err != nil {
		return nil, err
	}
	if info.Family != FamilyUniversal {
		return nil, d.errorf(gal.ErrInvalidArgument, "command buffer %q: no queue family %d", info.Label, info.Family)
	}
	if info.Label == "" {
		info.Label = d.name("command buffer")
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
