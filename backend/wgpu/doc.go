// Package wgpu implements the gal interfaces on the gogpu/wgpu hardware
// abstraction layer, which drives Vulkan, Metal, DX12 and GLES devices.
//
// The explicit gal model is mapped onto WebGPU:
//
//   - render passes have exactly one subpass and no input attachments
//   - descriptor set layouts become bind group layouts, and descriptor sets
//     become bind groups that are rebuilt on first use after an update
//   - image layouts become texture usage transitions; the backend tracks
//     the current usage of every image and inserts transitions for copies
//     and attachments
//   - push constants are not exposed
//
// Command buffers are recorded by the shared recorder and encoded into a
// HAL command buffer when they are submitted. Completion is observed by
// polling the HAL queue's submission index, so fences are signaled from
// Fence.Wait, Fence.Status, Queue.WaitIdle and later submissions.
//
// The renderer picks the best registered HAL backend. The Vulkan HAL is
// linked in by this package; others are registered by importing them:
//
//	import _ "github.com/gogpu/wgpu/hal/allbackends"
//
//	reg, _ := gal.NewRegistry(wgpu.Plugin(), null.Plugin())
//	r, _ := reg.Default()
//
// A device owned by a gogpu window can be adopted with
// NewRendererFromProvider.
package wgpu
