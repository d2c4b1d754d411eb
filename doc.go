// Package gal is a backend-agnostic graphics API abstraction layer.
//
// # Overview
//
// gal describes GPU resources and commands in one vocabulary modeled on
// explicit APIs: devices, buffers, images, render passes, pipelines,
// descriptor sets, command buffers, fences and semaphores. Backends
// translate that description into native calls when objects are created.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gal"
//		"github.com/gogpu/gal/backend/null"
//	)
//
//	reg, _ := gal.NewRegistry(null.Plugin())
//	r, err := reg.Default()
//	pd, _ := r.PhysicalDevice(0)
//	dev, _ := pd.CreateDevice(gal.DeviceCreateInfo{
//		Queues: []gal.QueueCreateInfo{{Family: 0, Count: 1}},
//	})
//	defer dev.Destroy()
//
//	buf, _ := dev.CreateBuffer(gal.BufferCreateInfo{
//		Size:  256,
//		Usage: gal.BufferUsageVertex,
//	})
//	defer buf.Destroy()
//
// # Architecture
//
// Packages:
//   - Public API: this package (interfaces, create-infos, validation)
//   - Translation tables: convert/vulkan, convert/webgpu, convert/gl
//   - Memory: alloc (linear and buddy sub-allocators)
//   - Backends: backend/null (host simulation), backend/wgpu (gogpu/wgpu HAL)
//   - Helpers: staging (uploads and readbacks)
//
// # Lifetimes
//
// Every object is destroyed explicitly and before the device that created
// it. Command buffers reference objects without owning them; destroying a
// referenced object invalidates the command buffer.
//
// # Errors
//
// Failures wrap one of the sentinel errors of this package and are
// matched with errors.Is. Device loss is sticky.
//
// # Concurrency
//
// Object creation is synchronous. Queue submission is asynchronous and
// completion is observed through fences. Devices, queues and resources
// are not safe for concurrent mutation; fences may be waited on from any
// goroutine.
package gal
