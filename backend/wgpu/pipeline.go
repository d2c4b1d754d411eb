package wgpu

import (
	"cmp"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gal"
	"github.com/gogpu/gal/convert/webgpu"
	"github.com/gogpu/gal/internal/track"
)

// Pipeline is a HAL render or compute pipeline.
type Pipeline struct {
	object
	bindPoint gal.PipelineBindPoint
	layout    *PipelineLayout
	graphics  *gal.GraphicsPipelineCreateInfo
	render    hal.RenderPipeline
	compute   hal.ComputePipeline

	// slots maps vertex binding numbers to dense vertex buffer slots.
	slots map[uint32]uint32
}

// CreateGraphicsPipeline validates the fixed-function state and builds a
// render pipeline for the subpass' attachment formats.
func (d *Device) CreateGraphicsPipeline(info gal.GraphicsPipelineCreateInfo) (gal.Pipeline, error) {
	if err := d.check("create graphics pipeline"); err != nil {
		return nil, err
	}
	info.Stages = slices.Clone(info.Stages)
	info.Viewports = slices.Clone(info.Viewports)
	info.Scissors = slices.Clone(info.Scissors)
	info.DynamicStates = slices.Clone(info.DynamicStates)
	info.VertexInput.Bindings = slices.Clone(info.VertexInput.Bindings)
	info.VertexInput.Attributes = slices.Clone(info.VertexInput.Attributes)
	info.ColorBlend.Attachments = slices.Clone(info.ColorBlend.Attachments)
	if info.DepthStencil != nil {
		ds := *info.DepthStencil
		info.DepthStencil = &ds
	}
	if err := gal.ValidateGraphicsPipeline(&info); err != nil {
		return nil, err
	}
	layout, ok := info.Layout.(*PipelineLayout)
	if !ok || layout.dev != d {
		return nil, d.errorf(gal.ErrInvalidArgument, "graphics pipeline %q: layout belongs to another device", info.Label)
	}
	desc, slots, err := d.renderPipelineDesc(&info, layout)
	if err != nil {
		return nil, err
	}
	raw, err := d.raw.CreateRenderPipeline(desc)
	if err != nil {
		return nil, d.halFailed(err, "create graphics pipeline %q", info.Label)
	}
	p := &Pipeline{bindPoint: gal.PipelineBindPointGraphics, layout: layout, graphics: &info, render: raw, slots: slots}
	p.init(d, info.Label)
	p.track(track.KindPipeline, p.Destroy)
	return p, nil
}

func (d *Device) renderPipelineDesc(info *gal.GraphicsPipelineCreateInfo, layout *PipelineLayout) (*hal.RenderPipelineDescriptor, map[uint32]uint32, error) {
	unsupported := func(what string) error {
		return d.errorf(gal.ErrUnsupportedCapability, "graphics pipeline %q: %s", info.Label, what)
	}
	rs := info.Rasterization
	switch {
	case rs.PolygonMode != gal.PolygonModeFill:
		return nil, nil, unsupported("polygon mode " + rs.PolygonMode.String())
	case !webgpu.SupportsCullMode(rs.CullMode):
		return nil, nil, unsupported("cull mode " + rs.CullMode.String())
	case rs.RasterizerDiscard:
		return nil, nil, unsupported("rasterizer discard")
	case info.ColorBlend.LogicOpEnable:
		return nil, nil, unsupported("logic ops")
	case info.Multisample.SampleShading, info.Multisample.AlphaToOne:
		return nil, nil, unsupported("sample shading")
	case info.DepthStencil != nil && info.DepthStencil.DepthBoundsTest:
		return nil, nil, unsupported("depth bounds test")
	case !webgpu.SupportsPrimitiveTopology(info.InputAssembly.Topology):
		return nil, nil, unsupported("topology " + info.InputAssembly.Topology.String())
	case len(info.Viewports) > 1 || len(info.Scissors) > 1:
		return nil, nil, unsupported("multiple viewports")
	}

	vs, fs := info.Stage(gal.ShaderStageVertex), info.Stage(gal.ShaderStageFragment)
	for _, m := range info.Stages {
		if !d.owns(m) {
			return nil, nil, d.errorf(gal.ErrInvalidArgument, "graphics pipeline %q: shader %q belongs to another device", info.Label, m.Label())
		}
		if s := m.Stage(); s != gal.ShaderStageVertex && s != gal.ShaderStageFragment {
			return nil, nil, unsupported("stage " + s.String())
		}
	}
	buffers, slots, err := d.vertexBuffers(info)
	if err != nil {
		return nil, nil, err
	}
	desc := &hal.RenderPipelineDescriptor{
		Label:  info.Label,
		Layout: layout.raw,
		Vertex: hal.VertexState{
			Module:     vs.(*ShaderModule).raw,
			EntryPoint: vs.EntryPoint(),
			Buffers:    buffers,
		},
		Primitive: gputypes.PrimitiveState{
			Topology:       webgpu.PrimitiveTopology(info.InputAssembly.Topology),
			FrontFace:      webgpu.FrontFace(rs.FrontFace),
			CullMode:       webgpu.CullMode(rs.CullMode),
			UnclippedDepth: rs.DepthClamp,
		},
		Multisample: gputypes.MultisampleState{
			Count:                  uint32(max(info.Multisample.Samples, gal.SampleCount1)),
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: info.Multisample.AlphaToCoverage,
		},
	}
	if m := info.Multisample.SampleMask; m != 0 {
		desc.Multisample.Mask = uint64(m)
	}

	sp := info.RenderPass.Info().Subpasses[info.Subpass]
	atts := info.RenderPass.Info().Attachments
	if ref := sp.DepthStencilAttachment; ref != nil && ref.Attachment != gal.AttachmentUnused {
		desc.DepthStencil = depthStencilState(webgpu.Format(atts[ref.Attachment].Format), info.DepthStencil, rs)
	}
	if fs != nil {
		targets := make([]gputypes.ColorTargetState, len(sp.ColorAttachments))
		for i, ref := range sp.ColorAttachments {
			targets[i] = gputypes.ColorTargetState{Format: webgpu.Format(atts[ref.Attachment].Format), WriteMask: gputypes.ColorWriteMaskAll}
			if i >= len(info.ColorBlend.Attachments) {
				continue
			}
			a := info.ColorBlend.Attachments[i]
			targets[i].WriteMask = webgpu.ColorComponent(a.WriteMask)
			if a.BlendEnable {
				for _, f := range []gal.BlendFactor{a.SrcColorFactor, a.DstColorFactor, a.SrcAlphaFactor, a.DstAlphaFactor} {
					if !webgpu.SupportsBlendFactor(f) {
						return nil, nil, unsupported("blend factor " + f.String())
					}
				}
				targets[i].Blend = &gputypes.BlendState{
					Color: gputypes.BlendComponent{SrcFactor: webgpu.BlendFactor(a.SrcColorFactor), DstFactor: webgpu.BlendFactor(a.DstColorFactor), Operation: webgpu.BlendOp(a.ColorOp)},
					Alpha: gputypes.BlendComponent{SrcFactor: webgpu.BlendFactor(a.SrcAlphaFactor), DstFactor: webgpu.BlendFactor(a.DstAlphaFactor), Operation: webgpu.BlendOp(a.AlphaOp)},
				}
			}
		}
		desc.Fragment = &hal.FragmentState{
			Module:     fs.(*ShaderModule).raw,
			EntryPoint: fs.EntryPoint(),
			Targets:    targets,
		}
	}
	return desc, slots, nil
}

// vertexBuffers packs the vertex bindings into dense slots ordered by
// binding number.
func (d *Device) vertexBuffers(info *gal.GraphicsPipelineCreateInfo) ([]gputypes.VertexBufferLayout, map[uint32]uint32, error) {
	bindings := slices.Clone(info.VertexInput.Bindings)
	slices.SortFunc(bindings, func(a, b gal.VertexBindingDescription) int { return cmp.Compare(a.Binding, b.Binding) })
	slots := make(map[uint32]uint32, len(bindings))
	layouts := make([]gputypes.VertexBufferLayout, len(bindings))
	for i, b := range bindings {
		slots[b.Binding] = uint32(i)
		layouts[i] = gputypes.VertexBufferLayout{ArrayStride: uint64(b.Stride), StepMode: webgpu.VertexInputRate(b.InputRate)}
	}
	for _, a := range info.VertexInput.Attributes {
		if !webgpu.SupportsVertexFormat(a.Format) {
			return nil, nil, d.errorf(gal.ErrUnsupportedFormat, "graphics pipeline %q: vertex format %s", info.Label, a.Format)
		}
		slot := slots[a.Binding]
		layouts[slot].Attributes = append(layouts[slot].Attributes, gputypes.VertexAttribute{
			Format:         webgpu.VertexFormat(a.Format),
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Location,
		})
	}
	return layouts, slots, nil
}

// depthStencilState translates the depth and stencil state. WebGPU has one
// stencil read mask and one write mask, taken from the front face.
func depthStencilState(format gputypes.TextureFormat, ds *gal.DepthStencilState, rs gal.RasterizationState) *hal.DepthStencilState {
	out := &hal.DepthStencilState{
		Format:       format,
		DepthCompare: gputypes.CompareFunctionAlways,
		StencilFront: hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways},
		StencilBack:  hal.StencilFaceState{Compare: gputypes.CompareFunctionAlways},
	}
	if rs.DepthBias {
		out.DepthBias = int32(rs.DepthBiasConstantFactor)
		out.DepthBiasSlopeScale = rs.DepthBiasSlopeFactor
		out.DepthBiasClamp = rs.DepthBiasClamp
	}
	if ds == nil {
		return out
	}
	if ds.DepthTest {
		out.DepthCompare = webgpu.CompareOp(ds.DepthCompareOp)
		out.DepthWriteEnabled = ds.DepthWrite
	}
	if ds.StencilTest {
		out.StencilFront = stencilFace(ds.Front)
		out.StencilBack = stencilFace(ds.Back)
		out.StencilReadMask = ds.Front.CompareMask
		out.StencilWriteMask = ds.Front.WriteMask
	}
	return out
}

func stencilFace(s gal.StencilOpState) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     webgpu.CompareOp(s.CompareOp),
		FailOp:      stencilOp(s.FailOp),
		DepthFailOp: stencilOp(s.DepthFailOp),
		PassOp:      stencilOp(s.PassOp),
	}
}

// stencilOp maps onto the HAL's own stencil operation numbering.
func stencilOp(op gal.StencilOp) hal.StencilOperation {
	switch op {
	case gal.StencilOpZero:
		return hal.StencilOperationZero
	case gal.StencilOpReplace:
		return hal.StencilOperationReplace
	case gal.StencilOpIncrementAndClamp:
		return hal.StencilOperationIncrementClamp
	case gal.StencilOpDecrementAndClamp:
		return hal.StencilOperationDecrementClamp
	case gal.StencilOpInvert:
		return hal.StencilOperationInvert
	case gal.StencilOpIncrementAndWrap:
		return hal.StencilOperationIncrementWrap
	case gal.StencilOpDecrementAndWrap:
		return hal.StencilOperationDecrementWrap
	}
	return hal.StencilOperationKeep
}

// CreateComputePipeline builds a compute pipeline.
func (d *Device) CreateComputePipeline(info gal.ComputePipelineCreateInfo) (gal.Pipeline, error) {
	if err := d.check("create compute pipeline"); err != nil {
		return nil, err
	}
	if err := gal.ValidateComputePipeline(info); err != nil {
		return nil, err
	}
	layout, ok := info.Layout.(*PipelineLayout)
	if !ok || layout.dev != d {
		return nil, d.errorf(gal.ErrInvalidArgument, "compute pipeline %q: layout belongs to another device", info.Label)
	}
	m, ok := info.Stage.(*ShaderModule)
	if !ok || m.dev != d {
		return nil, d.errorf(gal.ErrInvalidArgument, "compute pipeline %q: shader belongs to another device", info.Label)
	}
	raw, err := d.raw.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:   info.Label,
		Layout:  layout.raw,
		Compute: hal.ComputeState{Module: m.raw, EntryPoint: m.EntryPoint(), ZeroInitializeWorkgroupMemory: true},
	})
	if err != nil {
		return nil, d.halFailed(err, "create compute pipeline %q", info.Label)
	}
	p := &Pipeline{bindPoint: gal.PipelineBindPointCompute, layout: layout, compute: raw}
	p.init(d, info.Label)
	p.track(track.KindPipeline, p.Destroy)
	return p, nil
}

func (p *Pipeline) BindPoint() gal.PipelineBindPoint          { return p.bindPoint }
func (p *Pipeline) Layout() gal.PipelineLayout                { return p.layout }
func (p *Pipeline) Graphics() *gal.GraphicsPipelineCreateInfo { return p.graphics }

// Destroy releases the HAL pipeline.
func (p *Pipeline) Destroy() {
	p.release(func() {
		if p.render != nil {
			p.dev.raw.DestroyRenderPipeline(p.render)
		}
		if p.compute != nil {
			p.dev.raw.DestroyComputePipeline(p.compute)
		}
	})
}
