package gal

import "log/slog"

// PushConstantRange declares a range of push constant bytes visible to
// some stages.
type PushConstantRange struct {
	Stages ShaderStageFlags
	Offset uint32
	Size   uint32
}

// PipelineLayoutCreateInfo lists descriptor set layouts by set index.
type PipelineLayoutCreateInfo struct {
	Label         string
	SetLayouts    []DescriptorSetLayout
	PushConstants []PushConstantRange
}

// PipelineLayout is the interface between a pipeline and its resources.
type PipelineLayout interface {
	Object
	SetLayouts() []DescriptorSetLayout
	PushConstants() []PushConstantRange
}

// VertexBindingDescription describes one vertex buffer binding.
type VertexBindingDescription struct {
	Binding   uint32
	Stride    uint32
	InputRate VertexInputRate
}

// VertexAttributeDescription describes one attribute fetched from a
// vertex buffer binding.
type VertexAttributeDescription struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// VertexInputState is the vertex fetch configuration.
type VertexInputState struct {
	Bindings   []VertexBindingDescription
	Attributes []VertexAttributeDescription
}

// InputAssemblyState selects the primitive topology.
type InputAssemblyState struct {
	Topology         PrimitiveTopology
	PrimitiveRestart bool
}

// RasterizationState configures polygon rasterization.
type RasterizationState struct {
	DepthClamp              bool
	RasterizerDiscard       bool
	PolygonMode             PolygonMode
	CullMode                CullModeFlags
	FrontFace               FrontFace
	DepthBias               bool
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// MultisampleState configures multisampling.
type MultisampleState struct {
	Samples          SampleCount
	SampleShading    bool
	MinSampleShading float32
	SampleMask       uint32
	AlphaToCoverage  bool
	AlphaToOne       bool
}

// StencilOpState is the stencil configuration of one face.
type StencilOpState struct {
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	CompareOp   CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// DepthStencilState configures depth and stencil testing.
type DepthStencilState struct {
	DepthTest       bool
	DepthWrite      bool
	DepthCompareOp  CompareOp
	DepthBoundsTest bool
	StencilTest     bool
	Front           StencilOpState
	Back            StencilOpState
	MinDepthBounds  float32
	MaxDepthBounds  float32
}

// ColorBlendAttachment configures blending for one color attachment.
type ColorBlendAttachment struct {
	BlendEnable    bool
	SrcColorFactor BlendFactor
	DstColorFactor BlendFactor
	ColorOp        BlendOp
	SrcAlphaFactor BlendFactor
	DstAlphaFactor BlendFactor
	AlphaOp        BlendOp
	WriteMask      ColorComponentFlags
}

// ColorBlendState configures blending for all color attachments of a
// subpass.
type ColorBlendState struct {
	LogicOpEnable  bool
	LogicOp        LogicOp
	Attachments    []ColorBlendAttachment
	BlendConstants [4]float32
}

// GraphicsPipelineCreateInfo describes a graphics pipeline. The render
// pass is only used for compatibility; the pipeline may be used with any
// structurally compatible render pass.
type GraphicsPipelineCreateInfo struct {
	Label         string
	Stages        []ShaderModule
	VertexInput   VertexInputState
	InputAssembly InputAssemblyState
	Viewports     []Viewport
	Scissors      []Rect2D
	Rasterization RasterizationState
	Multisample   MultisampleState
	DepthStencil  *DepthStencilState
	ColorBlend    ColorBlendState
	DynamicStates []DynamicState
	Layout        PipelineLayout
	RenderPass    RenderPass
	Subpass       uint32
}

// ComputePipelineCreateInfo describes a compute pipeline.
type ComputePipelineCreateInfo struct {
	Label  string
	Stage  ShaderModule
	Layout PipelineLayout
}

// Pipeline is an immutable compiled pipeline.
type Pipeline interface {
	Object
	BindPoint() PipelineBindPoint
	Layout() PipelineLayout
	// Graphics returns the create-info of a graphics pipeline, nil for
	// compute pipelines.
	Graphics() *GraphicsPipelineCreateInfo
}

const maxLineWidth = 64

// IsStrip reports whether t is a strip or fan topology, the only ones
// that accept primitive restart.
func (t PrimitiveTopology) IsStrip() bool {
	switch t {
	case PrimitiveTopologyLineStrip, PrimitiveTopologyTriangleStrip, PrimitiveTopologyTriangleFan,
		PrimitiveTopologyLineStripWithAdjacency, PrimitiveTopologyTriangleStripWithAdjacency:
		return true
	}
	return false
}

// HasDynamicState reports whether s is dynamic in the pipeline.
func (info *GraphicsPipelineCreateInfo) HasDynamicState(s DynamicState) bool {
	for _, d := range info.DynamicStates {
		if d == s {
			return true
		}
	}
	return false
}

// Stage returns the module bound to stage, or nil.
func (info *GraphicsPipelineCreateInfo) Stage(stage ShaderStageFlags) ShaderModule {
	for _, m := range info.Stages {
		if m.Stage() == stage {
			return m
		}
	}
	return nil
}

// ValidatePipelineLayout checks push constant ranges and set layouts.
func ValidatePipelineLayout(info PipelineLayoutCreateInfo, maxSets uint32) error {
	if maxSets != 0 && uint32(len(info.SetLayouts)) > maxSets {
		return errorf(ErrInvalidArgument, "pipeline layout %q: %d set layouts exceed limit %d", info.Label, len(info.SetLayouts), maxSets)
	}
	for i, l := range info.SetLayouts {
		if l == nil {
			return errorf(ErrInvalidArgument, "pipeline layout %q: set %d has no layout", info.Label, i)
		}
		if l.Destroyed() {
			return errorf(ErrInvalidState, "pipeline layout %q: set %d layout is destroyed", info.Label, i)
		}
	}
	for i, r := range info.PushConstants {
		if r.Size == 0 || r.Size%4 != 0 || r.Offset%4 != 0 || r.Stages == 0 {
			return errorf(ErrInvalidArgument, "pipeline layout %q: push constant range %d is malformed", info.Label, i)
		}
	}
	return nil
}

// ValidateComputePipeline checks a compute pipeline create-info.
func ValidateComputePipeline(info ComputePipelineCreateInfo) error {
	if info.Layout == nil || info.Layout.Destroyed() {
		return errorf(ErrInvalidArgument, "compute pipeline %q: missing layout", info.Label)
	}
	if info.Stage == nil || info.Stage.Destroyed() {
		return errorf(ErrInvalidArgument, "compute pipeline %q: missing shader", info.Label)
	}
	if info.Stage.Stage() != ShaderStageCompute {
		return errorf(ErrInvalidArgument, "compute pipeline %q: shader stage is %s", info.Label, info.Stage.Stage())
	}
	return nil
}

// ValidateGraphicsPipeline checks the fixed-function state of a graphics
// pipeline and matches the shader interfaces against the vertex input
// state and the color attachments of the target subpass.
func ValidateGraphicsPipeline(info *GraphicsPipelineCreateInfo) error {
	if info.Layout == nil || info.Layout.Destroyed() {
		return errorf(ErrInvalidArgument, "pipeline %q: missing layout", info.Label)
	}
	if info.RenderPass == nil {
		return errorf(ErrInvalidArgument, "pipeline %q: missing render pass", info.Label)
	}
	if info.RenderPass.Destroyed() {
		return errorf(ErrInvalidState, "pipeline %q: render pass %q is destroyed", info.Label, info.RenderPass.Label())
	}
	rp := info.RenderPass.Info()
	if int(info.Subpass) >= len(rp.Subpasses) {
		return errorf(ErrInvalidArgument, "pipeline %q: subpass %d out of range", info.Label, info.Subpass)
	}
	if err := validateStages(info); err != nil {
		return err
	}
	if err := validateFixedFunction(info); err != nil {
		return err
	}
	if err := validateVertexInterface(info); err != nil {
		return err
	}
	return validateFragmentInterface(info, rp)
}

func validateStages(info *GraphicsPipelineCreateInfo) error {
	var seen ShaderStageFlags
	for _, m := range info.Stages {
		if m == nil || m.Destroyed() {
			return errorf(ErrInvalidArgument, "pipeline %q: missing or destroyed shader module", info.Label)
		}
		s := m.Stage()
		if s == ShaderStageCompute {
			return errorf(ErrInvalidArgument, "pipeline %q: compute shader in a graphics pipeline", info.Label)
		}
		if seen&s != 0 {
			return errorf(ErrInvalidArgument, "pipeline %q: stage %s given twice", info.Label, s)
		}
		seen |= s
	}
	if !seen.Has(ShaderStageVertex) {
		return errorf(ErrInvalidArgument, "pipeline %q: no vertex stage", info.Label)
	}
	if seen.Has(ShaderStageTessellationControl) != seen.Has(ShaderStageTessellationEvaluation) {
		return errorf(ErrInvalidArgument, "pipeline %q: tessellation needs both control and evaluation stages", info.Label)
	}
	return nil
}

func validateFixedFunction(info *GraphicsPipelineCreateInfo) error {
	ia := info.InputAssembly
	if !ia.Topology.Valid() {
		return errorf(ErrInvalidArgument, "pipeline %q: invalid topology", info.Label)
	}
	if ia.PrimitiveRestart && !ia.Topology.IsStrip() {
		return errorf(ErrInvalidArgument, "pipeline %q: primitive restart needs a strip or fan topology, got %s", info.Label, ia.Topology)
	}
	rs := info.Rasterization
	if !rs.PolygonMode.Valid() || !rs.FrontFace.Valid() || rs.CullMode&^CullModeFrontAndBack != 0 {
		return errorf(ErrInvalidArgument, "pipeline %q: invalid rasterization state", info.Label)
	}
	if rs.LineWidth < 0 || (!info.HasDynamicState(DynamicStateLineWidth) && rs.LineWidth > maxLineWidth) {
		return errorf(ErrInvalidArgument, "pipeline %q: line width %v out of range", info.Label, rs.LineWidth)
	}
	if !info.HasDynamicState(DynamicStateViewport) && len(info.Viewports) == 0 && !rs.RasterizerDiscard {
		return errorf(ErrInvalidArgument, "pipeline %q: no viewport and viewport is not dynamic", info.Label)
	}
	if !info.HasDynamicState(DynamicStateScissor) && len(info.Scissors) != len(info.Viewports) && !rs.RasterizerDiscard {
		return errorf(ErrInvalidArgument, "pipeline %q: %d scissors for %d viewports", info.Label, len(info.Scissors), len(info.Viewports))
	}
	for _, d := range info.DynamicStates {
		if !d.Valid() {
			return errorf(ErrInvalidArgument, "pipeline %q: invalid dynamic state %d", info.Label, d)
		}
	}
	cb := info.ColorBlend
	if cb.LogicOpEnable && !cb.LogicOp.Valid() {
		return errorf(ErrInvalidArgument, "pipeline %q: invalid logic op", info.Label)
	}
	for i, a := range cb.Attachments {
		if !a.BlendEnable {
			continue
		}
		if !a.SrcColorFactor.Valid() || !a.DstColorFactor.Valid() || !a.SrcAlphaFactor.Valid() ||
			!a.DstAlphaFactor.Valid() || !a.ColorOp.Valid() || !a.AlphaOp.Valid() {
			return errorf(ErrInvalidArgument, "pipeline %q: invalid blend state for attachment %d", info.Label, i)
		}
	}
	if ds := info.DepthStencil; ds != nil {
		if ds.DepthTest && !ds.DepthCompareOp.Valid() {
			return errorf(ErrInvalidArgument, "pipeline %q: invalid depth compare op", info.Label)
		}
		if ds.StencilTest {
			for _, f := range []StencilOpState{ds.Front, ds.Back} {
				if !f.FailOp.Valid() || !f.PassOp.Valid() || !f.DepthFailOp.Valid() || !f.CompareOp.Valid() {
					return errorf(ErrInvalidArgument, "pipeline %q: invalid stencil state", info.Label)
				}
			}
		}
	}
	return nil
}

func validateVertexInterface(info *GraphicsPipelineCreateInfo) error {
	vi := info.VertexInput
	bindings := make(map[uint32]VertexBindingDescription, len(vi.Bindings))
	for _, b := range vi.Bindings {
		if _, dup := bindings[b.Binding]; dup {
			return errorf(ErrInvalidArgument, "pipeline %q: vertex binding %d declared twice", info.Label, b.Binding)
		}
		if !b.InputRate.Valid() {
			return errorf(ErrInvalidArgument, "pipeline %q: vertex binding %d has invalid input rate", info.Label, b.Binding)
		}
		bindings[b.Binding] = b
	}
	attrs := make(map[uint32]VertexAttributeDescription, len(vi.Attributes))
	for _, a := range vi.Attributes {
		if _, dup := attrs[a.Location]; dup {
			return errorf(ErrInvalidArgument, "pipeline %q: vertex location %d declared twice", info.Label, a.Location)
		}
		b, ok := bindings[a.Binding]
		if !ok {
			return errorf(ErrInvalidArgument, "pipeline %q: attribute %d uses undeclared binding %d", info.Label, a.Location, a.Binding)
		}
		if !a.Format.Valid() || a.Format == FormatUndefined || a.Format.IsDepthStencil() || a.Format.IsCompressed() {
			return errorf(ErrInvalidArgument, "pipeline %q: attribute %d has unusable format %s", info.Label, a.Location, a.Format)
		}
		if b.Stride != 0 && uint64(a.Offset)+uint64(a.Format.Info().BlockSize) > uint64(b.Stride) {
			return errorf(ErrInvalidArgument, "pipeline %q: attribute %d overruns stride %d", info.Label, a.Location, b.Stride)
		}
		attrs[a.Location] = a
	}

	vs := info.Stage(ShaderStageVertex)
	iface := vs.Interface()
	if len(iface.Inputs) == 0 && len(iface.Outputs) == 0 {
		return nil
	}
	used := make(map[uint32]bool, len(iface.Inputs))
	for _, in := range iface.Inputs {
		a, ok := attrs[in.Location]
		if !ok {
			return errorf(ErrInvalidArgument, "pipeline %q: vertex input %q at location %d has no attribute", info.Label, in.Name, in.Location)
		}
		if in.Format != FormatUndefined && !a.Format.Compatible(in.Format) {
			return errorf(ErrInvalidArgument, "pipeline %q: vertex input %q expects %s, attribute is %s", info.Label, in.Name, in.Format, a.Format)
		}
		used[in.Location] = true
	}
	for loc := range attrs {
		if !used[loc] {
			Logger().Warn("gal: vertex attribute not consumed by shader",
				slog.String("pipeline", info.Label), slog.Uint64("location", uint64(loc)))
		}
	}
	return nil
}

func validateFragmentInterface(info *GraphicsPipelineCreateInfo, rp *RenderPassCreateInfo) error {
	sp := rp.Subpasses[info.Subpass]
	if len(info.ColorBlend.Attachments) != len(sp.ColorAttachments) {
		return errorf(ErrIncompatibleRenderPass, "pipeline %q: %d blend attachments for %d color attachments",
			info.Label, len(info.ColorBlend.Attachments), len(sp.ColorAttachments))
	}
	// sample counts of the subpass attachments must match the pipeline
	samples := info.Multisample.Samples
	if samples == 0 {
		samples = SampleCount1
	}
	for _, ref := range sp.ColorAttachments {
		if ref.Attachment != AttachmentUnused && rp.Attachments[ref.Attachment].Samples != samples {
			return errorf(ErrIncompatibleRenderPass, "pipeline %q: %s samples, attachment %d has %s",
				info.Label, samples, ref.Attachment, rp.Attachments[ref.Attachment].Samples)
		}
	}
	if ds := sp.DepthStencilAttachment; ds != nil && ds.Attachment != AttachmentUnused {
		if rp.Attachments[ds.Attachment].Samples != samples {
			return errorf(ErrIncompatibleRenderPass, "pipeline %q: %s samples, depth attachment has %s",
				info.Label, samples, rp.Attachments[ds.Attachment].Samples)
		}
	} else if info.DepthStencil != nil && (info.DepthStencil.DepthTest || info.DepthStencil.StencilTest) {
		return errorf(ErrIncompatibleRenderPass, "pipeline %q: depth/stencil testing without a depth attachment", info.Label)
	}

	fs := info.Stage(ShaderStageFragment)
	if fs == nil {
		return nil
	}
	iface := fs.Interface()
	if len(iface.Inputs) == 0 && len(iface.Outputs) == 0 {
		return nil
	}
	used := make(map[uint32]bool, len(iface.Outputs))
	for _, out := range iface.Outputs {
		if int(out.Location) >= len(sp.ColorAttachments) || sp.ColorAttachments[out.Location].Attachment == AttachmentUnused {
			return errorf(ErrIncompatibleRenderPass, "pipeline %q: fragment output %q at location %d has no color attachment",
				info.Label, out.Name, out.Location)
		}
		att := rp.Attachments[sp.ColorAttachments[out.Location].Attachment]
		if out.Format != FormatUndefined && !att.Format.Compatible(out.Format) {
			return errorf(ErrIncompatibleRenderPass, "pipeline %q: fragment output %q is %s, attachment is %s",
				info.Label, out.Name, out.Format, att.Format)
		}
		used[out.Location] = true
	}
	for i, ref := range sp.ColorAttachments {
		if ref.Attachment != AttachmentUnused && !used[uint32(i)] {
			Logger().Warn("gal: color attachment not written by fragment shader",
				slog.String("pipeline", info.Label), slog.Int("location", i))
		}
	}
	return nil
}
