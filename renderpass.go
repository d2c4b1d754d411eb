package gal

// AttachmentUnused marks an unused attachment reference.
const AttachmentUnused = ^uint32(0)

// SubpassExternal refers to commands outside the render pass in a
// subpass dependency.
const SubpassExternal = ^uint32(0)

// AttachmentDescription describes one attachment of a render pass.
type AttachmentDescription struct {
	Format         Format
	Samples        SampleCount
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// AttachmentReference points a subpass at an attachment.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription lists the attachments a subpass reads and writes.
type SubpassDescription struct {
	BindPoint              PipelineBindPoint
	InputAttachments       []AttachmentReference
	ColorAttachments       []AttachmentReference
	ResolveAttachments     []AttachmentReference
	DepthStencilAttachment *AttachmentReference
	PreserveAttachments    []uint32
}

// SubpassDependency orders two subpasses, or a subpass and external
// commands.
type SubpassDependency struct {
	SrcSubpass    uint32
	DstSubpass    uint32
	SrcStageMask  PipelineStageFlags
	DstStageMask  PipelineStageFlags
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
	Flags         DependencyFlags
}

// RenderPassCreateInfo describes attachments, subpasses and the
// dependencies between them.
type RenderPassCreateInfo struct {
	Label        string
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

// RenderPass is an immutable validated render pass description.
type RenderPass interface {
	Object
	Info() *RenderPassCreateInfo
}

// FrameBufferCreateInfo binds concrete image views to a render pass.
type FrameBufferCreateInfo struct {
	Label       string
	RenderPass  RenderPass
	Attachments []ImageView
	Extent      Extent2D
	Layers      uint32
}

// FrameBuffer is a set of image views usable with compatible render passes.
type FrameBuffer interface {
	Object
	RenderPass() RenderPass
	Attachments() []ImageView
	Extent() Extent2D
	Layers() uint32
}

// ValidateRenderPass checks attachment references, subpass usage and the
// dependency graph of a render pass.
func ValidateRenderPass(info *RenderPassCreateInfo) error {
	if len(info.Subpasses) == 0 {
		return errorf(ErrInvalidArgument, "render pass %q has no subpasses", info.Label)
	}
	for i, a := range info.Attachments {
		if a.Format == FormatUndefined || !a.Format.Valid() {
			return errorf(ErrInvalidArgument, "render pass %q: attachment %d has no format", info.Label, i)
		}
		if !a.Samples.Single() {
			return errorf(ErrInvalidArgument, "render pass %q: attachment %d has invalid sample count %s", info.Label, i, a.Samples)
		}
		if !a.LoadOp.Valid() || !a.StoreOp.Valid() || !a.StencilLoadOp.Valid() || !a.StencilStoreOp.Valid() {
			return errorf(ErrInvalidArgument, "render pass %q: attachment %d has invalid load or store op", info.Label, i)
		}
		if !a.InitialLayout.Valid() || !a.FinalLayout.Valid() || a.FinalLayout == ImageLayoutUndefined || a.FinalLayout == ImageLayoutPreinitialized {
			return errorf(ErrInvalidArgument, "render pass %q: attachment %d has invalid layouts %s -> %s", info.Label, i, a.InitialLayout, a.FinalLayout)
		}
	}
	for i := range info.Subpasses {
		if err := validateSubpass(info, i); err != nil {
			return err
		}
	}
	return validateDependencies(info)
}

func validateSubpass(info *RenderPassCreateInfo, index int) error {
	sp := &info.Subpasses[index]
	n := uint32(len(info.Attachments))
	if sp.BindPoint != PipelineBindPointGraphics {
		return errorf(ErrInvalidArgument, "render pass %q: subpass %d must use the graphics bind point", info.Label, index)
	}
	check := func(role string, ref AttachmentReference) error {
		if ref.Attachment == AttachmentUnused {
			return nil
		}
		if ref.Attachment >= n {
			return errorf(ErrInvalidArgument, "render pass %q: subpass %d %s attachment %d out of range", info.Label, index, role, ref.Attachment)
		}
		if !ref.Layout.Valid() || ref.Layout == ImageLayoutUndefined || ref.Layout == ImageLayoutPreinitialized || ref.Layout == ImageLayoutPresentSrc {
			return errorf(ErrInvalidArgument, "render pass %q: subpass %d %s attachment %d uses layout %s", info.Label, index, role, ref.Attachment, ref.Layout)
		}
		return nil
	}

	// role of each attachment inside this subpass
	const (
		roleInput = 1 << iota
		roleColor
		roleResolve
		roleDepth
	)
	roles := make(map[uint32]int)
	layouts := make(map[uint32]ImageLayout)

	for _, ref := range sp.InputAttachments {
		if err := check("input", ref); err != nil {
			return err
		}
		if ref.Attachment != AttachmentUnused {
			roles[ref.Attachment] |= roleInput
			layouts[ref.Attachment] = ref.Layout
		}
	}
	for _, ref := range sp.ColorAttachments {
		if err := check("color", ref); err != nil {
			return err
		}
		if ref.Attachment == AttachmentUnused {
			continue
		}
		if !info.Attachments[ref.Attachment].Format.IsColor() {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d uses %s attachment %d as color", info.Label, index, info.Attachments[ref.Attachment].Format, ref.Attachment)
		}
		if roles[ref.Attachment]&roleColor != 0 {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d references color attachment %d twice", info.Label, index, ref.Attachment)
		}
		if roles[ref.Attachment]&roleInput != 0 && (ref.Layout != ImageLayoutGeneral || layouts[ref.Attachment] != ImageLayoutGeneral) {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d reads and writes attachment %d outside the general layout", info.Label, index, ref.Attachment)
		}
		roles[ref.Attachment] |= roleColor
	}
	if len(sp.ResolveAttachments) > 0 {
		if len(sp.ResolveAttachments) != len(sp.ColorAttachments) {
			return errorf(ErrInvalidArgument, "render pass %q: subpass %d has %d resolve attachments for %d color attachments", info.Label, index, len(sp.ResolveAttachments), len(sp.ColorAttachments))
		}
		for i, ref := range sp.ResolveAttachments {
			if err := check("resolve", ref); err != nil {
				return err
			}
			if ref.Attachment == AttachmentUnused {
				continue
			}
			src := sp.ColorAttachments[i].Attachment
			if src == AttachmentUnused || info.Attachments[src].Samples == SampleCount1 {
				return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d resolves from a single-sampled attachment", info.Label, index)
			}
			dst := info.Attachments[ref.Attachment]
			if dst.Samples != SampleCount1 || dst.Format != info.Attachments[src].Format {
				return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d resolve target %d must be single-sampled %s", info.Label, index, ref.Attachment, info.Attachments[src].Format)
			}
			if roles[ref.Attachment] != 0 {
				return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d resolve target %d is used in another role", info.Label, index, ref.Attachment)
			}
			roles[ref.Attachment] |= roleResolve
		}
	}
	if ds := sp.DepthStencilAttachment; ds != nil && ds.Attachment != AttachmentUnused {
		if err := check("depth/stencil", *ds); err != nil {
			return err
		}
		if !info.Attachments[ds.Attachment].Format.IsDepthStencil() {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d uses %s attachment %d as depth/stencil", info.Label, index, info.Attachments[ds.Attachment].Format, ds.Attachment)
		}
		r := roles[ds.Attachment]
		if r&(roleColor|roleResolve) != 0 {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d uses attachment %d as color and depth", info.Label, index, ds.Attachment)
		}
		if r&roleInput != 0 && ds.Layout != ImageLayoutGeneral && ds.Layout != ImageLayoutDepthStencilReadOnlyOptimal {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d reads and writes depth attachment %d", info.Label, index, ds.Attachment)
		}
		roles[ds.Attachment] |= roleDepth
	}
	for _, p := range sp.PreserveAttachments {
		if p == AttachmentUnused || p >= n {
			return errorf(ErrInvalidArgument, "render pass %q: subpass %d preserves invalid attachment %d", info.Label, index, p)
		}
		if roles[p] != 0 {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d preserves attachment %d it also uses", info.Label, index, p)
		}
	}

	// all color and depth attachments of one subpass share a sample count
	var samples SampleCount
	refs := append([]AttachmentReference(nil), sp.ColorAttachments...)
	if sp.DepthStencilAttachment != nil {
		refs = append(refs, *sp.DepthStencilAttachment)
	}
	for _, ref := range refs {
		if ref.Attachment == AttachmentUnused {
			continue
		}
		s := info.Attachments[ref.Attachment].Samples
		if samples != 0 && s != samples {
			return errorf(ErrInvalidSubpassUsage, "render pass %q: subpass %d mixes sample counts %s and %s", info.Label, index, samples, s)
		}
		samples = s
	}
	return nil
}

// validateDependencies rejects dependencies that point at missing subpasses
// or run against submission order. Subpasses execute in index order, so a
// backward edge is the only way to form a cycle.
func validateDependencies(info *RenderPassCreateInfo) error {
	n := uint32(len(info.Subpasses))
	for i, d := range info.Dependencies {
		if d.SrcSubpass == SubpassExternal && d.DstSubpass == SubpassExternal {
			return errorf(ErrInvalidArgument, "render pass %q: dependency %d is external on both sides", info.Label, i)
		}
		if (d.SrcSubpass != SubpassExternal && d.SrcSubpass >= n) || (d.DstSubpass != SubpassExternal && d.DstSubpass >= n) {
			return errorf(ErrInvalidArgument, "render pass %q: dependency %d references a missing subpass", info.Label, i)
		}
		if d.SrcSubpass == SubpassExternal || d.DstSubpass == SubpassExternal {
			continue
		}
		if d.SrcSubpass > d.DstSubpass {
			return errorf(ErrInvalidArgument, "render pass %q: dependency %d runs from subpass %d back to %d", info.Label, i, d.SrcSubpass, d.DstSubpass)
		}
	}
	return nil
}

// RenderPassesCompatible reports whether pipelines and frame buffers made
// for a can be used with b: same attachment count, formats and sample
// counts.
func RenderPassesCompatible(a, b *RenderPassCreateInfo) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || len(a.Attachments) != len(b.Attachments) || len(a.Subpasses) != len(b.Subpasses) {
		return false
	}
	for i := range a.Attachments {
		if a.Attachments[i].Format != b.Attachments[i].Format || a.Attachments[i].Samples != b.Attachments[i].Samples {
			return false
		}
	}
	return true
}

// CheckFrameBuffer verifies that the views of a frame buffer match its
// render pass.
func CheckFrameBuffer(info FrameBufferCreateInfo) error {
	if info.RenderPass == nil {
		return errorf(ErrInvalidArgument, "frame buffer %q has no render pass", info.Label)
	}
	if info.RenderPass.Destroyed() {
		return errorf(ErrInvalidState, "frame buffer %q: render pass %q is destroyed", info.Label, info.RenderPass.Label())
	}
	if info.Extent.Width == 0 || info.Extent.Height == 0 {
		return errorf(ErrInvalidArgument, "frame buffer %q has an empty extent", info.Label)
	}
	rp := info.RenderPass.Info()
	if len(info.Attachments) != len(rp.Attachments) {
		return errorf(ErrIncompatibleRenderPass, "frame buffer %q has %d views, render pass %q has %d attachments",
			info.Label, len(info.Attachments), rp.Label, len(rp.Attachments))
	}
	layers := info.Layers
	if layers == 0 {
		layers = 1
	}
	inputs := make(map[uint32]bool)
	for _, sp := range rp.Subpasses {
		for _, ref := range sp.InputAttachments {
			inputs[ref.Attachment] = true
		}
	}
	for i, v := range info.Attachments {
		if v == nil {
			return errorf(ErrInvalidArgument, "frame buffer %q: view %d is nil", info.Label, i)
		}
		if v.Destroyed() {
			return errorf(ErrInvalidState, "frame buffer %q: view %d is destroyed", info.Label, i)
		}
		want := rp.Attachments[i]
		if v.Format() != want.Format {
			return errorf(ErrIncompatibleRenderPass, "frame buffer %q: view %d has format %s, attachment wants %s", info.Label, i, v.Format(), want.Format)
		}
		if v.Samples() != want.Samples {
			return errorf(ErrIncompatibleRenderPass, "frame buffer %q: view %d has %s samples, attachment wants %s", info.Label, i, v.Samples(), want.Samples)
		}
		e := v.Extent()
		if e.Width < info.Extent.Width || e.Height < info.Extent.Height {
			return errorf(ErrIncompatibleRenderPass, "frame buffer %q: view %d extent %dx%d smaller than %dx%d",
				info.Label, i, e.Width, e.Height, info.Extent.Width, info.Extent.Height)
		}
		if v.Range().LevelCount != 1 {
			return errorf(ErrInvalidArgument, "frame buffer %q: view %d must select a single mip level", info.Label, i)
		}
		if v.Range().LayerCount < layers {
			return errorf(ErrIncompatibleRenderPass, "frame buffer %q: view %d has fewer than %d layers", info.Label, i, layers)
		}
		usage := v.Image().Info().Usage
		needed := ImageUsageColorAttachment
		if want.Format.IsDepthStencil() {
			needed = ImageUsageDepthStencilAttachment
		}
		if inputs[uint32(i)] {
			needed |= ImageUsageInputAttachment
		}
		if !usage.Has(needed) {
			return errorf(ErrInvalidArgument, "frame buffer %q: view %d image lacks %s usage", info.Label, i, needed)
		}
	}
	return nil
}
