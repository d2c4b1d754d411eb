package record

import "github.com/gogpu/gal"

type object struct {
	label     string
	destroyed bool
}

func (o *object) Label() string   { return o.label }
func (o *object) Destroyed() bool { return o.destroyed }
func (o *object) Destroy()        { o.destroyed = true }

type buffer struct {
	object
	size  uint64
	usage gal.BufferUsageFlags
}

func newBuffer(label string, size uint64, usage gal.BufferUsageFlags) *buffer {
	return &buffer{object: object{label: label}, size: size, usage: usage}
}

func (b *buffer) Size() uint64                            { return b.size }
func (b *buffer) Usage() gal.BufferUsageFlags             { return b.usage }
func (b *buffer) Memory() gal.MemoryPropertyFlags         { return gal.MemoryPropertyDeviceLocal }
func (b *buffer) Map(offset, size uint64) ([]byte, error) { return nil, gal.ErrInvalidState }
func (b *buffer) Unmap() error                            { return nil }

type image struct {
	object
	info gal.ImageCreateInfo
}

func newImage(label string, format gal.Format, w, h uint32, usage gal.ImageUsageFlags) *image {
	return &image{object: object{label: label}, info: gal.ImageCreateInfo{
		Label:       label,
		Type:        gal.ImageType2D,
		Format:      format,
		Extent:      gal.Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     gal.SampleCount1,
		Usage:       usage,
	}}
}

func (i *image) Info() gal.ImageCreateInfo { return i.info }

type view struct {
	object
	img *image
}

func (v *view) Image() gal.Image            { return v.img }
func (v *view) ViewType() gal.ImageViewType { return gal.ImageViewType2D }
func (v *view) Format() gal.Format          { return v.img.info.Format }
func (v *view) Range() gal.ImageSubresourceRange {
	return gal.ImageSubresourceRange{LevelCount: 1, LayerCount: 1}
}
func (v *view) Extent() gal.Extent3D     { return v.img.info.Extent }
func (v *view) Samples() gal.SampleCount { return v.img.info.Samples }

type renderPass struct {
	object
	info gal.RenderPassCreateInfo
}

func (r *renderPass) Info() *gal.RenderPassCreateInfo { return &r.info }

func newRenderPass(label string, subpasses int, formats ...gal.Format) *renderPass {
	rp := &renderPass{object: object{label: label}}
	var refs []gal.AttachmentReference
	for i, f := range formats {
		rp.info.Attachments = append(rp.info.Attachments, gal.AttachmentDescription{
			Format:      f,
			Samples:     gal.SampleCount1,
			LoadOp:      gal.AttachmentLoadOpClear,
			StoreOp:     gal.AttachmentStoreOpStore,
			FinalLayout: gal.ImageLayoutColorAttachmentOptimal,
		})
		refs = append(refs, gal.AttachmentReference{Attachment: uint32(i), Layout: gal.ImageLayoutColorAttachmentOptimal})
	}
	for i := 0; i < subpasses; i++ {
		rp.info.Subpasses = append(rp.info.Subpasses, gal.SubpassDescription{ColorAttachments: refs})
	}
	return rp
}

type frameBuffer struct {
	object
	rp    gal.RenderPass
	views []gal.ImageView
	ext   gal.Extent2D
}

func (f *frameBuffer) RenderPass() gal.RenderPass   { return f.rp }
func (f *frameBuffer) Attachments() []gal.ImageView { return f.views }
func (f *frameBuffer) Extent() gal.Extent2D         { return f.ext }
func (f *frameBuffer) Layers() uint32               { return 1 }

type setLayout struct {
	object
	bindings []gal.DescriptorSetLayoutBinding
}

func (s *setLayout) Bindings() []gal.DescriptorSetLayoutBinding { return s.bindings }
func (s *setLayout) Binding(b uint32) (gal.DescriptorSetLayoutBinding, bool) {
	for _, x := range s.bindings {
		if x.Binding == b {
			return x, true
		}
	}
	return gal.DescriptorSetLayoutBinding{}, false
}

type set struct {
	object
	layout *setLayout
}

func (s *set) Layout() gal.DescriptorSetLayout              { return s.layout }
func (s *set) Update(writes []gal.WriteDescriptorSet) error { return nil }

type pipelineLayout struct {
	object
	sets []gal.DescriptorSetLayout
	push []gal.PushConstantRange
}

func (p *pipelineLayout) SetLayouts() []gal.DescriptorSetLayout  { return p.sets }
func (p *pipelineLayout) PushConstants() []gal.PushConstantRange { return p.push }

type pipeline struct {
	object
	bindPoint gal.PipelineBindPoint
	layout    *pipelineLayout
	graphics  *gal.GraphicsPipelineCreateInfo
}

func (p *pipeline) BindPoint() gal.PipelineBindPoint          { return p.bindPoint }
func (p *pipeline) Layout() gal.PipelineLayout                { return p.layout }
func (p *pipeline) Graphics() *gal.GraphicsPipelineCreateInfo { return p.graphics }

// scene is a render pass, matching frame buffer and graphics pipeline.
type scene struct {
	target *image
	rp     *renderPass
	fb     *frameBuffer
	pipe   *pipeline
	layout *pipelineLayout
	vbuf   *buffer
	ibuf   *buffer
}

func newScene() *scene {
	s := &scene{}
	s.target = newImage("target", gal.FormatRGBA8Unorm, 64, 64, gal.ImageUsageColorAttachment|gal.ImageUsageTransferSrc)
	s.rp = newRenderPass("pass", 1, gal.FormatRGBA8Unorm)
	s.fb = &frameBuffer{
		object: object{label: "fb"},
		rp:     s.rp,
		views:  []gal.ImageView{&view{object: object{label: "view"}, img: s.target}},
		ext:    gal.Extent2D{Width: 64, Height: 64},
	}
	s.layout = &pipelineLayout{object: object{label: "layout"}}
	s.pipe = &pipeline{
		object:    object{label: "pipe"},
		bindPoint: gal.PipelineBindPointGraphics,
		layout:    s.layout,
		graphics:  &gal.GraphicsPipelineCreateInfo{Layout: s.layout, RenderPass: s.rp},
	}
	s.vbuf = newBuffer("vertices", 256, gal.BufferUsageVertex)
	s.ibuf = newBuffer("indices", 64, gal.BufferUsageIndex)
	return s
}

func (s *scene) begin() gal.RenderPassBeginInfo {
	return gal.RenderPassBeginInfo{
		RenderPass:  s.rp,
		FrameBuffer: s.fb,
		RenderArea:  gal.Rect2D{Extent: s.fb.ext},
		ClearValues: []gal.ClearValue{gal.ClearColor(0, 0, 0, 1)},
	}
}
