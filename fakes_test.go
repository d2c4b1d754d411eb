package gal

// Minimal object implementations for testing the validation helpers
// without a backend.

type fakeObject struct {
	label     string
	destroyed bool
}

func (o *fakeObject) Label() string   { return o.label }
func (o *fakeObject) Destroyed() bool { return o.destroyed }
func (o *fakeObject) Destroy()        { o.destroyed = true }

type fakeRenderPass struct {
	fakeObject
	info RenderPassCreateInfo
}

func (p *fakeRenderPass) Info() *RenderPassCreateInfo { return &p.info }

type fakeShader struct {
	fakeObject
	stage ShaderStageFlags
	iface ShaderInterface
}

func (s *fakeShader) Stage() ShaderStageFlags    { return s.stage }
func (s *fakeShader) EntryPoint() string         { return "main" }
func (s *fakeShader) Interface() ShaderInterface { return s.iface }

type fakePipelineLayout struct{ fakeObject }

func (*fakePipelineLayout) SetLayouts() []DescriptorSetLayout  { return nil }
func (*fakePipelineLayout) PushConstants() []PushConstantRange { return nil }

type fakeImage struct {
	fakeObject
	info ImageCreateInfo
}

func (i *fakeImage) Info() ImageCreateInfo { return i.info }

type fakeView struct {
	fakeObject
	img *fakeImage
	rng ImageSubresourceRange
}

func (v *fakeView) Image() Image                 { return v.img }
func (v *fakeView) ViewType() ImageViewType      { return ImageViewType2D }
func (v *fakeView) Format() Format               { return v.img.info.Format }
func (v *fakeView) Range() ImageSubresourceRange { return v.rng }
func (v *fakeView) Extent() Extent3D             { return v.img.info.Extent }
func (v *fakeView) Samples() SampleCount         { return v.img.info.Samples }

func newFakeView(format Format, samples SampleCount, w, h uint32, usage ImageUsageFlags) *fakeView {
	img := &fakeImage{info: ImageCreateInfo{
		Type:        ImageType2D,
		Format:      format,
		Extent:      Extent3D{Width: w, Height: h, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     samples,
		Usage:       usage,
	}}
	return &fakeView{img: img, rng: ImageSubresourceRange{Aspect: ImageAspectColor, LevelCount: 1, LayerCount: 1}}
}

type fakeBuffer struct {
	fakeObject
	size  uint64
	usage BufferUsageFlags
}

func (b *fakeBuffer) Size() uint64                { return b.size }
func (b *fakeBuffer) Usage() BufferUsageFlags     { return b.usage }
func (b *fakeBuffer) Memory() MemoryPropertyFlags { return MemoryPropertyDeviceLocal }
func (b *fakeBuffer) Map(uint64, uint64) ([]byte, error) {
	return nil, ErrInvalidState
}
func (b *fakeBuffer) Unmap() error { return ErrInvalidState }

type fakeSetLayout struct {
	fakeObject
	bindings []DescriptorSetLayoutBinding
}

func (l *fakeSetLayout) Bindings() []DescriptorSetLayoutBinding { return l.bindings }
func (l *fakeSetLayout) Binding(b uint32) (DescriptorSetLayoutBinding, bool) {
	for _, d := range l.bindings {
		if d.Binding == b {
			return d, true
		}
	}
	return DescriptorSetLayoutBinding{}, false
}
