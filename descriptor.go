package gal

// DescriptorSetLayoutBinding declares one binding slot of a layout.
type DescriptorSetLayoutBinding struct {
	Binding uint32
	Type    DescriptorType
	// Count is the array size of the binding; 0 means 1.
	Count  uint32
	Stages ShaderStageFlags
}

// DescriptorSetLayoutCreateInfo is an ordered list of bindings.
type DescriptorSetLayoutCreateInfo struct {
	Label    string
	Bindings []DescriptorSetLayoutBinding
}

// DescriptorSetLayout is a reusable binding template. Pipelines and sets
// are compatible when they reference the same layout object.
type DescriptorSetLayout interface {
	Object
	Bindings() []DescriptorSetLayoutBinding
	// Binding returns the declaration of slot b.
	Binding(b uint32) (DescriptorSetLayoutBinding, bool)
}

// DescriptorBufferInfo references a range of a buffer. A Range of
// WholeSize extends to the end of the buffer.
type DescriptorBufferInfo struct {
	Buffer Buffer
	Offset uint64
	Range  uint64
}

// DescriptorImageInfo references a sampler, an image view, or both.
type DescriptorImageInfo struct {
	Sampler Sampler
	View    ImageView
	Layout  ImageLayout
}

// WriteDescriptorSet writes consecutive array elements of one binding.
// Buffer descriptors use Buffers, image and sampler descriptors use Images.
type WriteDescriptorSet struct {
	Binding      uint32
	ArrayElement uint32
	Type         DescriptorType
	Buffers      []DescriptorBufferInfo
	Images       []DescriptorImageInfo
}

// Len returns the number of descriptors written.
func (w *WriteDescriptorSet) Len() int {
	if w.Type.IsBuffer() {
		return len(w.Buffers)
	}
	return len(w.Images)
}

// DescriptorSet binds concrete resources to the slots of a layout.
type DescriptorSet interface {
	Object
	Layout() DescriptorSetLayout
	// Update validates every write and then applies them all. On error
	// nothing is applied.
	Update(writes []WriteDescriptorSet) error
}

// IsBuffer reports whether descriptors of type t reference buffers.
func (t DescriptorType) IsBuffer() bool {
	switch t {
	case DescriptorTypeUniformBuffer, DescriptorTypeStorageBuffer,
		DescriptorTypeUniformBufferDynamic, DescriptorTypeStorageBufferDynamic,
		DescriptorTypeUniformTexelBuffer, DescriptorTypeStorageTexelBuffer:
		return true
	}
	return false
}

// IsDynamic reports whether t takes a dynamic offset at bind time.
func (t DescriptorType) IsDynamic() bool {
	return t == DescriptorTypeUniformBufferDynamic || t == DescriptorTypeStorageBufferDynamic
}

// ValidateDescriptorSetLayout checks that binding numbers are unique and
// that every binding is visible to at least one stage.
func ValidateDescriptorSetLayout(info DescriptorSetLayoutCreateInfo) error {
	seen := make(map[uint32]struct{}, len(info.Bindings))
	for _, b := range info.Bindings {
		if _, dup := seen[b.Binding]; dup {
			return errorf(ErrInvalidArgument, "descriptor set layout %q: binding %d declared twice", info.Label, b.Binding)
		}
		seen[b.Binding] = struct{}{}
		if !b.Type.Valid() {
			return errorf(ErrInvalidArgument, "descriptor set layout %q: binding %d has invalid type", info.Label, b.Binding)
		}
		if b.Stages == 0 || b.Stages&ShaderStageAll != b.Stages {
			return errorf(ErrInvalidArgument, "descriptor set layout %q: binding %d has invalid stages %s", info.Label, b.Binding, b.Stages)
		}
		if b.Type == DescriptorTypeInputAttachment && b.Stages != ShaderStageFragment {
			return errorf(ErrInvalidArgument, "descriptor set layout %q: input attachment %d must be fragment only", info.Label, b.Binding)
		}
	}
	return nil
}

// ValidateDescriptorWrites checks a batch of writes against layout.
func ValidateDescriptorWrites(layout DescriptorSetLayout, writes []WriteDescriptorSet) error {
	if layout.Destroyed() {
		return errorf(ErrInvalidState, "descriptor set layout %q is destroyed", layout.Label())
	}
	for i := range writes {
		w := &writes[i]
		decl, ok := layout.Binding(w.Binding)
		if !ok {
			return errorf(ErrInvalidArgument, "write %d: layout %q has no binding %d", i, layout.Label(), w.Binding)
		}
		if w.Type != decl.Type {
			return errorf(ErrDescriptorTypeMismatch, "write %d: binding %d is %s, write is %s", i, w.Binding, decl.Type, w.Type)
		}
		count := decl.Count
		if count == 0 {
			count = 1
		}
		n := w.Len()
		if n == 0 {
			return errorf(ErrInvalidArgument, "write %d: no descriptors for binding %d", i, w.Binding)
		}
		if uint64(w.ArrayElement)+uint64(n) > uint64(count) {
			return errorf(ErrInvalidArgument, "write %d: elements [%d,%d) exceed binding %d array size %d", i, w.ArrayElement, w.ArrayElement+uint32(n), w.Binding, count)
		}
		if w.Type.IsBuffer() {
			if len(w.Images) != 0 {
				return errorf(ErrDescriptorTypeMismatch, "write %d: %s binding given image descriptors", i, w.Type)
			}
			for j, bi := range w.Buffers {
				if err := checkBufferDescriptor(w.Type, bi); err != nil {
					return errorf(err, "write %d element %d", i, j)
				}
			}
			continue
		}
		if len(w.Buffers) != 0 {
			return errorf(ErrDescriptorTypeMismatch, "write %d: %s binding given buffer descriptors", i, w.Type)
		}
		for j, ii := range w.Images {
			if err := checkImageDescriptor(w.Type, ii); err != nil {
				return errorf(err, "write %d element %d", i, j)
			}
		}
	}
	return nil
}

func checkBufferDescriptor(t DescriptorType, bi DescriptorBufferInfo) error {
	if bi.Buffer == nil {
		return ErrInvalidArgument
	}
	if bi.Buffer.Destroyed() {
		return ErrInvalidState
	}
	var need BufferUsageFlags
	switch t {
	case DescriptorTypeUniformBuffer, DescriptorTypeUniformBufferDynamic:
		need = BufferUsageUniform
	case DescriptorTypeStorageBuffer, DescriptorTypeStorageBufferDynamic:
		need = BufferUsageStorage
	case DescriptorTypeUniformTexelBuffer:
		need = BufferUsageUniformTexel
	case DescriptorTypeStorageTexelBuffer:
		need = BufferUsageStorageTexel
	}
	if !bi.Buffer.Usage().Has(need) {
		return ErrDescriptorTypeMismatch
	}
	size := bi.Buffer.Size()
	if bi.Offset >= size {
		return ErrInvalidArgument
	}
	if bi.Range != WholeSize && (bi.Range == 0 || !RangeFits(bi.Offset, bi.Range, size)) {
		return ErrInvalidArgument
	}
	return nil
}

func checkImageDescriptor(t DescriptorType, ii DescriptorImageInfo) error {
	needSampler := t == DescriptorTypeSampler || t == DescriptorTypeCombinedImageSampler
	needView := t != DescriptorTypeSampler
	if needSampler {
		if ii.Sampler == nil {
			return ErrInvalidArgument
		}
		if ii.Sampler.Destroyed() {
			return ErrInvalidState
		}
	}
	if !needView {
		return nil
	}
	if ii.View == nil {
		return ErrInvalidArgument
	}
	if ii.View.Destroyed() || ii.View.Image().Destroyed() {
		return ErrInvalidState
	}
	usage := ii.View.Image().Info().Usage
	var need ImageUsageFlags
	switch t {
	case DescriptorTypeCombinedImageSampler, DescriptorTypeSampledImage:
		need = ImageUsageSampled
	case DescriptorTypeStorageImage:
		need = ImageUsageStorage
	case DescriptorTypeInputAttachment:
		need = ImageUsageInputAttachment
	}
	if !usage.Has(need) {
		return ErrDescriptorTypeMismatch
	}
	return nil
}
