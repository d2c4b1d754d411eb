package gal

// Object is implemented by everything a Device creates. Destroy is explicit
// and idempotent; after it returns the object must not be used and
// Destroyed reports true.
type Object interface {
	Label() string
	Destroyed() bool
	Destroy()
}

// BufferCreateInfo describes a buffer.
type BufferCreateInfo struct {
	Label  string
	Size   uint64
	Usage  BufferUsageFlags
	Memory MemoryPropertyFlags
}

// Buffer is a linear range of device memory.
type Buffer interface {
	Object
	Size() uint64
	Usage() BufferUsageFlags
	Memory() MemoryPropertyFlags

	// Map returns a host view of size bytes at offset. The buffer must be
	// host visible. Writes become visible to the device after Unmap.
	Map(offset, size uint64) ([]byte, error)
	Unmap() error
}

// ImageSubresourceRange selects mip levels and array layers of an image.
type ImageSubresourceRange struct {
	Aspect         ImageAspectFlags
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageCreateInfo describes an image.
type ImageCreateInfo struct {
	Label         string
	Type          ImageType
	Format        Format
	Extent        Extent3D
	MipLevels     uint32
	ArrayLayers   uint32
	Samples       SampleCount
	Tiling        ImageTiling
	Usage         ImageUsageFlags
	Memory        MemoryPropertyFlags
	InitialLayout ImageLayout
}

// Image is a multidimensional texel array.
type Image interface {
	Object
	Info() ImageCreateInfo
}

// ImageViewCreateInfo describes a view on a subresource range of an image.
// A zero Format inherits the image format; zero counts select the
// remaining levels or layers.
type ImageViewCreateInfo struct {
	Label    string
	Image    Image
	ViewType ImageViewType
	Format   Format
	Range    ImageSubresourceRange
}

// ImageView selects how an image is accessed by pipelines and frame buffers.
type ImageView interface {
	Object
	Image() Image
	ViewType() ImageViewType
	Format() Format
	Range() ImageSubresourceRange
	// Extent is the extent of the view's base mip level.
	Extent() Extent3D
	Samples() SampleCount
}

// SamplerCreateInfo describes texture sampling state.
type SamplerCreateInfo struct {
	Label         string
	MagFilter     Filter
	MinFilter     Filter
	MipmapMode    MipmapMode
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	AddressModeW  AddressMode
	MipLodBias    float32
	MaxAnisotropy float32
	CompareEnable bool
	CompareOp     CompareOp
	MinLod        float32
	MaxLod        float32
	BorderColor   BorderColor
}

// Sampler is immutable sampling state.
type Sampler interface {
	Object
	Info() SamplerCreateInfo
}

// ResolveImageView fills the defaults of a view create-info from its image.
func ResolveImageView(info ImageViewCreateInfo) (ImageViewCreateInfo, error) {
	if info.Image == nil {
		return info, errorf(ErrInvalidArgument, "image view %q has no image", info.Label)
	}
	if info.Image.Destroyed() {
		return info, errorf(ErrInvalidState, "image view %q: image %q is destroyed", info.Label, info.Image.Label())
	}
	img := info.Image.Info()
	if info.Format == FormatUndefined {
		info.Format = img.Format
	}
	if info.Format.Info().Aspects != img.Format.Info().Aspects || info.Format.Info().BlockSize != img.Format.Info().BlockSize {
		return info, errorf(ErrInvalidArgument, "image view %q: format %s is not compatible with image format %s", info.Label, info.Format, img.Format)
	}
	if info.Range.Aspect == 0 {
		info.Range.Aspect = img.Format.Info().Aspects
	}
	if !img.Format.Info().Aspects.Has(info.Range.Aspect) {
		return info, errorf(ErrInvalidArgument, "image view %q: aspect %s not present in %s", info.Label, info.Range.Aspect, img.Format)
	}
	if info.Range.BaseMipLevel >= img.MipLevels {
		return info, errorf(ErrInvalidArgument, "image view %q: base mip level %d out of range", info.Label, info.Range.BaseMipLevel)
	}
	if info.Range.LevelCount == 0 {
		info.Range.LevelCount = img.MipLevels - info.Range.BaseMipLevel
	}
	if info.Range.BaseArrayLayer >= img.ArrayLayers {
		return info, errorf(ErrInvalidArgument, "image view %q: base array layer %d out of range", info.Label, info.Range.BaseArrayLayer)
	}
	if info.Range.LayerCount == 0 {
		info.Range.LayerCount = img.ArrayLayers - info.Range.BaseArrayLayer
	}
	if info.Range.BaseMipLevel+info.Range.LevelCount > img.MipLevels ||
		info.Range.BaseArrayLayer+info.Range.LayerCount > img.ArrayLayers {
		return info, errorf(ErrInvalidArgument, "image view %q: subresource range exceeds image", info.Label)
	}
	if !viewTypeCompatible(img.Type, info.ViewType) {
		return info, errorf(ErrInvalidArgument, "image view %q: view type %s on %s image", info.Label, info.ViewType, img.Type)
	}
	if (info.ViewType == ImageViewTypeCube || info.ViewType == ImageViewTypeCubeArray) && info.Range.LayerCount%6 != 0 {
		return info, errorf(ErrInvalidArgument, "image view %q: cube views need a multiple of 6 layers", info.Label)
	}
	return info, nil
}

func viewTypeCompatible(t ImageType, v ImageViewType) bool {
	switch t {
	case ImageType1D:
		return v == ImageViewType1D || v == ImageViewType1DArray
	case ImageType2D:
		return v == ImageViewType2D || v == ImageViewType2DArray || v == ImageViewTypeCube || v == ImageViewTypeCubeArray
	case ImageType3D:
		return v == ImageViewType3D
	}
	return false
}

// ValidateSampler checks a sampler create-info.
func ValidateSampler(info SamplerCreateInfo) error {
	switch {
	case !info.MagFilter.Valid(), !info.MinFilter.Valid(), !info.MipmapMode.Valid():
		return errorf(ErrInvalidArgument, "sampler %q: invalid filter", info.Label)
	case !info.AddressModeU.Valid(), !info.AddressModeV.Valid(), !info.AddressModeW.Valid():
		return errorf(ErrInvalidArgument, "sampler %q: invalid address mode", info.Label)
	case info.CompareEnable && !info.CompareOp.Valid():
		return errorf(ErrInvalidArgument, "sampler %q: invalid compare op", info.Label)
	case !info.BorderColor.Valid():
		return errorf(ErrInvalidArgument, "sampler %q: invalid border color", info.Label)
	case info.MaxLod < info.MinLod:
		return errorf(ErrInvalidArgument, "sampler %q: max lod %v below min lod %v", info.Label, info.MaxLod, info.MinLod)
	case info.MaxAnisotropy != 0 && info.MaxAnisotropy < 1:
		return errorf(ErrInvalidArgument, "sampler %q: max anisotropy %v below 1", info.Label, info.MaxAnisotropy)
	}
	return nil
}
