package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/pixel-morph/common"
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/multierr"
)

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)
	sampleCount MSAASampleCount  // MSAA sample count for the main render pass

	// Point pipeline and its resources.
	shaderModule    *wgpu.ShaderModule
	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	pointPipeline   *wgpu.RenderPipeline
	uniformBuffer   *wgpu.Buffer
	bindGroup       *wgpu.BindGroup
	positionBuffer  *wgpu.Buffer
	colorBuffer     *wgpu.Buffer
	pointCapacity   int

	// Frame state between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

type wgpuRendererBackend interface {
	// ConfigureSurface is a wrapper for boilerplate logic required when calling ConfigureSurface on a surface.
	// This is required when the surface size changes, such as when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the MSAA or depth attachments could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterPointPipeline compiles the WGSL source and creates the point-list render pipeline
	// with two vertex buffers (positions at slot 0, colors at slot 1) and one uniform at group 0.
	// ConfigureSurface must have been called so the surface format is known.
	//
	// Parameters:
	//   - source: the WGSL program
	//
	// Returns:
	//   - error: an error if any GPU object could not be created
	RegisterPointPipeline(source string) error

	// AllocatePoints (re)creates the position and color vertex buffers for count points and uploads colors.
	//
	// Parameters:
	//   - count: the number of points
	//   - colors: r, g, b per point
	//
	// Returns:
	//   - error: an error if a buffer could not be created
	AllocatePoints(count int, colors []float32) error

	// WritePositions uploads x, y, z per point into the position buffer.
	//
	// Parameters:
	//   - positions: the flat position slice
	WritePositions(positions []float32)

	// WriteUniform uploads the per-frame uniform.
	//
	// Parameters:
	//   - data: the marshaled GPUFrameUniform
	WriteUniform(data []byte)

	// BeginFrame acquires the next swapchain texture, creates a command encoder, and begins
	// the main render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawPoints encodes a non-indexed point-list draw of count vertices in the current pass.
	//
	// Parameters:
	//   - count: number of points to draw
	DrawPoints(count uint32)

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present afterwards.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Release frees every GPU object owned by the backend.
	//
	// Returns:
	//   - error: combined errors from releasing
	Release() error
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	if surfaceDescriptor == nil {
		return nil, errors.New("window has no surface descriptor")
	}

	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseAttachments()

	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}

	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("failed to create MSAA texture: %w", err)
		}
		b.msaaTexture = msaaTexture
		b.msaaTextureView, err = msaaTexture.CreateView(nil)
		if err != nil {
			return fmt.Errorf("failed to create MSAA view: %w", err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	b.depthTexture = depthTexture
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("failed to create depth view: %w", err)
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:          b.msaaTextureView, // nil when MSAA is off; set in BeginFrame
				ResolveTarget: nil,               // set per-frame when MSAA is on
				LoadOp:        wgpu.LoadOpClear,
				StoreOp:       storeOp,
				ClearValue: wgpu.Color{
					R: 0, G: 0, B: 0, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	return nil
}

// releaseAttachments frees the size-dependent textures. Caller holds mu.
func (b *wgpuRendererBackendImpl) releaseAttachments() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterPointPipeline(source string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.surfaceFormat == nil {
		return errors.New("surface must be configured before registering the point pipeline")
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Points Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: source,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to compile point shader: %w", err)
	}
	b.shaderModule = module

	uniformSize := uint64((&GPUFrameUniform{}).Size())
	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uniformSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Points",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	b.pointPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Points Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: pointVertexEntry,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: pointStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					},
				},
				{
					ArrayStride: pointStride,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: pointFragmentEntry,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyPointList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create point pipeline: %w", err)
	}

	b.uniformBuffer, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniform Buffer",
		Size:  uniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create uniform buffer: %w", err)
	}

	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Uniform Bind Group",
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.uniformBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bind group: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) AllocatePoints(count int, colors []float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.positionBuffer != nil {
		b.positionBuffer.Release()
		b.positionBuffer = nil
	}
	if b.colorBuffer != nil {
		b.colorBuffer.Release()
		b.colorBuffer = nil
	}
	b.pointCapacity = 0
	if count <= 0 {
		return nil
	}

	size := uint64(count * pointStride)
	pos, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Point Position Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create position buffer: %w", err)
	}
	col, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Point Color Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		pos.Release()
		return fmt.Errorf("failed to create color buffer: %w", err)
	}
	b.queue.WriteBuffer(col, 0, common.SliceToBytes(colors[:count*3]))

	b.positionBuffer = pos
	b.colorBuffer = col
	b.pointCapacity = count
	return nil
}

func (b *wgpuRendererBackendImpl) WritePositions(positions []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.positionBuffer == nil || len(positions) == 0 {
		return
	}
	n := min(len(positions), b.pointCapacity*3)
	b.queue.WriteBuffer(b.positionBuffer, 0, common.SliceToBytes(positions[:n]))
}

func (b *wgpuRendererBackendImpl) WriteUniform(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.uniformBuffer == nil {
		return
	}
	b.queue.WriteBuffer(b.uniformBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A surface image still held from a previous frame must be presented first.
	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	if b.sampleCount > 1 {
		b.renderPassDescriptor.ColorAttachments[0].ResolveTarget = view
	} else {
		b.renderPassDescriptor.ColorAttachments[0].View = view
	}
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuRendererBackendImpl) DrawPoints(count uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil || b.pointPipeline == nil || b.positionBuffer == nil {
		return
	}
	count = min(count, uint32(b.pointCapacity))

	b.framePass.SetPipeline(b.pointPipeline)
	b.framePass.SetBindGroup(0, b.bindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.positionBuffer, 0, wgpu.WholeSize)
	b.framePass.SetVertexBuffer(1, b.colorBuffer, 0, wgpu.WholeSize)
	b.framePass.Draw(count, 1, 0, 0)
}

func (b *wgpuRendererBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameView.Release()
		b.frameSurface.Release()
		b.frameEncoder = nil
		b.framePass = nil
		b.frameSurface = nil
		b.frameView = nil
		return
	}

	b.queue.Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	b.framePass = nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}

	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseAttachments()

	var err error
	release := func(name string, fn func()) {
		err = multierr.Append(err, guardRelease(name, fn))
	}
	if b.bindGroup != nil {
		release("bind group", b.bindGroup.Release)
	}
	if b.uniformBuffer != nil {
		release("uniform buffer", b.uniformBuffer.Release)
	}
	if b.positionBuffer != nil {
		release("position buffer", b.positionBuffer.Release)
	}
	if b.colorBuffer != nil {
		release("color buffer", b.colorBuffer.Release)
	}
	if b.pointPipeline != nil {
		release("point pipeline", b.pointPipeline.Release)
	}
	if b.pipelineLayout != nil {
		release("pipeline layout", b.pipelineLayout.Release)
	}
	if b.bindGroupLayout != nil {
		release("bind group layout", b.bindGroupLayout.Release)
	}
	if b.shaderModule != nil {
		release("shader module", b.shaderModule.Release)
	}
	release("queue", b.queue.Release)
	release("device", b.device.Release)
	release("adapter", b.adapter.Release)
	release("surface", b.surface.Release)
	release("instance", b.instance.Release)

	b.bindGroup, b.uniformBuffer, b.positionBuffer, b.colorBuffer = nil, nil, nil, nil
	b.pointPipeline, b.pipelineLayout, b.bindGroupLayout, b.shaderModule = nil, nil, nil, nil
	b.pointCapacity = 0
	return err
}

// guardRelease runs a native release and converts a panic into an error.
func guardRelease(name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release %s: %v", name, r)
		}
	}()
	fn()
	return nil
}
