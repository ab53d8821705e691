package renderer

import (
	_ "embed"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/scatter-go/common"
	"github.com/Carmen-Shannon/scatter-go/engine/material"
	"github.com/Carmen-Shannon/scatter-go/engine/mesh"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/grain_unlit.wgsl
var grainUnlitWGSL string

const (
	// dynamicOffsetAlignment is the WebGPU minimum alignment for dynamic
	// buffer offsets.
	dynamicOffsetAlignment = 256

	// matrixBytes is the size of one packed 4x4 float32 model matrix.
	matrixBytes = 64

	// instanceWindowBytes is the fixed binding window for the instance
	// storage buffer: enough for MaxInstancesPerDraw matrices, rounded up to
	// the dynamic offset alignment. Every draw binds this window at its own
	// dynamic offset.
	instanceWindowBytes = (MaxInstancesPerDraw*matrixBytes + dynamicOffsetAlignment - 1) / dynamicOffsetAlignment * dynamicOffsetAlignment

	// paramsStrideBytes is the per-draw stride in the draw-params uniform
	// buffer. The params struct is 16 bytes but dynamic uniform offsets must
	// be alignment multiples.
	paramsStrideBytes = dynamicOffsetAlignment
)

// meshBuffers caches the GPU-side vertex and index buffers for one mesh.
type meshBuffers struct {
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
}

// wgpuRendererImpl is the wgpu implementation of the Renderer interface.
type wgpuRendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        *wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	presentMode          wgpu.PresentMode
	clearColor           wgpu.Color

	pipeline        *wgpu.RenderPipeline
	cameraBuffer    *wgpu.Buffer
	cameraBindGroup *wgpu.BindGroup

	// Per-draw resources: one growable storage buffer for instance matrices
	// and one growable uniform buffer for draw params, both addressed with
	// dynamic offsets. drawBindGroup binds a fixed window into each and is
	// recreated whenever either buffer grows.
	drawLayout     *wgpu.BindGroupLayout
	drawBindGroup  *wgpu.BindGroup
	instanceBuffer *wgpu.Buffer
	instanceCap    uint64
	paramsBuffer   *wgpu.Buffer
	paramsCap      uint64

	// Frame state for batched rendering across multiple draw calls.
	frameEncoder   *wgpu.CommandEncoder
	framePass      *wgpu.RenderPassEncoder
	frameSurface   *wgpu.Texture
	frameView      *wgpu.TextureView
	instanceOffset uint64 // next free byte in instanceBuffer this frame
	paramsOffset   uint64 // next free byte in paramsBuffer this frame

	meshCache map[mesh.Mesh]*meshBuffers

	// litRequestWarned latches the diagnostic for draws that request shadow
	// or light-probe features this backend does not implement.
	litRequestWarned bool

	forceFallbackAdapter bool
}

var _ Renderer = &wgpuRendererImpl{}

// NewRenderer creates a wgpu-backed Renderer targeting the given surface and
// configures it for the given pixel size. The surface descriptor is required
// and NewRenderer panics if it is nil or if the GPU device cannot be acquired.
//
// Parameters:
//   - surfaceDescriptor: platform surface to present into
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - opts: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, opts ...RendererBuilderOption) Renderer {
	if surfaceDescriptor == nil {
		panic("renderer: NewRenderer requires a non-nil surface descriptor")
	}
	runtime.LockOSThread()

	r := &wgpuRendererImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		meshCache:   make(map[mesh.Mesh]*meshBuffers),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		panic(err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Grain Renderer Device",
	})
	if err != nil {
		panic(err)
	}
	r.device = d
	r.queue = d.GetQueue()

	r.configureSurface(width, height)
	r.initPipeline()
	r.initCamera()

	log.Printf("[Renderer] initialized %dx%d surface", width, height)
	return r
}

// configureSurface configures the swapchain and recreates the depth buffer
// and render pass descriptor for the given pixel size.
func (r *wgpuRendererImpl) configureSurface(width, height int) {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       nil, // set per-frame to the swapchain view
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

// initPipeline builds the unlit instanced render pipeline from the embedded
// WGSL source.
func (r *wgpuRendererImpl) initPipeline() {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "grain_unlit",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: grainUnlitWGSL,
		},
	})
	if err != nil {
		panic(err)
	}

	cameraLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}

	drawLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Draw Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeReadOnlyStorage,
					HasDynamicOffset: true,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: true,
				},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	r.drawLayout = drawLayout

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Grain Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, drawLayout},
	})
	if err != nil {
		panic(err)
	}

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Grain Unlit Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 24,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
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
		panic(err)
	}
	r.pipeline = pipeline
	r.cameraLayoutInit(cameraLayout)
}

// cameraLayoutInit creates the camera uniform buffer and its bind group.
func (r *wgpuRendererImpl) cameraLayoutInit(layout *wgpu.BindGroupLayout) {
	buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  matrixBytes,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		panic(err)
	}
	r.cameraBuffer = buf

	bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: buf, Offset: 0, Size: matrixBytes},
		},
	})
	if err != nil {
		panic(err)
	}
	r.cameraBindGroup = bg
}

// initCamera seeds the camera uniform with the identity matrix so frames
// rendered before the first SetCamera are well defined.
func (r *wgpuRendererImpl) initCamera() {
	identity := make([]float32, 16)
	common.Identity(identity)
	r.queue.WriteBuffer(r.cameraBuffer, 0, common.SliceToBytes(identity))
}

func (r *wgpuRendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	r.configureSurface(width, height)
}

func (r *wgpuRendererImpl) SetCamera(viewProj []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(viewProj) < 16 {
		return
	}
	r.queue.WriteBuffer(r.cameraBuffer, 0, common.SliceToBytes(viewProj[:16]))
}

func (r *wgpuRendererImpl) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.cameraBindGroup, nil)

	r.frameEncoder = encoder
	r.framePass = pass
	r.frameSurface = surfaceTexture
	r.frameView = view
	r.instanceOffset = 0
	r.paramsOffset = 0

	return nil
}

func (r *wgpuRendererImpl) DrawInstanced(m mesh.Mesh, mat material.Material, instanceData []byte, instanceCount uint32, opts DrawOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return fmt.Errorf("DrawInstanced called outside BeginFrame/EndFrame")
	}
	if instanceCount == 0 {
		return nil
	}
	if instanceCount > MaxInstancesPerDraw {
		return fmt.Errorf("instance count %d exceeds per-draw ceiling %d", instanceCount, MaxInstancesPerDraw)
	}
	if uint64(len(instanceData)) < uint64(instanceCount)*matrixBytes {
		return fmt.Errorf("instance data holds %d bytes, need %d", len(instanceData), uint64(instanceCount)*matrixBytes)
	}

	if (opts.CastShadows || opts.UseLightProbes) && !r.litRequestWarned {
		log.Printf("[Renderer] shadow/light-probe features requested but not supported by the unlit backend")
		r.litRequestWarned = true
	}

	buffers, err := r.meshBuffersFor(m)
	if err != nil {
		return err
	}

	instOffset := r.instanceOffset
	paramOffset := r.paramsOffset
	if err := r.ensureDrawCapacity(instOffset+instanceWindowBytes, paramOffset+paramsStrideBytes); err != nil {
		return err
	}

	r.queue.WriteBuffer(r.instanceBuffer, instOffset, instanceData[:instanceCount*matrixBytes])
	color := mat.BaseColor()
	r.queue.WriteBuffer(r.paramsBuffer, paramOffset, common.StructToBytes(&color))

	r.framePass.SetBindGroup(1, r.drawBindGroup, []uint32{uint32(instOffset), uint32(paramOffset)})
	r.framePass.SetVertexBuffer(0, buffers.vertex, 0, wgpu.WholeSize)
	r.framePass.SetIndexBuffer(buffers.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	r.framePass.DrawIndexed(buffers.indexCount, instanceCount, 0, 0, 0)

	r.instanceOffset = instOffset + instanceWindowBytes
	r.paramsOffset = paramOffset + paramsStrideBytes
	return nil
}

func (r *wgpuRendererImpl) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.framePass == nil {
		return
	}
	r.framePass.End()

	commandBuffer, err := r.frameEncoder.Finish(nil)
	if err == nil {
		r.queue.Submit(commandBuffer)
		commandBuffer.Release()
	}
	r.frameEncoder.Release()
	r.frameEncoder = nil
	r.framePass = nil
}

func (r *wgpuRendererImpl) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frameSurface == nil {
		return
	}
	r.surface.Present()

	if r.frameView != nil {
		r.frameView.Release()
		r.frameView = nil
	}
	r.frameSurface.Release()
	r.frameSurface = nil
}

func (r *wgpuRendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.meshCache {
		b.vertex.Release()
		b.index.Release()
	}
	r.meshCache = make(map[mesh.Mesh]*meshBuffers)

	if r.instanceBuffer != nil {
		r.instanceBuffer.Release()
		r.instanceBuffer = nil
	}
	if r.paramsBuffer != nil {
		r.paramsBuffer.Release()
		r.paramsBuffer = nil
	}
	if r.cameraBuffer != nil {
		r.cameraBuffer.Release()
		r.cameraBuffer = nil
	}
	if r.device != nil {
		r.device.Release()
		r.device = nil
	}
}

// meshBuffersFor returns the cached GPU buffers for a mesh, uploading the
// vertex and index data on first use.
func (r *wgpuRendererImpl) meshBuffersFor(m mesh.Mesh) (*meshBuffers, error) {
	if cached, ok := r.meshCache[m]; ok {
		return cached, nil
	}

	vertexData := common.SliceToBytes(m.Vertices())
	vbuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	r.queue.WriteBuffer(vbuf, 0, vertexData)

	indexData := common.SliceToBytes(m.Indices())
	ibuf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: m.Name() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vbuf.Release()
		return nil, err
	}
	r.queue.WriteBuffer(ibuf, 0, indexData)

	buffers := &meshBuffers{
		vertex:     vbuf,
		index:      ibuf,
		indexCount: m.IndexCount(),
	}
	r.meshCache[m] = buffers
	log.Printf("[Renderer] uploaded mesh %q (%d vertices, %d indices)", m.Name(), len(m.Vertices()), m.IndexCount())
	return buffers, nil
}

// ensureDrawCapacity grows the instance and params buffers to at least the
// given sizes and rebuilds the draw bind group when either buffer changes.
// Growth doubles capacity so repeated frames at a stable instance count
// settle with no further reallocations.
func (r *wgpuRendererImpl) ensureDrawCapacity(instanceNeeded, paramsNeeded uint64) error {
	grew := false

	if r.instanceBuffer == nil || r.instanceCap < instanceNeeded {
		newCap := r.instanceCap * 2
		if newCap < instanceNeeded {
			newCap = instanceNeeded
		}
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Instance Matrix Buffer",
			Size:  newCap,
			Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		if r.instanceBuffer != nil {
			r.instanceBuffer.Release()
		}
		r.instanceBuffer = buf
		r.instanceCap = newCap
		grew = true
	}

	if r.paramsBuffer == nil || r.paramsCap < paramsNeeded {
		newCap := r.paramsCap * 2
		if newCap < paramsNeeded {
			newCap = paramsNeeded
		}
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Draw Params Buffer",
			Size:  newCap,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		if r.paramsBuffer != nil {
			r.paramsBuffer.Release()
		}
		r.paramsBuffer = buf
		r.paramsCap = newCap
		grew = true
	}

	if grew {
		bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Draw Bind Group",
			Layout: r.drawLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: r.instanceBuffer, Offset: 0, Size: instanceWindowBytes},
				{Binding: 1, Buffer: r.paramsBuffer, Offset: 0, Size: 16},
			},
		})
		if err != nil {
			return err
		}
		r.drawBindGroup = bg
	}
	return nil
}
