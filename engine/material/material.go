package material

// materialImpl is the implementation of the Material interface.
type materialImpl struct {
	name           string
	baseColor      [4]float32
	castsShadows   bool
	useLightProbes bool
}

// Material describes how grain instances are shaded. Grain rendering is
// purely decorative, so materials default to no shadow casting and no light
// probe sampling; the batcher forwards these flags as draw options.
type Material interface {
	// Name returns the material name, used for GPU resource labels and logging.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// BaseColor returns the RGBA tint multiplied into vertex colors.
	//
	// Returns:
	//   - [4]float32: color as (r, g, b, a)
	BaseColor() [4]float32

	// CastsShadows returns whether draws with this material are eligible for
	// shadow map generation.
	//
	// Returns:
	//   - bool: true if the material casts shadows
	CastsShadows() bool

	// UseLightProbes returns whether draws with this material sample light
	// probes for ambient lighting.
	//
	// Returns:
	//   - bool: true if the material uses light probes
	UseLightProbes() bool
}

var _ Material = &materialImpl{}

// NewMaterial creates a new Material with the given name and any provided
// options applied.
//
// Parameters:
//   - name: the material name
//   - opts: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(name string, opts ...MaterialBuilderOption) Material {
	m := &materialImpl{
		name:           name,
		baseColor:      [4]float32{1, 1, 1, 1},
		castsShadows:   false,
		useLightProbes: false,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *materialImpl) Name() string {
	return m.name
}

func (m *materialImpl) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *materialImpl) CastsShadows() bool {
	return m.castsShadows
}

func (m *materialImpl) UseLightProbes() bool {
	return m.useLightProbes
}
