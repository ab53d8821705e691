package material

// MaterialBuilderOption is a function that configures a Material instance during construction.
type MaterialBuilderOption func(*materialImpl)

// WithBaseColor is an option builder that sets the RGBA tint multiplied into
// vertex colors.
//
// Parameters:
//   - r, g, b, a: color components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a materialImpl
func WithBaseColor(r, g, b, a float32) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.baseColor = [4]float32{r, g, b, a}
	}
}

// WithCastsShadows is an option builder that sets shadow map eligibility for
// draws using the material.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shadow option to a materialImpl
func WithCastsShadows(castsShadows bool) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.castsShadows = castsShadows
	}
}

// WithLightProbes is an option builder that sets light probe sampling for
// draws using the material.
//
// Parameters:
//   - useLightProbes: true to enable light probe sampling
//
// Returns:
//   - MaterialBuilderOption: a function that applies the probe option to a materialImpl
func WithLightProbes(useLightProbes bool) MaterialBuilderOption {
	return func(m *materialImpl) {
		m.useLightProbes = useLightProbes
	}
}
