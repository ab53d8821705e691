package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial("plain")

	assert.Equal(t, "plain", m.Name())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.False(t, m.CastsShadows())
	assert.False(t, m.UseLightProbes())
}

func TestNewMaterialOptions(t *testing.T) {
	m := NewMaterial("tinted",
		WithBaseColor(0.9, 0.8, 0.5, 1.0),
		WithCastsShadows(true),
		WithLightProbes(true),
	)

	assert.Equal(t, [4]float32{0.9, 0.8, 0.5, 1.0}, m.BaseColor())
	assert.True(t, m.CastsShadows())
	assert.True(t, m.UseLightProbes())
}
