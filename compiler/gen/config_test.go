package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.False(t, cfg.DeclareUnions)
	assert.Zero(t, cfg.Workers)
	assert.Empty(t, cfg.Targets)
}

func TestOptions(t *testing.T) {
	cfg, err := NewConfig(
		WithTarget("out"),
		WithHeader("generated"),
		WithDeclareUnions(),
		WithWorkers(4),
		WithFeatures(FeatureManifest),
	)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Target)
	assert.Equal(t, "generated", cfg.Header)
	assert.True(t, cfg.DeclareUnions)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.FeatureEnabled(FeatureManifest.Name))
	assert.False(t, cfg.FeatureEnabled(FeatureSnapshot.Name))
}

func TestOptionValidation(t *testing.T) {
	_, err := NewConfig(WithTarget(""))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewConfig(WithWorkers(-1))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewConfig(WithTargets("no-such-target"))
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestApplyAllCollectsErrors(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithTarget(""), WithWorkers(-1), WithHeader("h"))
	require.Error(t, err)
	// Both failures are reported; the valid option still applied.
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Workers")
	assert.Equal(t, "h", c.Header)
}

func TestMustNewConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewConfig(WithTarget(""))
	})
}

func TestOutput(t *testing.T) {
	cfg := MustNewConfig(WithTarget("out"), WithHeader("h"))
	out := cfg.Output()
	assert.Equal(t, "out", out.Target)
	assert.Equal(t, "h", out.Header)
}

func TestFeatureDeclareUnionsMirrorsOption(t *testing.T) {
	cfg, err := NewConfig(WithFeatures(FeatureDeclareUnions))
	require.NoError(t, err)
	assert.True(t, cfg.DeclareUnions)
}

func TestFeatureByName(t *testing.T) {
	f, ok := FeatureByName("manifest")
	require.True(t, ok)
	assert.Equal(t, FeatureManifest.Name, f.Name)

	_, ok = FeatureByName("no-such-feature")
	assert.False(t, ok)
}
