package sensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/tamzrod/vdevice/internal/config"
)

func TestBuild_None(t *testing.T) {
	src, closeFn, err := Build(cfg.SensorConfig{})
	require.NoError(t, err)
	assert.Nil(t, src)
	assert.NoError(t, closeFn())
}

func TestBuild_Fixed(t *testing.T) {
	v := int16(55)
	src, _, err := Build(cfg.SensorConfig{Kind: cfg.SensorFixed, Value: &v})
	require.NoError(t, err)

	got, err := src.Sample()
	require.NoError(t, err)
	assert.Equal(t, int16(55), got)
}

func TestBuild_Sequence(t *testing.T) {
	src, _, err := Build(cfg.SensorConfig{Kind: cfg.SensorSequence, Values: []int16{1, 2}})
	require.NoError(t, err)

	a, _ := src.Sample()
	b, _ := src.Sample()
	assert.Equal(t, []int16{1, 2}, []int16{a, b})
}

func TestBuild_Errors(t *testing.T) {
	_, _, err := Build(cfg.SensorConfig{Kind: cfg.SensorFixed})
	assert.Error(t, err)

	_, _, err = Build(cfg.SensorConfig{Kind: "laser"})
	assert.Error(t, err)

	_, _, err = Build(cfg.SensorConfig{Kind: cfg.SensorModbus})
	assert.Error(t, err)
}
