package configs

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
)

func TestDefaultsProduceValidConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults(viper.GetViper())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.NoError(t, ValidateConfig(config))
	assert.Equal(t, pitch.DefaultConfig(), config.ToPitchConfig())
	assert.Equal(t, pitch.DefaultGateConfig(), config.ToGateConfig())
}

func TestValidateRejectsBadValues(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults(viper.GetViper())

	viper.Set("extractor.frame_size", 4000)
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Error(t, ValidateConfig(config))

	viper.Set("extractor.frame_size", 4096)
	viper.Set("scoring.weights.alignment", 0.9)
	config, err = LoadConfig()
	require.NoError(t, err)
	assert.Error(t, ValidateConfig(config))
}

func TestConfigFileOverride(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults(viper.GetViper())

	viper.Set("extractor.min_frequency", 80.0)
	viper.Set("gate.threshold_multiplier", 2.5)

	config, err := LoadConfig()
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(config))

	assert.Equal(t, 80.0, config.ToPitchConfig().MinFrequency)
	assert.Equal(t, 2.5, config.ToGateConfig().ThresholdMultiplier)
}
