package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/pkg/config"
)

func TestNew_SinURL_Desactivado(t *testing.T) {
	c, err := New(context.Background(), config.RedisConfig{})

	require.NoError(t, err)
	assert.Nil(t, c, "REDIS_URL vacío no debe crear cliente")
}

func TestNew_URLInvalida(t *testing.T) {
	_, err := New(context.Background(), config.RedisConfig{URL: "http://no-es-redis"})

	assert.Error(t, err)
}
