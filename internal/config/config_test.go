package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"Coil/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("COIL_TOKEN_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, core.Development, cfg.Env)
	assert.Equal(t, ":8443", cfg.Addr)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.TLS())
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "COIL_TOKEN_KEY=from-file\nCOIL_ENV=production\nCOIL_ADDR=:9000\nCOIL_TLS_CERT=c.pem\nCOIL_TLS_KEY=k.pem\nCOIL_REPORT_FONT=/fonts/DejaVuSans.ttf\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"COIL_TOKEN_KEY", "COIL_ENV", "COIL_ADDR", "COIL_TLS_CERT", "COIL_TLS_KEY", "COIL_REPORT_FONT"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TokenKey)
	assert.Equal(t, core.Production, cfg.Env)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.TLS())
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.ReportFont)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("COIL_TOKEN_KEY", "")
	os.Unsetenv("COIL_TOKEN_KEY")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
