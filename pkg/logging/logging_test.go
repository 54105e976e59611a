package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("loud"))
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	SetWriter(&buf)
	defer SetWriter(zerolog.ConsoleWriter{Out: &bytes.Buffer{}})

	Configure("info")
	defer Configure("error")

	l := Component("render")
	l.Debug().Msg("hidden")
	l.Info().Msg("rebuilt drawers")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "rebuilt drawers")
	assert.Contains(t, buf.String(), `"component":"render"`)
}
