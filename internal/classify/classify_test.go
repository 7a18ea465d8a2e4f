package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPort_FrameworkPhrase(t *testing.T) {
	port := DetectPort("  Local:   http://localhost:4321/")
	assert.Equal(t, 4321, port)
}

func TestDetectPort_GenericLocalhost(t *testing.T) {
	port := DetectPort("App available at http://localhost:5173")
	assert.Equal(t, 5173, port)
}

func TestDetectPort_ServerRunningOn(t *testing.T) {
	port := DetectPort("Server running on port 3000")
	assert.Equal(t, 3000, port)
}

func TestDetectPort_BareKnownPort(t *testing.T) {
	port := DetectPort("webpack serving content on 8080")
	assert.Equal(t, 8080, port)
}

func TestDetectPort_FrameworkBeatsGeneric(t *testing.T) {
	// Both forms present: the framework-specific phrasing wins.
	chunk := "proxying localhost:9999\n  Local: http://localhost:4321/"
	assert.Equal(t, 4321, DetectPort(chunk))
}

func TestDetectPort_RangeBounds(t *testing.T) {
	for _, tt := range []struct {
		port int
		want int
	}{
		{2999, 0},
		{3000, 3000},
		{9999, 9999},
		{10000, 0},
		{30001, 0},
		{54321, 0},
	} {
		chunk := fmt.Sprintf("Local: http://localhost:%d/", tt.port)
		assert.Equal(t, tt.want, DetectPort(chunk), chunk)
	}
}

func TestDetectPort_FiveDigitNumbersAreNotPorts(t *testing.T) {
	// A longer number must not be read by its first four digits.
	assert.Equal(t, 0, DetectPort("Server listening on port 54321"))
	assert.Equal(t, 0, DetectPort("listening on localhost:30001"))
	assert.Equal(t, 0, DetectPort("server started at http://127.0.0.1:31337"))
}

func TestDetectPort_NoPort(t *testing.T) {
	assert.Equal(t, 0, DetectPort("compiling..."))
	assert.Equal(t, 0, DetectPort(""))
}

func TestIsReady(t *testing.T) {
	assert.True(t, IsReady("  VITE v5.0  ready in 320 ms"))
	assert.True(t, IsReady("Compiled Successfully in 1.2s"))
	assert.True(t, IsReady("Server running at http://localhost:3000"))
	assert.False(t, IsReady("installing dependencies..."))
	assert.False(t, IsReady(""))
}

func TestIsError(t *testing.T) {
	assert.True(t, IsError("Error: listen EADDRINUSE"))
	assert.True(t, IsError("npm ERR! code ENOENT"))
	assert.True(t, IsError("sh: vite: command not found"))
	assert.True(t, IsError("Build FAILED"))
	assert.False(t, IsError("all good"))
}

func TestClassify_SignalsAreIndependent(t *testing.T) {
	// A chunk carrying both an error phrase and a port reports both.
	sig := Classify("Error: something broke at http://localhost:3000")
	assert.True(t, sig.Error)
	assert.Equal(t, 3000, sig.Port)
}

func TestClassify_LocalURLOnly(t *testing.T) {
	sig := Classify("Local: http://localhost:4321/")
	assert.Equal(t, 4321, sig.Port)
	assert.True(t, sig.HasPort())
	assert.False(t, sig.Ready)
	assert.False(t, sig.Error)
}

func TestClassify_EmptyInput(t *testing.T) {
	assert.Equal(t, Signal{}, Classify(""))
}

func TestClassify_Idempotent(t *testing.T) {
	chunk := "ready in 500ms, Local: http://localhost:5173/"
	assert.Equal(t, Classify(chunk), Classify(chunk))
}
