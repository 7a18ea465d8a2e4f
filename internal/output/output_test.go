package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("imported %d files", 7)
	assert.Contains(t, out.String(), "imported 7 files")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("fetch failed for %s", "README.md")
	assert.Contains(t, errOut.String(), "fetch failed for README.md")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog(t *testing.T) {
	u, out, _ := newTestUI()
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())

	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestDryRunMsg(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRunMsg("would scaffold %s", "demo")
	assert.Empty(t, errOut.String())

	u.DryRun = true
	u.DryRunMsg("would scaffold %s", "demo")
	assert.Contains(t, errOut.String(), "[DRY-RUN]")
	assert.Contains(t, errOut.String(), "would scaffold demo")
}

func TestConsole(t *testing.T) {
	u, out, _ := newTestUI()
	u.Console("npm WARN deprecated")
	assert.Contains(t, out.String(), "npm WARN deprecated")
}
