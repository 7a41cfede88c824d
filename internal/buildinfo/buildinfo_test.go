package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrintBuildData_Defaults(t *testing.T) {
	var buf bytes.Buffer
	PrintBuildData(&buf)

	out := buf.String()
	require.Contains(t, out, "Build version: N/A")
	require.Contains(t, out, "Build date: N/A")
	require.Contains(t, out, "Build commit: N/A")
}

func TestPrintBuildData_Injected(t *testing.T) {
	oldVersion, oldDate, oldCommit := buildVersion, buildDate, buildCommit
	t.Cleanup(func() {
		buildVersion, buildDate, buildCommit = oldVersion, oldDate, oldCommit
	})

	buildVersion = "v1.2.3"
	buildDate = "2026-01-02"
	buildCommit = "abc123"

	var buf bytes.Buffer
	PrintBuildData(&buf)

	out := buf.String()
	require.Contains(t, out, "Build version: v1.2.3")
	require.Contains(t, out, "Build date: 2026-01-02")
	require.Contains(t, out, "Build commit: abc123")
}
