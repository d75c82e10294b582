package tui

import (
	"context"
	"testing"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/require"

	"pdfsmaller/internal/uploader"
	"pdfsmaller/pkg/testutils"
	"pdfsmaller/pkg/types"
)

// TestUploadFlowRendering walks a full session through the rendered view:
// switch to batch, add files, hit the single-mode truncation on the way
// back.
func TestUploadFlowRendering(t *testing.T) {
	m, up := newTestModel(t)

	up.SetFocus(uploader.FocusToggle)
	m.Update(key(" "))
	require.Equal(t, types.Batch, up.Mode())

	require.True(t, up.SelectFiles(context.Background(), []*types.FileRef{
		testutils.PDFRef("january.pdf", 1024),
		testutils.PDFRef("february.pdf", 2048),
	}))
	m.sync()

	cleanOutput := testutils.StripANSI(m.View())
	alsrt.Contains(t, cleanOutput, "january.pdf")
	alsrt.Contains(t, cleanOutput, "february.pdf")
	alsrt.Contains(t, cleanOutput, "2 file(s)")

	// Back to single: only the first file survives.
	m.Update(key(" "))
	require.Equal(t, types.Single, up.Mode())
	m.sync()

	cleanOutput = testutils.StripANSI(m.View())
	alsrt.Contains(t, cleanOutput, "january.pdf")
	alsrt.NotContains(t, cleanOutput, "february.pdf")
}
