package fat16

import (
	"testing"

	"github.com/aligator/fat16/internal/imagetest"
)

func testingOpen(t *testing.T, img *imagetest.Image) *Volume {
	t.Helper()
	v, err := Open(img.Reader())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return v
}

func testingSample(t *testing.T) *Volume {
	t.Helper()
	return testingOpen(t, imagetest.Sample())
}

func names(nodes []*EntryNode) []string {
	result := make([]string, len(nodes))
	for i, node := range nodes {
		result[i] = node.FormattedName()
	}
	return result
}
