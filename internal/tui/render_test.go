package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/resviz/internal/engine"
)

func TestRenderRecordsTable(t *testing.T) {
	columns := []engine.Column{{Key: "Cost", Label: "Cost"}, {Key: "InstanceId", Label: "Instance ID"}}
	records := []engine.Record{
		{"Cost": 1.5, "InstanceId": "vm-a"},
		{"Cost": 2.0, "InstanceId": strings.Repeat("x", 40)},
	}

	out := RenderRecordsTable(columns, records, 21, 0)

	assert.Contains(t, out, "Instance ID")
	assert.Contains(t, out, "vm-a")
	assert.Contains(t, out, "21")
	assert.Contains(t, out, "22")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.Repeat("x", 40))
}

func TestRenderResourcesList(t *testing.T) {
	out := RenderResourcesList([]string{"VM", "Disk"})
	assert.Contains(t, out, "Resource Types")
	assert.Contains(t, out, "1. VM")
	assert.Contains(t, out, "2. Disk")

	assert.Contains(t, RenderResourcesList(nil), "No resource types")
}
