package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportBaseName(t *testing.T) {
	assert.Equal(t, "Project_Schedule", exportBaseName("Project Schedule"))
	assert.Equal(t, "Q3_Launch", exportBaseName("  Q3 Launch! "))
	assert.Equal(t, "schedule", exportBaseName(""))
	assert.Equal(t, "schedule", exportBaseName("///"))
	assert.Equal(t, "plan-2026_v2", exportBaseName("plan-2026 v2"))
}
