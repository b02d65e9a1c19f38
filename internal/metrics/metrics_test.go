package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSetSnapshot(t *testing.T) {
	SetSnapshot([]SectionCounts{
		{Section: "API Management", Running: 2, Stopped: 1},
		{Section: "Logic Apps", Running: 1},
	}, false)

	assert.Equal(t, float64(2), testutil.ToFloat64(sectionsLoaded))
	assert.Equal(t, float64(0), testutil.ToFloat64(fallbackActive))
	assert.Equal(t, float64(1), testutil.ToFloat64(resourcesLoaded.WithLabelValues("API Management", "stopped")))

	SetSnapshot([]SectionCounts{{Section: "API Management"}}, true)
	assert.Equal(t, float64(1), testutil.ToFloat64(fallbackActive))
	assert.Equal(t, 2, testutil.CollectAndCount(resourcesLoaded), "stale section labels are reset")
}

func TestRecordLoad(t *testing.T) {
	before := testutil.ToFloat64(loadsTotal.WithLabelValues("api", "fallback"))
	RecordLoad("api", "fallback", 0.01)
	assert.Equal(t, before+1, testutil.ToFloat64(loadsTotal.WithLabelValues("api", "fallback")))

	skipped := testutil.ToFloat64(rowsSkippedTotal)
	AddRowsSkipped(0)
	AddRowsSkipped(3)
	assert.Equal(t, skipped+3, testutil.ToFloat64(rowsSkippedTotal))
}
