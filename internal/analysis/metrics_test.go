package analysis

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// Not parallel: the collectors are package globals.

func TestCountAnalysisLabelsUnknownAction(t *testing.T) {
	InitMetrics()

	counter := analysesTotal.WithLabelValues("unknown", "invalid_action")
	before := testutil.ToFloat64(counter)

	countAnalysis("", "invalid_action")

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCountAnalysisKeepsParsedActionLabel(t *testing.T) {
	InitMetrics()

	counter := analysesTotal.WithLabelValues(string(ActionPOS), "ok")
	before := testutil.ToFloat64(counter)

	countAnalysis(ActionPOS, "ok")

	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
