package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue gathers c through a private registry and returns the value of
// the series whose only label has the given value.
func counterValue(t *testing.T, c prometheus.Collector, label string) float64 {
	t.Helper()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(c))

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if pair.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	// Register should be safe to call multiple times
	Register()
	Register()

	assert.NotPanics(t, func() {
		ObserveHTTP("/api/pantries", http.MethodGet, http.StatusOK, 15*time.Millisecond)
		IncNotifierRun("success")
		IncRateLimited()
	})
}

func TestAddNotifications(t *testing.T) {
	before := counterValue(t, notificationsCreated, "expired")

	AddNotifications("expired", 3)
	AddNotifications("expired", 0)

	assert.Equal(t, before+3, counterValue(t, notificationsCreated, "expired"))
}

func TestIncRecipeCache(t *testing.T) {
	before := counterValue(t, recipeCache, "hit")

	IncRecipeCache("hit")

	assert.Equal(t, before+1, counterValue(t, recipeCache, "hit"))
}
