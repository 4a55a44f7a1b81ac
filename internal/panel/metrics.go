package panel

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	roleMutations = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "rbac_role_mutations_total",
			Help: "Number of role table mutations, differentiated by operation.",
		},
		[]string{"op"},
	)

	activeWorkspaces = promauto.NewGauge( //nolint:gochecknoglobals
		prometheus.GaugeOpts{
			Name: "panel_workspaces",
			Help: "Number of session workspaces currently held in memory.",
		},
	)
)
