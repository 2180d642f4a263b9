package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	LoginsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "synthflow_logins_total",
		Help: "Total successful Google logins",
	})
	TokenRefreshesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "synthflow_token_refreshes_total",
		Help: "Total successful access-token refreshes",
	})
	LogoutsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "synthflow_logouts_total",
		Help: "Total logout requests",
	})
	WorkflowOpsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "synthflow_workflow_operations_total",
		Help: "Total workflow CRUD operations by kind",
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(LoginsCounter, TokenRefreshesCounter, LogoutsCounter, WorkflowOpsCounter)
}
