// Package metrics reports on saved creators and exports Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AngelCh415/creator-payout/internal/models"
	"github.com/AngelCh415/creator-payout/internal/store"
)

// Recorder implements store.Observer. A nil *Recorder records nothing.
type Recorder struct {
	estimates *prometheus.CounterVec
	mutations *prometheus.CounterVec
	leads     prometheus.Counter
}

var _ store.Observer = (*Recorder)(nil)

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creator_estimates_total",
			Help: "Funnel evaluations by campaign type.",
		}, []string{"campaign_type"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "creator_store_mutations_total",
			Help: "Persisted store mutations by operation and result.",
		}, []string{"op", "result"}),
		leads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "creator_leads_captured_total",
			Help: "Lead emails captured.",
		}),
	}
	reg.MustRegister(r.estimates, r.mutations, r.leads)
	return r
}

func (r *Recorder) ObserveEstimate(ct models.CampaignType) {
	if r == nil {
		return
	}
	r.estimates.WithLabelValues(string(models.ParseCampaignType(string(ct)))).Inc()
}

func (r *Recorder) ObserveMutation(op string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.mutations.WithLabelValues(op, result).Inc()
	if op == store.OpLeadCapture && err == nil {
		r.leads.Inc()
	}
}
