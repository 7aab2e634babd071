package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	billsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_bills_generated_total",
			Help: "Total number of bills generated",
		},
	)

	emailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_emails_sent_total",
			Help: "Total number of notification emails sent successfully",
		},
		[]string{"type"},
	)

	emailsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_emails_failed_total",
			Help: "Total number of notification emails that failed to send",
		},
		[]string{"type"},
	)

	emailSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "billing_email_send_duration_seconds",
			Help:    "Email sending duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
)

// RecordBillGenerated increments the generated-bills counter
func RecordBillGenerated() {
	billsGeneratedTotal.Inc()
}

// RecordEmailSent records a successful email send
func RecordEmailSent(emailType string, duration time.Duration) {
	emailsSentTotal.WithLabelValues(emailType).Inc()
	emailSendDuration.Observe(duration.Seconds())
}

// RecordEmailFailed records a failed email send
func RecordEmailFailed(emailType string) {
	emailsFailedTotal.WithLabelValues(emailType).Inc()
}
