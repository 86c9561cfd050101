package newsletter

// DeliveryStatus is the outcome of sending to one recipient.
type DeliveryStatus string

// Delivery status values.
const (
	StatusSent   DeliveryStatus = "sent"
	StatusFailed DeliveryStatus = "failed"
)

// Delivery is the outcome of one recipient in a broadcast.
type Delivery struct {
	email  string
	status DeliveryStatus
	err    error
}

// NewSent creates a successful delivery.
func NewSent(email string) Delivery { return Delivery{email: email, status: StatusSent} }

// NewFailed creates a failed delivery.
func NewFailed(email string, err error) Delivery {
	return Delivery{email: email, status: StatusFailed, err: err}
}

// Email returns the recipient address.
func (d Delivery) Email() string { return d.email }

// Status returns the outcome.
func (d Delivery) Status() DeliveryStatus { return d.status }

// Err returns the send error, if any.
func (d Delivery) Err() error { return d.err }

// Failure is one failed recipient in a report.
type Failure struct {
	Email string
	Error string
}

// Report aggregates a broadcast. Total is SuccessCount + FailedCount.
type Report struct {
	Total        int
	SuccessCount int
	FailedCount  int
	Errors       []Failure
}

// Summarize folds deliveries into a report, keeping failures in send order.
func Summarize(deliveries []Delivery) Report {
	r := Report{Total: len(deliveries), Errors: []Failure{}}
	for _, d := range deliveries {
		if d.status == StatusSent {
			r.SuccessCount++
			continue
		}
		r.FailedCount++
		msg := "unknown error"
		if d.err != nil {
			msg = d.err.Error()
		}
		r.Errors = append(r.Errors, Failure{Email: d.email, Error: msg})
	}
	return r
}
