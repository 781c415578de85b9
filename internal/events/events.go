// Package events publishes alert events to a NATS subject so downstream
// workers can react to them. Publishing is optional: when no broker is
// configured a no-op publisher is used and alert creation proceeds normally.
package events

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/wildtrack/wildtrack/pkg/errors"
	"github.com/wildtrack/wildtrack/pkg/logging"
	"github.com/wildtrack/wildtrack/pkg/models"
)

// SubjectAlerts is the NATS subject alert events are published on.
const SubjectAlerts = "alerts"

// Publisher publishes alert events.
type Publisher interface {
	PublishAlert(alert models.Alert) error
	Close()
}

// NATSPublisher publishes alerts to a NATS broker.
type NATSPublisher struct {
	conn *nats.Conn
}

// ConnectNATS connects to the broker at the given URL.
func ConnectNATS(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, &errors.PublishError{Subject: SubjectAlerts, Err: err}
	}

	logging.Info().Str("url", url).Msg("Connected to NATS")
	return &NATSPublisher{conn: nc}, nil
}

// PublishAlert publishes the alert as JSON on the alerts subject.
func (p *NATSPublisher) PublishAlert(alert models.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return &errors.PublishError{Subject: SubjectAlerts, Err: err}
	}
	if err := p.conn.Publish(SubjectAlerts, data); err != nil {
		return &errors.PublishError{Subject: SubjectAlerts, Err: err}
	}
	return nil
}

// Close drains and closes the connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}

// NopPublisher discards all events. Used when NATS_URL is not configured.
type NopPublisher struct{}

// PublishAlert discards the alert.
func (NopPublisher) PublishAlert(models.Alert) error { return nil }

// Close is a no-op.
func (NopPublisher) Close() {}

// New returns a NATS publisher when url is set, otherwise a no-op publisher.
// A broker connection failure degrades to the no-op publisher with a
// warning rather than failing startup.
func New(url string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	pub, err := ConnectNATS(url)
	if err != nil {
		logging.Warn().Err(err).Str("url", url).Msg("NATS unavailable, alert events disabled")
		return NopPublisher{}
	}
	return pub
}
