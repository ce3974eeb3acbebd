package events

import (
	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

// Publisher wraps the bus with typed constructors for the pipeline events.
type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) UsageReceived(userID, deviceClass string, records int) {
	event := models.NewEvent(models.EventTypeUsageReceived, userID, "Usage batch received").
		WithData(map[string]interface{}{
			"device_class": deviceClass,
			"records":      records,
		})
	p.publish(event)
}

func (p *Publisher) PredictionStarted(userID string) {
	event := models.NewEvent(models.EventTypePredictionStarted, userID, "Prediction started")
	p.publish(event)
}

func (p *Publisher) PredictionCompleted(userID string, prediction *models.Prediction) {
	msg := "Prediction complete: " + string(prediction.FatigueLevel)
	event := models.NewEvent(models.EventTypePredictionCompleted, userID, msg).
		WithData(prediction)

	if prediction.IsHighFatigue() {
		event.WithSeverity(models.SeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) DataQualityWarning(userID string, quality models.DataQuality) {
	event := models.NewEvent(models.EventTypeDataQualityWarning, userID, "Telemetry quality is "+quality.QualityLevel).
		WithSeverity(models.SeverityWarning).
		WithData(quality)
	p.publish(event)
}

func (p *Publisher) Alert(userID string, severity models.EventSeverity, message string, data interface{}) {
	event := models.NewEvent(models.EventTypeAlert, userID, message).
		WithSeverity(severity).
		WithData(data)
	p.publish(event)
}

func (p *Publisher) Error(userID string, message string, err error) {
	event := models.NewEvent(models.EventTypeError, userID, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
