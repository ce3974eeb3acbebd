package websocket

import (
	"encoding/json"
	"time"

	"github.com/OldStager01/fatigue-monitor/pkg/models"
)

type MessageType string

const (
	MessageTypePrediction  MessageType = "prediction"
	MessageTypeAlert       MessageType = "alert"
	MessageTypeUsageUpdate MessageType = "usage_update"
	MessageTypeDataQuality MessageType = "data_quality"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, userID string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		UserID:    userID,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

type PredictionData struct {
	FatigueScore     float64 `json:"fatigue_score"`
	FatigueLevel     string  `json:"fatigue_level"`
	ProductivityLoss float64 `json:"productivity_loss"`
	Confidence       float64 `json:"confidence"`
}

type AlertData struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type UsageUpdateData struct {
	DeviceClass string `json:"device_class"`
	Records     int    `json:"records"`
}

func BroadcastPrediction(hub *Hub, prediction *models.Prediction) {
	data := PredictionData{
		FatigueScore:     prediction.FatigueScore,
		FatigueLevel:     string(prediction.FatigueLevel),
		ProductivityLoss: prediction.ProductivityLoss,
		Confidence:       prediction.Confidence,
	}
	msg := NewMessage(MessageTypePrediction, prediction.UserID, data)
	hub.BroadcastToUser(prediction.UserID, msg.JSON())
}

func BroadcastAlert(hub *Hub, userID string, severity, message string) {
	data := AlertData{
		Severity: severity,
		Message:  message,
	}
	msg := NewMessage(MessageTypeAlert, userID, data)
	hub.BroadcastToUser(userID, msg.JSON())
}

func BroadcastUsageUpdate(hub *Hub, userID, deviceClass string, records int) {
	data := UsageUpdateData{
		DeviceClass: deviceClass,
		Records:     records,
	}
	msg := NewMessage(MessageTypeUsageUpdate, userID, data)
	hub.BroadcastToUser(userID, msg.JSON())
}
