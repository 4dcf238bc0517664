package security

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a security event
// This is derived from EventType, NOT user-provided
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	// INFO - Normal operations
	EventValidationFailed:      SeverityINFO,
	EventDuplicateSubscription: SeverityINFO,
	EventDirectAccess:          SeverityINFO,

	// WARN - Potential abuse, monitor
	EventRateLimitTriggered: SeverityWARN,
	EventSpamDetected:       SeverityWARN,

	// HIGH - Automated submission
	EventHoneypotTriggered: SeverityHIGH,
}

// GetSeverity returns the severity for an event type. Unknown events are WARN.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityWARN
}

// zapLevel maps a severity onto the log level it is written at. HIGH stays
// at warn so client abuse never produces stack traces.
func (s Severity) zapLevel() zapcore.Level {
	if s == SeverityINFO {
		return zapcore.InfoLevel
	}
	return zapcore.WarnLevel
}
