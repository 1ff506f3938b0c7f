package security

// Severity represents the severity level of a security event.
// It is derived from EventType, never user-provided.
type Severity string

const (
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventValidationFailed:   SeverityWARN,
	EventVerificationFailed: SeverityWARN,
	EventUploadRejected:     SeverityWARN,
	EventRateLimitTriggered: SeverityHIGH,
	EventServerError:        SeverityMEDIUM,
}

// GetSeverity returns the severity for an event type.
// Unmapped event types default to MEDIUM.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}
