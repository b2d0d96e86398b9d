package dto

// InboundMessageRequest is one inbound reply delivered by a messaging
// webhook. From/To arrive with the provider's envelope prefixes still
// attached ("whatsapp:+51...", "+51...").
type InboundMessageRequest struct {
	From      string `json:"From" form:"From" validate:"required"`
	To        string `json:"To" form:"To" validate:"required"`
	Body      string `json:"Body" form:"Body"`
	MediaURL  string `json:"MediaUrl0" form:"MediaUrl0"`
	MediaMime string `json:"MediaContentType0" form:"MediaContentType0"`
}

// InboundVoiceRequest is one speech-recognition result from the voice
// gateway during an active call.
type InboundVoiceRequest struct {
	From         string `json:"From" form:"From" validate:"required"`
	To           string `json:"To" form:"To" validate:"required"`
	SpeechResult string `json:"SpeechResult" form:"SpeechResult"`
	CallSID      string `json:"CallSid" form:"CallSid"`
}
