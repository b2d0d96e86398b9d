// Package businessflow contains the core business logic and use cases for collection communication workflows
package businessflow

// Fixed user-facing texts. The platform operates in Spanish-speaking
// markets; these strings are sent to debtors verbatim.
const (
	// FailedSendBody is recorded as the chat body when a provider send fails
	FailedSendBody = "No se pudo entregar el mensaje al destinatario."

	// AgentFallbackReply is sent whenever the collection agent cannot produce a verdict
	AgentFallbackReply = "Lo sentimos, en este momento no podemos atender su mensaje. Un asesor se comunicará con usted a la brevedad."

	// VoiceErrorReply is spoken when the voice flow fails anywhere; the
	// caller must always hear something rather than a dropped call
	VoiceErrorReply = "Ha ocurrido un error durante la llamada. Por favor intente nuevamente más tarde."
)

// System instructions prepended to every agent conversation.
const (
	legalContextInstruction = `Eres un agente virtual de cobranza que actúa en nombre de una empresa acreedora. ` +
		`Debes tratar al deudor con respeto en todo momento y cumplir la normativa de protección al consumidor: ` +
		`no amenazar, no divulgar la deuda a terceros, no contactar fuera de los horarios permitidos y ` +
		`identificarte como gestor de cobranza al inicio de la conversación. ` +
		`Tu objetivo es negociar el pago de la deuda y registrar el estado de la gestión.`

	voiceChannelInstruction = `Esta conversación ocurre por llamada de voz. Responde con frases cortas y claras, ` +
		`sin emojis, sin enlaces y sin formato; el texto será leído en voz alta por un sintetizador.`
)

// classifierPromptTemplate asks for the three-field JSON verdict. The model
// is told to use the literal name placeholder so the caller can substitute
// the real name before decoding.
const classifierPromptTemplate = `Datos de la deuda: %s
Mensaje del deudor: %s

Responde ÚNICAMENTE con un JSON con exactamente estos campos:
{"respuesta": "texto para enviar al deudor, usa [Nombre del deudor] donde corresponda su nombre", "accion": "resumen corto de la gestión", "estado": "uno de: NoContact, Contact, ContactedWithKnown, NotPaid, PartialPaid, PaymentAgreement, FinancedPayment, Paid"}`

// paymentIntentPrompt is the second, narrower question used to detect
// payment promises in the conversation so far.
const paymentIntentPrompt = `Analiza la conversación anterior y responde en una sola frase: ` +
	`¿el deudor confirmó el monto de su deuda, se negó a pagar, o solo confirmó su identidad? ` +
	`Si no ocurrió ninguna de las tres cosas responde "ninguna".`

// Keyword sets matched against the normalized (lower-cased, accent-stripped)
// payment-intent answer.
var (
	debtConfirmationKeywords = []string{"confirmo el monto", "confirma el monto", "acepta la deuda", "reconoce la deuda", "confirmo la deuda", "confirma la deuda"}
	noPaymentKeywords        = []string{"se niega a pagar", "se nego a pagar", "no va a pagar", "no pagara", "rechaza pagar"}
	identityKeywords         = []string{"confirmo su identidad", "confirma su identidad", "solo confirmo ser", "es la persona"}
)
