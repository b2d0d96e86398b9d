package utils

import "time"

// Provider cost defaults, applied when the gateway does not report a price
const (
	// DefaultWhatsAppCost is charged per WhatsApp message without provider pricing
	DefaultWhatsAppCost = 0.0339

	// DefaultSMSCost is charged per SMS without provider pricing
	DefaultSMSCost = 0.0075

	// DefaultCallCost is the fixed per-call rate; the voice provider reports no per-call price
	DefaultCallCost = 0.238

	// DefaultEmailCost is a near-zero marginal cost placeholder
	DefaultEmailCost = 0.001
)

// Collection business rules
const (
	// OverdueThresholdDays separates overdue debts from charged-off ones at import time
	OverdueThresholdDays = 60

	// PaymentQuotaParts is the number of installments offered when a debtor confirms intent to pay
	PaymentQuotaParts = 3
)

// Scheduling defaults
const (
	// DefaultDrainInterval is how often the pending queue is drained
	DefaultDrainInterval = time.Hour

	// ScheduleCacheTTL bounds staleness of the redis-cached contact windows
	ScheduleCacheTTL = 5 * time.Minute
)

// DebtorNamePlaceholder is the literal token the agent prompt instructs the
// model to use wherever the debtor's name belongs.
const DebtorNamePlaceholder = "[Nombre del deudor]"
