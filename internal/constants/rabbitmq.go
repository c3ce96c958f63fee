package constants

// Обменник CRM
const (
	ExchangeCRM     = "crm_exchange"
	ExchangeTypeCRM = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyOutreachRecorded = "crm.outreach.recorded"
)

// Заголовки сообщений
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
	HeaderTraceID      = "x-trace-id"
)
