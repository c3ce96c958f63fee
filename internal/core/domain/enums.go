package domain

// ManagementType - роль контакта в CRM.
type ManagementType string

const (
	ManagementBuyer         ManagementType = "comprador"
	ManagementTenant        ManagementType = "inquilino"
	ManagementSellerOwner   ManagementType = "propietario_venta"
	ManagementLandlordOwner ManagementType = "propietario_alquiler"
)

// ManagementTypes - все роли в порядке отображения на дашборде.
var ManagementTypes = []ManagementType{
	ManagementBuyer,
	ManagementTenant,
	ManagementSellerOwner,
	ManagementLandlordOwner,
}

func (m ManagementType) IsValid() bool {
	switch m {
	case ManagementBuyer, ManagementTenant, ManagementSellerOwner, ManagementLandlordOwner:
		return true
	}
	return false
}

// PropertyType - категория недвижимости, которую ищет контакт.
type PropertyType string

const (
	PropertyFlat      PropertyType = "piso"
	PropertyHouse     PropertyType = "chalet"
	PropertyPenthouse PropertyType = "atico"
	PropertyOffice    PropertyType = "oficina"
	PropertyLand      PropertyType = "terreno"
)

func (p PropertyType) IsValid() bool {
	switch p {
	case PropertyFlat, PropertyHouse, PropertyPenthouse, PropertyOffice, PropertyLand:
		return true
	}
	return false
}

// Preference - трехзначное пожелание по дополнительным удобствам (парковка, терраса и т.д.).
type Preference string

const (
	PreferenceYes         Preference = "si"
	PreferenceNo          Preference = "no"
	PreferenceIndifferent Preference = "indiferente"
)

func (p Preference) IsValid() bool {
	switch p {
	case PreferenceYes, PreferenceNo, PreferenceIndifferent:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyHigh   Urgency = "alta"
	UrgencyMedium Urgency = "media"
	UrgencyLow    Urgency = "baja"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyHigh, UrgencyMedium, UrgencyLow:
		return true
	}
	return false
}

type Intent string

const (
	IntentLive   Intent = "vivir"
	IntentInvest Intent = "invertir"
)

func (i Intent) IsValid() bool {
	return i == IntentLive || i == IntentInvest
}

type Usage string

const (
	UsageOwn    Usage = "propio"
	UsageFamily Usage = "familiar"
)

func (u Usage) IsValid() bool {
	return u == UsageOwn || u == UsageFamily
}

// Channel - канал, через который был сделан контакт с клиентом.
type Channel string

const (
	ChannelPhone    Channel = "phone"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
	ChannelInPerson Channel = "person"
)

func (c Channel) IsValid() bool {
	switch c {
	case ChannelPhone, ChannelWhatsApp, ChannelEmail, ChannelInPerson:
		return true
	}
	return false
}

// HistoryType различает заметки, добавленные вручную, и записи массовой рассылки.
type HistoryType string

const (
	HistoryManual     HistoryType = "manual"
	HistorySimulation HistoryType = "simulation"
)

func (h HistoryType) IsValid() bool {
	return h == HistoryManual || h == HistorySimulation
}

const DefaultLanguage = "es"
