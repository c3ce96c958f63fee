package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout - формат даты регистрации контакта.
const DateLayout = "2006-01-02"

// ZoneSeparator используется для устаревшего поля zone.
const ZoneSeparator = ", "

// SecondaryContact - дополнительное контактное лицо (супруг, родственник и т.д.).
type SecondaryContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Relation string `json:"relation"`
}

func (s SecondaryContact) IsEmpty() bool {
	return strings.TrimSpace(s.Name) == ""
}

// HistoryEntry - одно действие по контакту и, возможно, ответ клиента.
type HistoryEntry struct {
	ID       string      `json:"id"`
	Date     time.Time   `json:"date"`
	Channel  Channel     `json:"channel"`
	Note     string      `json:"note"`
	Feedback string      `json:"feedback"`
	Type     HistoryType `json:"type"`
}

// Contact - покупатель, арендатор или владелец, которого ведет агент.
type Contact struct {
	ID      string    `json:"id"`
	OwnerID uuid.UUID `json:"-"`

	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Phone2 string `json:"phone2,omitempty"`
	Email  string `json:"email,omitempty"`

	ManagementType ManagementType `json:"managementType"`
	Type           PropertyType   `json:"type"`

	Zones        []string `json:"zones"`
	Zone         string   `json:"zone"`
	MinBudget    float64  `json:"minBudget"`
	MaxBudget    float64  `json:"maxBudget"`
	MinRooms     int      `json:"minRooms"`
	MinBathrooms int      `json:"minBathrooms"`

	NeedParking Preference `json:"needParking"`
	NeedTerrace Preference `json:"needTerrace"`
	NeedGarden  Preference `json:"needGarden"`
	NeedPool    Preference `json:"needPool"`

	Urgency  Urgency `json:"urgency"`
	Intent   Intent  `json:"intent"`
	Usage    Usage   `json:"usage"`
	Language string  `json:"language"`
	Notes    string  `json:"notes"`

	LastContact      *time.Time `json:"lastContact"`
	RegistrationDate string     `json:"registrationDate"`

	Contact2       SecondaryContact `json:"contact2"`
	ContactHistory []HistoryEntry   `json:"contactHistory"`
}

// SyncLegacyZone поддерживает поле zone в соответствии со списком zones.
func (c *Contact) SyncLegacyZone() {
	if len(c.Zones) > 0 {
		c.Zone = strings.Join(c.Zones, ZoneSeparator)
	}
}

// ApplyCreateDefaults заполняет значения по умолчанию для нового контакта.
// Незаданные удобства при создании считаются "no".
func (c *Contact) ApplyCreateDefaults(today time.Time) {
	c.NeedParking = defaultPreference(c.NeedParking, PreferenceNo)
	c.NeedTerrace = defaultPreference(c.NeedTerrace, PreferenceNo)
	c.NeedGarden = defaultPreference(c.NeedGarden, PreferenceNo)
	c.NeedPool = defaultPreference(c.NeedPool, PreferenceNo)

	if c.ManagementType == "" {
		c.ManagementType = ManagementBuyer
	}
	if c.Type == "" {
		c.Type = PropertyFlat
	}
	if c.Urgency == "" {
		c.Urgency = UrgencyMedium
	}
	if c.Intent == "" {
		c.Intent = IntentLive
	}
	if c.Usage == "" {
		c.Usage = UsageOwn
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.RegistrationDate == "" {
		c.RegistrationDate = today.Format(DateLayout)
	}
	if c.Zones == nil {
		c.Zones = []string{}
	}
	if c.ContactHistory == nil {
		c.ContactHistory = []HistoryEntry{}
	}
	// У нового контакта zone всегда выводится из zones.
	if len(c.Zones) == 0 {
		c.Zone = ""
	}
	c.SyncLegacyZone()
}

// ApplyEditDefaults нормализует существующий контакт перед сохранением.
// Старые записи без удобств считаются "indiferente", старое поле zone переносится в zones.
func (c *Contact) ApplyEditDefaults() {
	c.NeedParking = defaultPreference(c.NeedParking, PreferenceIndifferent)
	c.NeedTerrace = defaultPreference(c.NeedTerrace, PreferenceIndifferent)
	c.NeedGarden = defaultPreference(c.NeedGarden, PreferenceIndifferent)
	c.NeedPool = defaultPreference(c.NeedPool, PreferenceIndifferent)

	if len(c.Zones) == 0 && strings.TrimSpace(c.Zone) != "" {
		c.Zones = []string{c.Zone}
	}
	if c.Zones == nil {
		c.Zones = []string{}
	}
	c.SyncLegacyZone()
}

func defaultPreference(p, def Preference) Preference {
	if p == "" {
		return def
	}
	return p
}

// Validate проверяет обязательные поля и значения перечислений.
// Пустые перечисления допустимы: они встречаются в старых записях.
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}

	checks := []struct {
		field string
		value string
		ok    bool
	}{
		{"managementType", string(c.ManagementType), c.ManagementType.IsValid()},
		{"type", string(c.Type), c.Type.IsValid()},
		{"needParking", string(c.NeedParking), c.NeedParking.IsValid()},
		{"needTerrace", string(c.NeedTerrace), c.NeedTerrace.IsValid()},
		{"needGarden", string(c.NeedGarden), c.NeedGarden.IsValid()},
		{"needPool", string(c.NeedPool), c.NeedPool.IsValid()},
		{"urgency", string(c.Urgency), c.Urgency.IsValid()},
		{"intent", string(c.Intent), c.Intent.IsValid()},
		{"usage", string(c.Usage), c.Usage.IsValid()},
	}
	for _, ch := range checks {
		if ch.value != "" && !ch.ok {
			return fmt.Errorf("%w: %s %q", ErrInvalidField, ch.field, ch.value)
		}
	}

	if c.MinBudget < 0 || c.MaxBudget < 0 {
		return fmt.Errorf("%w: budget must be non-negative", ErrInvalidField)
	}
	if c.MinRooms < 0 || c.MinBathrooms < 0 {
		return fmt.Errorf("%w: rooms and bathrooms must be non-negative", ErrInvalidField)
	}
	if c.RegistrationDate != "" {
		if _, err := time.Parse(DateLayout, c.RegistrationDate); err != nil {
			return fmt.Errorf("%w: registrationDate %q", ErrInvalidField, c.RegistrationDate)
		}
	}

	for _, h := range c.ContactHistory {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (h HistoryEntry) Validate() error {
	if h.Channel != "" && !h.Channel.IsValid() {
		return fmt.Errorf("%w: channel %q", ErrInvalidField, h.Channel)
	}
	if h.Type != "" && !h.Type.IsValid() {
		return fmt.Errorf("%w: history type %q", ErrInvalidField, h.Type)
	}
	return nil
}

// AppendHistory добавляет запись в конец истории и обновляет lastContact.
func (c *Contact) AppendHistory(entry HistoryEntry) {
	c.ContactHistory = append(c.ContactHistory, entry)
	date := entry.Date
	c.LastContact = &date
}

func (c *Contact) historyIndex(historyID string) int {
	for i := range c.ContactHistory {
		if c.ContactHistory[i].ID == historyID {
			return i
		}
	}
	return -1
}

// EditHistory меняет заметку, ответ клиента и канал записи на месте.
// lastContact выставляется в дату отредактированной записи.
func (c *Contact) EditHistory(historyID string, patch HistoryPatch) (HistoryEntry, error) {
	i := c.historyIndex(historyID)
	if i < 0 {
		return HistoryEntry{}, ErrHistoryNotFound
	}
	entry := &c.ContactHistory[i]
	patch.ApplyTo(entry)
	date := entry.Date
	c.LastContact = &date
	return *entry, nil
}

// RemoveHistory удаляет одну запись. lastContact не пересчитывается.
func (c *Contact) RemoveHistory(historyID string) error {
	i := c.historyIndex(historyID)
	if i < 0 {
		return ErrHistoryNotFound
	}
	c.ContactHistory = append(c.ContactHistory[:i], c.ContactHistory[i+1:]...)
	return nil
}

// HistoryPatch - редактируемые поля записи истории. nil означает "не менять".
type HistoryPatch struct {
	Note     *string  `json:"note"`
	Feedback *string  `json:"feedback"`
	Channel  *Channel `json:"channel"`
}

func (p HistoryPatch) ApplyTo(entry *HistoryEntry) {
	if p.Note != nil {
		entry.Note = *p.Note
	}
	if p.Feedback != nil {
		entry.Feedback = *p.Feedback
	}
	if p.Channel != nil {
		entry.Channel = *p.Channel
	}
}

func (p HistoryPatch) Validate() error {
	if p.Channel != nil && !p.Channel.IsValid() {
		return fmt.Errorf("%w: channel %q", ErrInvalidField, *p.Channel)
	}
	return nil
}

// Clone возвращает глубокую копию контакта.
func (c Contact) Clone() Contact {
	out := c
	if c.Zones != nil {
		out.Zones = append([]string{}, c.Zones...)
	}
	if c.ContactHistory != nil {
		out.ContactHistory = append([]HistoryEntry{}, c.ContactHistory...)
	}
	if c.LastContact != nil {
		t := *c.LastContact
		out.LastContact = &t
	}
	return out
}

// CloneContacts копирует коллекцию целиком.
func CloneContacts(in []Contact) []Contact {
	out := make([]Contact, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}
