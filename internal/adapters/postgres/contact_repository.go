package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// querier - общее у пула и транзакции.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresContactRepository - реализация ContactStorePort для PostgreSQL.
// Контакт хранится в трех таблицах: contacts, secondary_contacts и contact_history.
type PostgresContactRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresContactRepository(pool *pgxpool.Pool) (*PostgresContactRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresContactRepository{pool: pool}, nil
}

var _ port.ContactStorePort = (*PostgresContactRepository)(nil)

const selectContacts = `
SELECT c.id, c.name, c.phone, c.phone2, c.email, c.management_type, c.property_type,
       c.zones, c.zone, c.min_budget, c.max_budget, c.min_rooms, c.min_bathrooms,
       c.need_parking, c.need_terrace, c.need_garden, c.need_pool,
       c.urgency, c.intent, c.usage, c.language, c.notes, c.last_contact, c.registration_date,
       COALESCE(s.name, ''), COALESCE(s.phone, ''), COALESCE(s.email, ''), COALESCE(s.relation, '')
FROM contacts c
LEFT JOIN secondary_contacts s ON s.contact_id = c.id`

const selectHistory = `
SELECT h.id, h.contact_id, h.date, h.channel, h.note, h.feedback, h.type
FROM contact_history h`

func (r *PostgresContactRepository) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	l := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresContactRepository",
		"method":    method,
	})
	if len(fields) > 0 {
		l = l.WithFields(fields)
	}
	return l
}

// isInvalidText - 22P02 invalid_text_representation, например некорректный uuid.
func isInvalidText(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Phone2, &c.Email, &c.ManagementType, &c.Type,
		&c.Zones, &c.Zone, &c.MinBudget, &c.MaxBudget, &c.MinRooms, &c.MinBathrooms,
		&c.NeedParking, &c.NeedTerrace, &c.NeedGarden, &c.NeedPool,
		&c.Urgency, &c.Intent, &c.Usage, &c.Language, &c.Notes, &c.LastContact, &c.RegistrationDate,
		&c.Contact2.Name, &c.Contact2.Phone, &c.Contact2.Email, &c.Contact2.Relation,
	)
	if c.Zones == nil {
		c.Zones = []string{}
	}
	c.ContactHistory = []domain.HistoryEntry{}
	return c, err
}

func scanHistory(rows pgx.Rows) (string, domain.HistoryEntry, error) {
	var contactID string
	var h domain.HistoryEntry
	err := rows.Scan(&h.ID, &contactID, &h.Date, &h.Channel, &h.Note, &h.Feedback, &h.Type)
	return contactID, h, err
}

func (r *PostgresContactRepository) ListContacts(ctx context.Context, owner uuid.UUID) ([]domain.Contact, error) {
	repoLogger := r.logger(ctx, "ListContacts", port.Fields{"user_id": owner})

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly, IsoLevel: pgx.RepeatableRead})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := selectContacts + ` WHERE c.user_id = $1 ORDER BY c.seq`
	rows, err := tx.Query(ctx, query, owner)
	if err != nil {
		repoLogger.Error("Failed to query contacts", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}

	contacts := []domain.Contact{}
	index := make(map[string]int)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			rows.Close()
			repoLogger.Error("Failed to scan contact row", err, nil)
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.OwnerID = owner
		index[c.ID] = len(contacts)
		contacts = append(contacts, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during contacts iteration", err, nil)
		return nil, fmt.Errorf("error during contacts iteration: %w", err)
	}

	historyQuery := selectHistory + ` JOIN contacts c ON c.id = h.contact_id WHERE c.user_id = $1 ORDER BY h.seq`
	hrows, err := tx.Query(ctx, historyQuery, owner)
	if err != nil {
		repoLogger.Error("Failed to query history", err, port.Fields{"query": historyQuery})
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer hrows.Close()
	for hrows.Next() {
		contactID, h, err := scanHistory(hrows)
		if err != nil {
			repoLogger.Error("Failed to scan history row", err, nil)
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		if i, ok := index[contactID]; ok {
			contacts[i].ContactHistory = append(contacts[i].ContactHistory, h)
		}
	}
	if err := hrows.Err(); err != nil {
		repoLogger.Error("Error during history iteration", err, nil)
		return nil, fmt.Errorf("error during history iteration: %w", err)
	}

	repoLogger.Debug("Contacts loaded", port.Fields{"count": len(contacts)})
	return contacts, nil
}

func (r *PostgresContactRepository) GetContact(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error) {
	repoLogger := r.logger(ctx, "GetContact", port.Fields{"user_id": owner, "contact_id": id})
	return r.getContact(ctx, r.pool, repoLogger, owner, id)
}

func (r *PostgresContactRepository) getContact(ctx context.Context, q querier, repoLogger port.LoggerPort, owner uuid.UUID, id string) (*domain.Contact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrContactNotFound
	}

	c, err := scanContact(q.QueryRow(ctx, selectContacts+` WHERE c.id = $1 AND c.user_id = $2`, id, owner))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrContactNotFound
		}
		repoLogger.Error("Failed to query contact", err, nil)
		return nil, fmt.Errorf("failed to query contact: %w", err)
	}
	c.OwnerID = owner

	rows, err := q.Query(ctx, selectHistory+` WHERE h.contact_id = $1 ORDER BY h.seq`, id)
	if err != nil {
		repoLogger.Error("Failed to query history", err, nil)
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		_, h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		c.ContactHistory = append(c.ContactHistory, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during history iteration: %w", err)
	}
	return &c, nil
}

// queueInsertContact ставит в пакет вставку контакта со вторым контактом и историей.
// ID в c должны быть уже присвоены.
func queueInsertContact(batch *pgx.Batch, owner uuid.UUID, c domain.Contact) {
	batch.Queue(`
INSERT INTO contacts (id, user_id, name, phone, phone2, email, management_type, property_type,
	zones, zone, min_budget, max_budget, min_rooms, min_bathrooms,
	need_parking, need_terrace, need_garden, need_pool,
	urgency, intent, usage, language, notes, last_contact, registration_date)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		c.ID, owner, c.Name, c.Phone, c.Phone2, c.Email, string(c.ManagementType), string(c.Type),
		nonNilZones(c.Zones), c.Zone, c.MinBudget, c.MaxBudget, c.MinRooms, c.MinBathrooms,
		string(c.NeedParking), string(c.NeedTerrace), string(c.NeedGarden), string(c.NeedPool),
		string(c.Urgency), string(c.Intent), string(c.Usage), c.Language, c.Notes, c.LastContact, c.RegistrationDate,
	)
	if !c.Contact2.IsEmpty() {
		batch.Queue(`INSERT INTO secondary_contacts (contact_id, name, phone, email, relation) VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.Contact2.Name, c.Contact2.Phone, c.Contact2.Email, c.Contact2.Relation)
	}
	for _, h := range c.ContactHistory {
		queueInsertHistory(batch, c.ID, h)
	}
}

func queueInsertHistory(batch *pgx.Batch, contactID string, h domain.HistoryEntry) {
	batch.Queue(`INSERT INTO contact_history (id, contact_id, date, channel, note, feedback, type) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		h.ID, contactID, h.Date, string(h.Channel), h.Note, h.Feedback, string(h.Type))
}

func nonNilZones(zones []string) []string {
	if zones == nil {
		return []string{}
	}
	return zones
}

func (r *PostgresContactRepository) CreateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error) {
	repoLogger := r.logger(ctx, "CreateContact", port.Fields{"user_id": owner})

	c := contact.Clone()
	c.ID = uuid.NewString()
	c.OwnerID = owner
	for i := range c.ContactHistory {
		c.ContactHistory[i].ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	queueInsertContact(batch, owner, c)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		repoLogger.Error("Failed to insert contact", err, nil)
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Contact created", port.Fields{"contact_id": c.ID})
	return &c, nil
}

func (r *PostgresContactRepository) UpdateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) error {
	repoLogger := r.logger(ctx, "UpdateContact", port.Fields{"user_id": owner, "contact_id": contact.ID})
	if _, err := uuid.Parse(contact.ID); err != nil {
		return domain.ErrContactNotFound
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
UPDATE contacts SET
	name = $3, phone = $4, phone2 = $5, email = $6, management_type = $7, property_type = $8,
	zones = $9, zone = $10, min_budget = $11, max_budget = $12, min_rooms = $13, min_bathrooms = $14,
	need_parking = $15, need_terrace = $16, need_garden = $17, need_pool = $18,
	urgency = $19, intent = $20, usage = $21, language = $22, notes = $23,
	registration_date = COALESCE(NULLIF($24, ''), registration_date)
WHERE id = $1 AND user_id = $2`
	c := contact
	cmdTag, err := tx.Exec(ctx, query,
		c.ID, owner, c.Name, c.Phone, c.Phone2, c.Email, string(c.ManagementType), string(c.Type),
		nonNilZones(c.Zones), c.Zone, c.MinBudget, c.MaxBudget, c.MinRooms, c.MinBathrooms,
		string(c.NeedParking), string(c.NeedTerrace), string(c.NeedGarden), string(c.NeedPool),
		string(c.Urgency), string(c.Intent), string(c.Usage), c.Language, c.Notes, c.RegistrationDate,
	)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrContactNotFound
		}
		repoLogger.Error("Failed to update contact", err, nil)
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to update a contact that does not exist", nil)
		return domain.ErrContactNotFound
	}

	if c.Contact2.IsEmpty() {
		_, err = tx.Exec(ctx, `DELETE FROM secondary_contacts WHERE contact_id = $1`, c.ID)
	} else {
		_, err = tx.Exec(ctx, `
INSERT INTO secondary_contacts (contact_id, name, phone, email, relation) VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (contact_id) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone,
	email = EXCLUDED.email, relation = EXCLUDED.relation`,
			c.ID, c.Contact2.Name, c.Contact2.Phone, c.Contact2.Email, c.Contact2.Relation)
	}
	if err != nil {
		repoLogger.Error("Failed to save secondary contact", err, nil)
		return fmt.Errorf("failed to save secondary contact: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	repoLogger.Debug("Contact updated", nil)
	return nil
}

func (r *PostgresContactRepository) DeleteContact(ctx context.Context, owner uuid.UUID, id string) error {
	repoLogger := r.logger(ctx, "DeleteContact", port.Fields{"user_id": owner, "contact_id": id})
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrContactNotFound
	}

	// secondary_contacts и contact_history удаляются каскадно.
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrContactNotFound
		}
		repoLogger.Error("Failed to delete contact", err, nil)
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to delete a contact that does not exist", nil)
		return domain.ErrContactNotFound
	}
	repoLogger.Debug("Contact deleted", nil)
	return nil
}

// lockContact проверяет, что контакт принадлежит владельцу, и блокирует строку до конца транзакции.
func lockContact(ctx context.Context, tx pgx.Tx, owner uuid.UUID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrContactNotFound
	}
	var found string
	err := tx.QueryRow(ctx, `SELECT id FROM contacts WHERE id = $1 AND user_id = $2 FOR UPDATE`, id, owner).Scan(&found)
	if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
		return domain.ErrContactNotFound
	}
	return err
}

func (r *PostgresContactRepository) AddHistory(ctx context.Context, owner uuid.UUID, contactID string, entry domain.HistoryEntry) (*domain.HistoryEntry, error) {
	repoLogger := r.logger(ctx, "AddHistory", port.Fields{"user_id": owner, "contact_id": contactID})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockContact(ctx, tx, owner, contactID); err != nil {
		if !errors.Is(err, domain.ErrContactNotFound) {
			repoLogger.Error("Failed to lock contact", err, nil)
		}
		return nil, err
	}

	entry.ID = uuid.NewString()
	batch := &pgx.Batch{}
	queueInsertHistory(batch, contactID, entry)
	batch.Queue(`UPDATE contacts SET last_contact = $1 WHERE id = $2`, entry.Date, contactID)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		repoLogger.Error("Failed to insert history entry", err, nil)
		return nil, fmt.Errorf("failed to insert history entry: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("History entry added", port.Fields{"history_id": entry.ID})
	return &entry, nil
}

func (r *PostgresContactRepository) UpdateHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error) {
	repoLogger := r.logger(ctx, "UpdateHistory", port.Fields{"user_id": owner, "contact_id": contactID, "history_id": historyID})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockContact(ctx, tx, owner, contactID); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(historyID); err != nil {
		return nil, domain.ErrHistoryNotFound
	}

	var channel *string
	if patch.Channel != nil {
		s := string(*patch.Channel)
		channel = &s
	}

	var h domain.HistoryEntry
	err = tx.QueryRow(ctx, `
UPDATE contact_history SET
	note = COALESCE($1, note),
	feedback = COALESCE($2, feedback),
	channel = COALESCE($3, channel)
WHERE id = $4 AND contact_id = $5
RETURNING id, date, channel, note, feedback, type`,
		patch.Note, patch.Feedback, channel, historyID, contactID,
	).Scan(&h.ID, &h.Date, &h.Channel, &h.Note, &h.Feedback, &h.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		repoLogger.Error("Failed to update history entry", err, nil)
		return nil, fmt.Errorf("failed to update history entry: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE contacts SET last_contact = $1 WHERE id = $2`, h.Date, contactID); err != nil {
		repoLogger.Error("Failed to update last contact", err, nil)
		return nil, fmt.Errorf("failed to update last contact: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &h, nil
}

func (r *PostgresContactRepository) DeleteHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string) error {
	repoLogger := r.logger(ctx, "DeleteHistory", port.Fields{"user_id": owner, "contact_id": contactID, "history_id": historyID})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockContact(ctx, tx, owner, contactID); err != nil {
		return err
	}
	if _, err := uuid.Parse(historyID); err != nil {
		return domain.ErrHistoryNotFound
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM contact_history WHERE id = $1 AND contact_id = $2`, historyID, contactID)
	if err != nil {
		repoLogger.Error("Failed to delete history entry", err, nil)
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrHistoryNotFound
	}
	return tx.Commit(ctx)
}

func (r *PostgresContactRepository) RecordHistory(ctx context.Context, owner uuid.UUID, contactIDs []string, entry domain.HistoryEntry) (int, error) {
	repoLogger := r.logger(ctx, "RecordHistory", port.Fields{"user_id": owner, "requested": len(contactIDs)})

	for _, id := range contactIDs {
		if _, err := uuid.Parse(id); err != nil {
			return 0, fmt.Errorf("%w: %s", domain.ErrContactNotFound, id)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var found int
	err = tx.QueryRow(ctx, `
SELECT COUNT(*) FROM (
	SELECT id FROM contacts WHERE user_id = $1 AND id = ANY($2::uuid[]) FOR UPDATE
) locked`, owner, contactIDs).Scan(&found)
	if err != nil {
		repoLogger.Error("Failed to lock contacts", err, nil)
		return 0, fmt.Errorf("failed to lock contacts: %w", err)
	}
	if found != len(contactIDs) {
		repoLogger.Warn("Some contacts do not exist, nothing recorded", port.Fields{"found": found})
		return 0, domain.ErrContactNotFound
	}

	batch := &pgx.Batch{}
	for _, id := range contactIDs {
		e := entry
		e.ID = uuid.NewString()
		queueInsertHistory(batch, id, e)
	}
	batch.Queue(`UPDATE contacts SET last_contact = $1 WHERE user_id = $2 AND id = ANY($3::uuid[])`, entry.Date, owner, contactIDs)

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		repoLogger.Error("Failed to record history batch", err, nil)
		return 0, fmt.Errorf("failed to record history: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("History recorded", port.Fields{"contacts": len(contactIDs)})
	return len(contactIDs), nil
}

func (r *PostgresContactRepository) ReplaceAll(ctx context.Context, owner uuid.UUID, contacts []domain.Contact) error {
	repoLogger := r.logger(ctx, "ReplaceAll", port.Fields{"user_id": owner, "count": len(contacts)})

	replaced := domain.CloneContacts(contacts)
	seen := make(map[string]struct{}, len(replaced))
	for i := range replaced {
		c := &replaced[i]
		if _, err := uuid.Parse(c.ID); err != nil {
			c.ID = uuid.NewString()
		} else if _, dup := seen[c.ID]; dup {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = struct{}{}
		for j := range c.ContactHistory {
			// id истории могут совпадать между файлами разных владельцев, поэтому выдаем новые.
			c.ContactHistory[j].ID = uuid.NewString()
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM contacts WHERE user_id = $1`, owner); err != nil {
		repoLogger.Error("Failed to clear contacts", err, nil)
		return fmt.Errorf("failed to clear contacts: %w", err)
	}

	batch := &pgx.Batch{}
	for _, c := range replaced {
		queueInsertContact(batch, owner, c)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// id контакта уже занят другим владельцем.
			repoLogger.Warn("Imported contact id collides with another owner", port.Fields{"detail": pgErr.Detail})
			return fmt.Errorf("%w: duplicate contact id", domain.ErrInvalidSnapshot)
		}
		repoLogger.Error("Failed to insert contacts", err, nil)
		return fmt.Errorf("failed to insert contacts: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Info("Collection replaced", nil)
	return nil
}
