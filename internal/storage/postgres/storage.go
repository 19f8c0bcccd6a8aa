package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/errors"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/model"
	"github.com/dch2rfzbnb-cmyk/nano-crm/internal/domain/repository"
)

// DBPool is the subset of pgxpool.Pool the storage needs. Declared as an
// interface so tests can substitute a pgxmock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool    DBPool
	timeout time.Duration
	logger  *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type settingsRepository struct {
	storage *Storage
}

type userRepository struct {
	storage *Storage
}

// newPgxPool is replaceable in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (DBPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization. timeout bounds every
// repository call; an expired deadline surfaces as a transient store failure.
func New(ctx context.Context, dsn string, timeout time.Duration, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, timeout: timeout, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingsRepository {
	return &settingsRepository{storage: s}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            model TEXT NOT NULL DEFAULT '',
            price TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            contact_raw TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            customer_name TEXT NOT NULL DEFAULT '',
            comment TEXT NOT NULL DEFAULT '',
            manager_id BIGINT NOT NULL,
            manager_name TEXT NOT NULL DEFAULT '',
            chat_id BIGINT NOT NULL,
            message_id BIGINT NOT NULL,
            status TEXT NOT NULL DEFAULT 'new',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            reminder_at TIMESTAMPTZ,
            reminder_sent BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE TABLE IF NOT EXISTS order_comment_history (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            changed_at TIMESTAMPTZ NOT NULL,
            previous TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS settings (
            chat_id BIGINT PRIMARY KEY,
            daily_report_enabled BOOLEAN NOT NULL DEFAULT FALSE,
            report_chat_id BIGINT NOT NULL DEFAULT 0,
            last_report_date DATE
        )`,
		`CREATE TABLE IF NOT EXISTS authorized_users (
            user_id BIGINT PRIMARY KEY,
            authorized BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_chat ON orders(chat_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_origin ON orders(chat_id, message_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_reminder ON orders(reminder_at) WHERE reminder_sent = FALSE`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_comment_history(order_id, changed_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// opContext bounds a repository call with the storage timeout.
func (s *Storage) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// wrapErr converts expired deadlines into the transient store failure the
// callers know how to retry.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domainErrors.ErrStoreUnavailable, err)
	}
	return err
}

const orderColumns = `id, model, price, address, contact_raw, phone, customer_name, comment,
       manager_id, manager_name, chat_id, message_id, status,
       created_at, updated_at, reminder_at, reminder_sent`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.Model, &o.Price, &o.Address, &o.ContactRaw, &o.Phone, &o.CustomerName, &o.Comment,
		&o.ManagerID, &o.ManagerName, &o.ChatID, &o.MessageID, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.ReminderAt, &o.ReminderSent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, wrapErr(err)
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.Model, &o.Price, &o.Address, &o.ContactRaw, &o.Phone, &o.CustomerName, &o.Comment,
			&o.ManagerID, &o.ManagerName, &o.ChatID, &o.MessageID, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &o.ReminderAt, &o.ReminderSent,
		); err != nil {
			return nil, wrapErr(err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `INSERT INTO orders (
            model, price, address, contact_raw, phone, customer_name, comment,
            manager_id, manager_name, chat_id, message_id, status,
            created_at, updated_at, reminder_at, reminder_sent)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,FALSE)
        RETURNING id`

	err := r.storage.pool.QueryRow(ctx, query,
		order.Model, order.Price, order.Address, order.ContactRaw, order.Phone,
		order.CustomerName, order.Comment, order.ManagerID, order.ManagerName,
		order.ChatID, order.MessageID, order.Status,
		order.CreatedAt, order.UpdatedAt, order.ReminderAt,
	).Scan(&order.ID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	history, err := r.history(ctx, id)
	if err != nil {
		return nil, err
	}
	order.History = history
	return order, nil
}

func (r *orderRepository) history(ctx context.Context, orderID int64) ([]model.CommentRevision, error) {
	const query = `SELECT changed_at, previous FROM order_comment_history
                   WHERE order_id=$1 ORDER BY changed_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var history []model.CommentRevision
	for rows.Next() {
		var rev model.CommentRevision
		if err := rows.Scan(&rev.ChangedAt, &rev.Previous); err != nil {
			return nil, wrapErr(err)
		}
		history = append(history, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return history, nil
}

func (r *orderRepository) GetByOrigin(ctx context.Context, chatID, messageID int64) (*model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE chat_id=$1 AND message_id=$2`
	return scanOrder(r.storage.pool.QueryRow(ctx, query, chatID, messageID))
}

func (r *orderRepository) ListRecent(ctx context.Context, chatID int64, limit int) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE chat_id=$1
              ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, chatID, limit)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListByStatus(ctx context.Context, chatID int64, status model.OrderStatus, limit int) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE chat_id=$1 AND status=$2
              ORDER BY created_at DESC, id DESC LIMIT $3`
	rows, err := r.storage.pool.Query(ctx, query, chatID, status, limit)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListByChat(ctx context.Context, chatID int64) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders WHERE chat_id=$1
              ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListCreatedOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE chat_id=$1 AND created_at >= $2 AND created_at < $3
              ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, chatID, from, to)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListActiveOn(ctx context.Context, chatID int64, from, to time.Time) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE chat_id=$1
                AND ((created_at >= $2 AND created_at < $3) OR (updated_at >= $2 AND updated_at < $3))
                AND status NOT IN ('paid', 'canceled')
              ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, chatID, from, to)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) CountCreatedBy(ctx context.Context, managerID int64, from, to time.Time) (int, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `SELECT COUNT(*) FROM orders
                   WHERE manager_id=$1 AND created_at >= $2 AND created_at < $3`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, managerID, from, to).Scan(&count); err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}

func (r *orderRepository) ReplaceFields(ctx context.Context, id int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `UPDATE orders SET
            model=$1, price=$2, address=$3, contact_raw=$4, phone=$5,
            customer_name=$6, comment=$7, updated_at=$8,
            reminder_at=COALESCE($9, reminder_at),
            reminder_sent=CASE WHEN $9::timestamptz IS NULL THEN reminder_sent ELSE FALSE END
        WHERE id=$10`

	tag, err := r.storage.pool.Exec(ctx, query,
		fields.Model, fields.Price, fields.Address, fields.ContactRaw, fields.Phone,
		fields.CustomerName, fields.Comment, now, reminderAt, id,
	)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ReplaceFieldsByOrigin(ctx context.Context, chatID, messageID int64, fields model.OrderFields, reminderAt *time.Time, now time.Time) (int64, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `UPDATE orders SET
            model=$1, price=$2, address=$3, contact_raw=$4, phone=$5,
            customer_name=$6, comment=$7, updated_at=$8,
            reminder_at=COALESCE($9, reminder_at),
            reminder_sent=CASE WHEN $9::timestamptz IS NULL THEN reminder_sent ELSE FALSE END
        WHERE chat_id=$10 AND message_id=$11
        RETURNING id`

	var id int64
	err := r.storage.pool.QueryRow(ctx, query,
		fields.Model, fields.Price, fields.Address, fields.ContactRaw, fields.Phone,
		fields.CustomerName, fields.Comment, now, reminderAt, chatID, messageID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domainErrors.ErrNotFound
		}
		return 0, wrapErr(err)
	}
	return id, nil
}

// fieldColumns whitelists patchable columns; values never reach SQL text.
var fieldColumns = map[model.OrderField]string{
	model.FieldPrice:        "price",
	model.FieldAddress:      "address",
	model.FieldCustomerName: "customer_name",
	model.FieldPhone:        "phone",
}

func (r *orderRepository) UpdateField(ctx context.Context, id int64, field model.OrderField, value string, now time.Time) error {
	column, ok := fieldColumns[field]
	if !ok {
		return domainErrors.ErrInvalidField
	}

	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `UPDATE orders SET ` + column + `=$1, updated_at=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, value, now, id)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetStatus(ctx context.Context, id int64, status model.OrderStatus, now time.Time) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, now, id)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ReplaceComment(ctx context.Context, id int64, comment string, revision model.CommentRevision, reminderAt *time.Time, now time.Time) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE orders SET comment=$1, updated_at=$2,
                reminder_at=COALESCE($3, reminder_at),
                reminder_sent=CASE WHEN $3::timestamptz IS NULL THEN reminder_sent ELSE FALSE END
            WHERE id=$4`
		tag, err := tx.Exec(ctx, update, comment, now, reminderAt, id)
		if err != nil {
			return wrapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insert = `INSERT INTO order_comment_history (order_id, changed_at, previous)
                        VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insert, id, revision.ChangedAt, revision.Previous); err != nil {
			return wrapErr(err)
		}
		return nil
	})
}

func (r *orderRepository) DueReminders(ctx context.Context, deadline time.Time) ([]model.Order, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE reminder_at IS NOT NULL AND reminder_sent=FALSE AND reminder_at <= $1
              ORDER BY reminder_at, id`
	rows, err := r.storage.pool.Query(ctx, query, deadline)
	if err != nil {
		return nil, wrapErr(err)
	}
	return collectOrders(rows)
}

func (r *orderRepository) ClaimReminder(ct context.Context, id int64, dispatch func(model.Order) error) (bool, error) {
	ctx, cancel := r.storage.opContext(ct)
	defer cancel()

	claimed := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Conditional flip closes the race window between overlapping polls:
		// only one transaction observes reminder_sent=FALSE.
		query := `UPDATE orders SET reminder_sent=TRUE
                  WHERE id=$1 AND reminder_sent=FALSE
                  RETURNING ` + orderColumns
		order, err := scanOrder(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := dispatch(*order); err != nil {
			// Roll the claim back so the next poll retries the dispatch.
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return false, wrapErr(err)
	}
	return claimed, nil
}

// --- SettingsRepository implementation ---

func (r *settingsRepository) Get(ctx context.Context, chatID int64) (*model.ChatSettings, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `SELECT chat_id, daily_report_enabled, report_chat_id, last_report_date
                   FROM settings WHERE chat_id=$1`
	var s model.ChatSettings
	err := r.storage.pool.QueryRow(ctx, query, chatID).Scan(
		&s.ChatID, &s.DailyReportEnabled, &s.ReportChatID, &s.LastReportDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, wrapErr(err)
	}
	return &s, nil
}

func (r *settingsRepository) SetDailyReportEnabled(ctx context.Context, chatID int64, enabled bool) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `INSERT INTO settings (chat_id, daily_report_enabled)
                   VALUES ($1, $2)
                   ON CONFLICT (chat_id) DO UPDATE SET daily_report_enabled = EXCLUDED.daily_report_enabled`
	_, err := r.storage.pool.Exec(ctx, query, chatID, enabled)
	return wrapErr(err)
}

func (r *settingsRepository) SetReportChat(ctx context.Context, chatID, reportChatID int64) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `INSERT INTO settings (chat_id, report_chat_id)
                   VALUES ($1, $2)
                   ON CONFLICT (chat_id) DO UPDATE SET report_chat_id = EXCLUDED.report_chat_id`
	_, err := r.storage.pool.Exec(ctx, query, chatID, reportChatID)
	return wrapErr(err)
}

func (r *settingsRepository) ListReportEnabled(ctx context.Context) ([]model.ChatSettings, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `SELECT chat_id, daily_report_enabled, report_chat_id, last_report_date
                   FROM settings WHERE daily_report_enabled = TRUE`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var result []model.ChatSettings
	for rows.Next() {
		var s model.ChatSettings
		if err := rows.Scan(&s.ChatID, &s.DailyReportEnabled, &s.ReportChatID, &s.LastReportDate); err != nil {
			return nil, wrapErr(err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return result, nil
}

func (r *settingsRepository) ClaimDailyReport(ct context.Context, chatID int64, day time.Time, dispatch func() error) (bool, error) {
	ctx, cancel := r.storage.opContext(ct)
	defer cancel()

	claimed := false
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE settings SET last_report_date=$2
                       WHERE chat_id=$1 AND daily_report_enabled = TRUE
                         AND (last_report_date IS NULL OR last_report_date < $2)`
		tag, err := tx.Exec(ctx, query, chatID, day)
		if err != nil {
			return wrapErr(err)
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		if err := dispatch(); err != nil {
			return err
		}
		claimed = true
		return nil
	})
	if err != nil {
		return false, wrapErr(err)
	}
	return claimed, nil
}

// --- UserRepository implementation ---

func (r *userRepository) IsAuthorized(ctx context.Context, userID int64) (bool, error) {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `SELECT authorized FROM authorized_users WHERE user_id=$1`
	var authorized bool
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&authorized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, wrapErr(err)
	}
	return authorized, nil
}

func (r *userRepository) Authorize(ctx context.Context, userID int64) error {
	ctx, cancel := r.storage.opContext(ctx)
	defer cancel()

	const query = `INSERT INTO authorized_users (user_id, authorized)
                   VALUES ($1, TRUE)
                   ON CONFLICT (user_id) DO UPDATE SET authorized = TRUE`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return wrapErr(err)
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
