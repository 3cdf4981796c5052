package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
)

// DB defines the interface for database operations (satisfied by *sqlx.DB and *sqlx.Tx)
type DB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// SqliteRepository implements store.Repository
type SqliteRepository struct {
	db       *sqlx.DB // Required for starting new transactions
	executor DB       // Used for actual queries (can be *sqlx.DB or *sqlx.Tx)
}

func NewSqliteRepository(db *sqlx.DB) *SqliteRepository {
	return &SqliteRepository{
		db:       db,
		executor: db,
	}
}

func (r *SqliteRepository) Close() error {
	return r.db.Close()
}

func (r *SqliteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SqliteRepository) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	txRepo := &SqliteRepository{
		db:       r.db,
		executor: tx,
	}

	if err := fn(txRepo); err != nil {
		// attempt rollback, but prioritize original error
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SqliteRepository) Models() store.ModelRepository {
	return &modelRepo{db: r.executor}
}

func (r *SqliteRepository) Policies() store.PolicyRepository {
	return &policyRepo{db: r.executor}
}

func (r *SqliteRepository) RouteLogs() store.RouteLogRepository {
	return &routeLogRepo{db: r.executor}
}

type modelRepo struct {
	db DB
}

func (r *modelRepo) List(ctx context.Context) ([]model.Model, error) {
	var models []model.Model
	err := r.db.SelectContext(ctx, &models, `SELECT id, name, created_at FROM models ORDER BY id`)
	return models, err
}

func (r *modelRepo) Exists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM models WHERE name = ?`, name); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *modelRepo) Sync(ctx context.Context, names []string) error {
	for _, name := range names {
		if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO models (name) VALUES (?)`, name); err != nil {
			return err
		}
	}
	return nil
}

type policyRepo struct {
	db DB
}

const policyColumns = `id, model_name, regex_pattern, redirect_model, created_at`

func (r *policyRepo) List(ctx context.Context) ([]model.RoutingPolicy, error) {
	var policies []model.RoutingPolicy
	err := r.db.SelectContext(ctx, &policies, `SELECT `+policyColumns+` FROM routing_policies ORDER BY id`)
	return policies, err
}

func (r *policyRepo) ListForModel(ctx context.Context, modelName string) ([]model.RoutingPolicy, error) {
	var policies []model.RoutingPolicy
	query := `SELECT ` + policyColumns + ` FROM routing_policies WHERE model_name = ? ORDER BY id`
	err := r.db.SelectContext(ctx, &policies, query, modelName)
	return policies, err
}

func (r *policyRepo) Create(ctx context.Context, p *model.RoutingPolicy) (int64, error) {
	query := `
	INSERT INTO routing_policies (model_name, regex_pattern, redirect_model)
	VALUES (:model_name, :regex_pattern, :redirect_model)`
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

func (r *policyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routing_policies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNoRows
	}
	return nil
}

func (r *policyRepo) RedirectModels(ctx context.Context) ([]string, error) {
	var names []string
	query := `
		SELECT redirect_model
		FROM routing_policies
		GROUP BY redirect_model
		ORDER BY MIN(id)`
	err := r.db.SelectContext(ctx, &names, query)
	return names, err
}

type routeLogRepo struct {
	db DB
}

func (r *routeLogRepo) Log(ctx context.Context, log *model.RouteLog) error {
	query := `
	INSERT INTO route_logs (
		id, request_id, requested_provider, requested_model,
		resolved_provider, resolved_model, policy_id, has_file, outcome, created_at
	) VALUES (
		:id, :request_id, :requested_provider, :requested_model,
		:resolved_provider, :resolved_model, :policy_id, :has_file, :outcome, :created_at
	)`
	_, err := r.db.NamedExecContext(ctx, query, log)
	return err
}

func (r *routeLogRepo) Recent(ctx context.Context, limit int) ([]model.RouteLog, error) {
	var logs []model.RouteLog
	query := `SELECT * FROM route_logs ORDER BY created_at DESC LIMIT ?`
	err := r.db.SelectContext(ctx, &logs, query, limit)
	return logs, err
}
