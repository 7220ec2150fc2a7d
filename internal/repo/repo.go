package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

var ErrUserExists = errors.New("user already exists")

type UserRepository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
}

type CalculationRepository interface {
	SaveCalculation(ctx context.Context, c Calculation) error
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
}

// Calculation is one stored request/result pair of a coil tool.
type Calculation struct {
	ID        uuid.UUID       `json:"id"`
	UserID    int             `json:"-"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewCalculation(userID int, kind string, input, result any) (Calculation, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return Calculation{}, errors.Wrap(err, "marshal input")
	}
	out, err := json.Marshal(result)
	if err != nil {
		return Calculation{}, errors.Wrap(err, "marshal result")
	}
	return Calculation{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Input:     in,
		Result:    out,
		CreatedAt: time.Now().UTC(),
	}, nil
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Open connects to Postgres and checks the connection. sslmode=require is added
// unless the connection string sets its own.
func Open(connStr string) (*sql.DB, error) {
	if connStr == "" {
		connStr = "user=postgres dbname=postgres password=password sslmode=disable"
	}
	if !strings.Contains(connStr, "sslmode=") {
		if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
			sep := "?"
			if strings.Contains(connStr, "?") {
				sep = "&"
			}
			connStr = connStr + sep + "sslmode=require"
		} else {
			connStr = connStr + " sslmode=require"
		}
	}
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return db, nil
}

func (r *PostgresRepository) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS coil_calculations (
		id UUID PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		input JSONB NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS coil_calculations_user_created
		ON coil_calculations (user_id, created_at DESC);`
	_, err := r.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "migrate")
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrUserExists
		}
		return 0, errors.Wrap(err, "create user")
	}
	return id, nil
}

// GetByLogin returns id 0 and no error when the login is unknown.
func (r *PostgresRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", nil
		}
		return 0, "", errors.Wrap(err, "get user")
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, c Calculation) error {
	query := `INSERT INTO coil_calculations (id, user_id, kind, input, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.UserID, c.Kind, []byte(c.Input), []byte(c.Result), c.CreatedAt)
	return errors.Wrap(err, "save calculation")
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	query := `SELECT id, user_id, kind, input, result, created_at FROM coil_calculations
		WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list calculations")
	}
	defer rows.Close()

	out := []Calculation{}
	for rows.Next() {
		var c Calculation
		var in, res []byte
		if err := rows.Scan(&c.ID, &c.UserID, &c.Kind, &in, &res, &c.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan calculation")
		}
		c.Input = in
		c.Result = res
		out = append(out, c)
	}
	return out, errors.Wrap(rows.Err(), "list calculations")
}
