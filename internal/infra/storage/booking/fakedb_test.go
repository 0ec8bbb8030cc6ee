package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// fakeDB таблица bookings на уровне database/sql/driver.
// Понимает SELECT по id (в том числе FOR UPDATE) и UPDATE из buildUpdateQuery.
// Изменения транзакции видны только после Commit.
type fakeDB struct {
	mu        sync.Mutex
	rows      map[string][]driver.Value
	queries   []string
	commits   int
	rollbacks int
	execErr   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string][]driver.Value)}
}

// open возвращает *sql.DB поверх фейкового драйвера
func (f *fakeDB) open() *sql.DB {
	return sql.OpenDB(fakeConnector{db: f})
}

func (f *fakeDB) put(values []driver.Value) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[values[0].(string)] = values
}

func (f *fakeDB) column(id, name string) driver.Value {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range bookingColumns {
		if c == name {
			return f.rows[id][i]
		}
	}
	return nil
}

func (f *fakeDB) counters() (commits, rollbacks int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commits, f.rollbacks
}

func (f *fakeDB) executed(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, q := range f.queries {
		if strings.HasPrefix(q, prefix) {
			out = append(out, q)
		}
	}
	return out
}

type fakeConnector struct {
	db *fakeDB
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{db: c.db}, nil
}

func (c fakeConnector) Driver() driver.Driver { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("fakedb: use sql.OpenDB")
}

type fakeConn struct {
	db      *fakeDB
	pending map[string][]driver.Value
	inTx    bool
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("fakedb: prepared statements are not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *fakeConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	c.inTx = true
	c.pending = make(map[string][]driver.Value)
	return c, nil
}

func (c *fakeConn) Commit() error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	for id, values := range c.pending {
		c.db.rows[id] = values
	}
	c.db.commits++
	c.inTx, c.pending = false, nil
	return nil
}

func (c *fakeConn) Rollback() error {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.rollbacks++
	c.inTx, c.pending = false, nil
	return nil
}

func (c *fakeConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.queries = append(c.db.queries, query)

	if !strings.HasPrefix(query, "SELECT") || len(args) != 1 {
		return nil, fmt.Errorf("fakedb: unsupported query %q", query)
	}

	id, _ := args[0].Value.(string)
	rows := &fakeRows{}
	if values, ok := c.lookup(id); ok {
		rows.data = append(rows.data, append([]driver.Value(nil), values...))
	}
	return rows, nil
}

func (c *fakeConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.queries = append(c.db.queries, query)

	if c.db.execErr != nil {
		return nil, c.db.execErr
	}
	if !strings.HasPrefix(query, "UPDATE bookings") || len(args) != 7 {
		return nil, fmt.Errorf("fakedb: unsupported exec %q", query)
	}

	id, _ := args[6].Value.(string)
	values, ok := c.lookup(id)
	if !ok {
		return driver.RowsAffected(0), nil
	}

	updated := append([]driver.Value(nil), values...)
	set := map[string]driver.Value{
		"status":            args[0].Value,
		"confirmed_slot":    args[1].Value,
		"meet_link":         args[2].Value,
		"calendar_event_id": args[3].Value,
		"admin_notes":       args[4].Value,
		"updated_at":        args[5].Value,
	}
	for i, name := range bookingColumns {
		if v, ok := set[name]; ok {
			updated[i] = v
		}
	}

	if c.inTx {
		c.pending[id] = updated
	} else {
		c.db.rows[id] = updated
	}
	return driver.RowsAffected(1), nil
}

// lookup видит незакоммиченные изменения своей транзакции; вызывается под c.db.mu
func (c *fakeConn) lookup(id string) ([]driver.Value, bool) {
	if values, ok := c.pending[id]; ok {
		return values, true
	}
	values, ok := c.db.rows[id]
	return values, ok
}

type fakeRows struct {
	data [][]driver.Value
	pos  int
}

func (r *fakeRows) Columns() []string { return bookingColumns }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}
