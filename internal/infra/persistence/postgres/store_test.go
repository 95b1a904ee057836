package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"beamcore/pkg/domain"
)

var stubSeq uint64

// stubConn emulates the single experiment_lists table used by the store so
// the postgres paths can run without a server.
type stubConn struct {
	rows     map[string][]byte
	execs    []string
	failPing bool
	failExec bool
}

func newStubDB() (*sql.DB, *stubConn) {
	conn := &stubConn{rows: make(map[string][]byte)}
	name := fmt.Sprintf("stubpg%d", atomic.AddUint64(&stubSeq, 1))
	sql.Register(name, stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct{ conn *stubConn }

func (d stubDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("not implemented") }
func (c *stubConn) Close() error                        { return nil }
func (c *stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("not implemented") }

func (c *stubConn) Ping(context.Context) error {
	if c.failPing {
		return errors.New("ping fail")
	}
	return nil
}

func (c *stubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.execs = append(c.execs, query)
	if c.failExec {
		return nil, errors.New("exec fail")
	}
	upper := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(upper, "CREATE TABLE"):
		return driver.RowsAffected(0), nil
	case strings.HasPrefix(upper, "INSERT INTO"):
		id := args[0].Value.(string)
		payload := append([]byte(nil), args[1].Value.([]byte)...)
		c.rows[id] = payload
		return driver.RowsAffected(1), nil
	case strings.HasPrefix(upper, "DELETE FROM"):
		id := args[0].Value.(string)
		if _, ok := c.rows[id]; !ok {
			return driver.RowsAffected(0), nil
		}
		delete(c.rows, id)
		return driver.RowsAffected(1), nil
	}
	return nil, fmt.Errorf("unexpected exec: %s", query)
}

func (c *stubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	upper := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.Contains(upper, "SELECT PAYLOAD"):
		id := args[0].Value.(string)
		payload, ok := c.rows[id]
		if !ok {
			return &stubRows{cols: []string{"payload"}}, nil
		}
		return &stubRows{cols: []string{"payload"}, rows: [][]driver.Value{{payload}}}, nil
	case strings.Contains(upper, "SELECT ID"):
		ids := make([]string, 0, len(c.rows))
		for id := range c.rows {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([][]driver.Value, 0, len(ids))
		for _, id := range ids {
			out = append(out, []driver.Value{id})
		}
		return &stubRows{cols: []string{"id"}, rows: out}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	pos  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }
func (r *stubRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

func newStubStore(t *testing.T) (*Store, *stubConn) {
	t.Helper()
	db, conn := newStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreAppliesDDL(t *testing.T) {
	_, conn := newStubStore(t)
	var sawDDL bool
	for _, stmt := range conn.execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
		}
	}
	if !sawDDL {
		t.Fatalf("expected table DDL, got execs: %v", conn.execs)
	}
}

func TestStore_SaveLoadDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newStubStore(t)

	list := domain.NewExperimentList(domain.Experiment{Beam: &domain.Beam{Wavelength: 1.54}})
	snap, err := list.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := store.SaveList(ctx, "lst1", snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveList(ctx, "", snap); err == nil {
		t.Fatalf("expected empty id rejection")
	}

	loaded, ok, err := store.LoadList(ctx, "lst1")
	if err != nil || !ok {
		t.Fatalf("load: %v %v", ok, err)
	}
	if len(loaded.Beams) != 1 || loaded.Beams[0].Wavelength != 1.54 {
		t.Fatalf("unexpected snapshot %+v", loaded)
	}
	if _, ok, err := store.LoadList(ctx, "absent"); err != nil || ok {
		t.Fatalf("expected miss without error: %v %v", ok, err)
	}

	ids, err := store.ListIDs(ctx)
	if err != nil || len(ids) != 1 || ids[0] != "lst1" {
		t.Fatalf("list ids: %v %v", ids, err)
	}

	removed, err := store.DeleteList(ctx, "lst1")
	if err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	removed, err = store.DeleteList(ctx, "lst1")
	if err != nil || removed {
		t.Fatalf("second delete should report false")
	}
}

func TestNewStore_Failures(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("open fail") })
	if _, err := NewStore("dsn"); err == nil {
		t.Fatalf("expected open failure")
	}
	restore()

	db, conn := newStubDB()
	conn.failPing = true
	restore = OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(""); err == nil {
		t.Fatalf("expected ping failure")
	}
}
