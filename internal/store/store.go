package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dragboard/internal/logging"
	"dragboard/internal/model"

	"github.com/sirupsen/logrus"
)

const (
	dirName      = ".dragboard"
	dbFileName   = "board.sqlite"
	titleMaxRune = 200
)

type Store struct {
	Dir string

	db  *sql.DB
	log *logrus.Entry
	now func() time.Time
}

// DiscoverDir walks up from start looking for a .dragboard directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir is the discovered .dragboard directory, or ./.dragboard.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

// Open creates dir when needed and opens its board database. log may be nil.
func Open(ctx context.Context, dir string, log *logrus.Entry) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("missing board dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := openSQLite(ctx, filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open board in %s: %w", dir, err)
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Store{
		Dir: dir,
		db:  db,
		log: log.WithField("component", "store"),
		now: time.Now,
	}, nil
}

// Path is the board database file.
func (s *Store) Path() string { return filepath.Join(s.Dir, dbFileName) }

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Lists returns every list in board order.
func (s *Store) Lists(ctx context.Context) ([]model.List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, kind, locked, expanded, rank, created_at_unixms FROM lists`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.List
	for rows.Next() {
		var (
			l                model.List
			kind             string
			locked, expanded int
			created          int64
		)
		if err := rows.Scan(&l.ID, &l.Title, &kind, &locked, &expanded, &l.Rank, &created); err != nil {
			return nil, err
		}
		l.Kind = model.ListKind(kind)
		l.Locked = locked != 0
		l.Expanded = expanded != 0
		l.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortByEntry(out, listEntry)
	return out, nil
}

// Cards returns every card ordered by rank. Board groups them per list.
func (s *Store) Cards(ctx context.Context) ([]model.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, list_id, title, description, locked, rank, created_at_unixms FROM cards`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Card
	for rows.Next() {
		var (
			c       model.Card
			locked  int
			created int64
		)
		if err := rows.Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &locked, &c.Rank, &created); err != nil {
			return nil, err
		}
		c.Locked = locked != 0
		c.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortByEntry(out, cardEntry)
	return out, nil
}

// Snapshot reads the whole board.
func (s *Store) Snapshot(ctx context.Context) (Board, error) {
	lists, err := s.Lists(ctx)
	if err != nil {
		return Board{}, err
	}
	cards, err := s.Cards(ctx)
	if err != nil {
		return Board{}, err
	}
	return NewBoard(lists, cards), nil
}

// AddList appends a list to the board.
func (s *Store) AddList(ctx context.Context, title string, kind model.ListKind) (model.List, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return model.List{}, err
	}
	if kind == "" {
		kind = model.ListKindPlain
	}
	if kind != model.ListKindPlain && kind != model.ListKindExpandable {
		return model.List{}, fmt.Errorf("invalid list kind: %q", kind)
	}
	lists, err := s.Lists(ctx)
	if err != nil {
		return model.List{}, err
	}
	l := model.List{
		ID:        newID("list"),
		Title:     title,
		Kind:      kind,
		Expanded:  true,
		CreatedAt: s.now().UTC(),
	}
	return l, s.inTx(ctx, func(tx *sql.Tx) error {
		rank, err := placeNew(ctx, tx, "lists", entries(lists, listEntry), listEntry(l), len(lists))
		if err != nil {
			return err
		}
		l.Rank = rank
		return insertList(ctx, tx, l)
	})
}

// AddCard appends a card to the end of listID.
func (s *Store) AddCard(ctx context.Context, listID, title, description string) (model.Card, error) {
	title, err := cleanTitle(title)
	if err != nil {
		return model.Card{}, err
	}
	b, err := s.Snapshot(ctx)
	if err != nil {
		return model.Card{}, err
	}
	if _, _, ok := b.FindList(listID); !ok {
		return model.Card{}, NotFoundError{Kind: "list", ID: listID}
	}
	sibs := b.CardsIn(listID)
	c := model.Card{
		ID:          newID("card"),
		ListID:      listID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedAt:   s.now().UTC(),
	}
	return c, s.inTx(ctx, func(tx *sql.Tx) error {
		rank, err := placeNew(ctx, tx, "cards", entries(sibs, cardEntry), cardEntry(c), len(sibs))
		if err != nil {
			return err
		}
		c.Rank = rank
		return insertCard(ctx, tx, c)
	})
}

// SetExpanded records whether an expandable list shows its cards.
func (s *Store) SetExpanded(ctx context.Context, listID string, expanded bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE lists SET expanded = ? WHERE id = ?`, boolInt(expanded), listID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return NotFoundError{Kind: "list", ID: listID}
	}
	return nil
}

// SetLocked locks or unlocks the list or card with the given id.
func (s *Store) SetLocked(ctx context.Context, id string, locked bool) error {
	for _, table := range []string{"lists", "cards"} {
		res, err := s.db.ExecContext(ctx, `UPDATE `+table+` SET locked = ? WHERE id = ?`, boolInt(locked), id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return nil
		}
	}
	return NotFoundError{Kind: "list or card", ID: id}
}

// Seed fills an empty board with a small demo layout. It is a no-op when
// the board already has lists.
func (s *Store) Seed(ctx context.Context) error {
	lists, err := s.Lists(ctx)
	if err != nil || len(lists) > 0 {
		return err
	}
	demo := []struct {
		title string
		kind  model.ListKind
		cards []string
	}{
		{"Backlog", model.ListKindPlain, []string{"Sketch layout", "Pick palette", "Write release notes"}},
		{"Doing", model.ListKindPlain, []string{"Drag cards between lists"}},
		{"Archive", model.ListKindExpandable, []string{"Project kickoff", "Repo setup"}},
	}
	for _, d := range demo {
		l, err := s.AddList(ctx, d.title, d.kind)
		if err != nil {
			return err
		}
		for _, title := range d.cards {
			if _, err := s.AddCard(ctx, l.ID, title, ""); err != nil {
				return err
			}
		}
	}
	s.log.Debug("seeded demo board")
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func insertList(ctx context.Context, tx *sql.Tx, l model.List) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO lists(id, title, kind, locked, expanded, rank, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Title, string(l.Kind), boolInt(l.Locked), boolInt(l.Expanded), l.Rank, l.CreatedAt.UnixMilli())
	return err
}

func insertCard(ctx context.Context, tx *sql.Tx, c model.Card) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO cards(id, list_id, title, description, locked, rank, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ListID, c.Title, c.Description, boolInt(c.Locked), c.Rank, c.CreatedAt.UnixMilli())
	return err
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", errors.New("title is empty")
	}
	if r := []rune(title); len(r) > titleMaxRune {
		title = string(r[:titleMaxRune])
	}
	return title, nil
}
