package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dragboard/internal/model"

	"github.com/sirupsen/logrus"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`

	EntityKind string `json:"entityKind,omitempty"`
	EntityID   string `json:"entityId,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
	// Reindexed counts rows rewritten by Reindex, when it ran.
	Reindexed int `json:"reindexed,omitempty"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

type rawRow struct {
	id, parent, kind, rank string
	created                time.Time
}

// Doctor checks the database file and the board invariants Snapshot relies
// on: known list kinds, cards attached to existing lists, and well-formed,
// distinct sibling ranks.
func (s *Store) Doctor(ctx context.Context) (DoctorReport, error) {
	rep := DoctorReport{Issues: []DoctorIssue{}}
	add := func(level DoctorIssueLevel, code, kind, id, msg string) {
		rep.Issues = append(rep.Issues, DoctorIssue{Level: level, Code: code, Message: msg, EntityKind: kind, EntityID: id})
	}

	var integrity string
	if err := s.db.QueryRowContext(ctx, `PRAGMA integrity_check`).Scan(&integrity); err != nil {
		return rep, err
	}
	if integrity != "ok" {
		add(DoctorIssueLevelError, "sqlite_integrity", "", "", integrity)
	}

	lists, err := s.rawRows(ctx, `SELECT id, '', kind, rank, created_at_unixms FROM lists`)
	if err != nil {
		return rep, err
	}
	cards, err := s.rawRows(ctx, `SELECT id, list_id, '', rank, created_at_unixms FROM cards`)
	if err != nil {
		return rep, err
	}

	known := make(map[string]bool, len(lists))
	for _, l := range lists {
		known[l.id] = true
		switch model.ListKind(l.kind) {
		case model.ListKindPlain, model.ListKindExpandable:
		default:
			add(DoctorIssueLevelError, "list_kind_invalid", "list", l.id, fmt.Sprintf("unknown list kind %q", l.kind))
		}
	}
	checkRanks(lists, "list", add)

	byList := map[string][]rawRow{}
	for _, c := range cards {
		if !known[c.parent] {
			add(DoctorIssueLevelError, "card_orphan", "card", c.id, fmt.Sprintf("card belongs to missing list %s", c.parent))
			continue
		}
		byList[c.parent] = append(byList[c.parent], c)
	}
	for _, l := range lists {
		checkRanks(byList[l.id], "card", add)
	}
	return rep, nil
}

func checkRanks(rows []rawRow, kind string, add func(level DoctorIssueLevel, code, kind, id, msg string)) {
	seen := map[string]string{}
	for _, r := range rows {
		rank := normRank(r.rank)
		switch {
		case rank == "":
			add(DoctorIssueLevelWarn, "rank_missing", kind, r.id, "no rank; ordered by creation time")
			continue
		case !validRank(rank):
			add(DoctorIssueLevelError, "rank_invalid", kind, r.id, fmt.Sprintf("rank %q has characters outside [0-9a-z]", r.rank))
			continue
		}
		if other, dup := seen[rank]; dup {
			add(DoctorIssueLevelWarn, "rank_duplicate", kind, r.id, fmt.Sprintf("rank %q shared with %s", rank, other))
			continue
		}
		seen[rank] = r.id
	}
}

func validRank(r string) bool {
	for i := 0; i < len(r); i++ {
		if _, ok := rankDigit(r[i]); !ok {
			return false
		}
	}
	return true
}

func (s *Store) rawRows(ctx context.Context, q string) ([]rawRow, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []rawRow
	for rows.Next() {
		var (
			r  rawRow
			ms int64
		)
		if err := rows.Scan(&r.id, &r.parent, &r.kind, &r.rank, &ms); err != nil {
			return nil, err
		}
		r.created = time.UnixMilli(ms).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

// Reindex rewrites every rank with evenly spaced values, keeping the current
// display order. Orphaned cards are appended to the first list. It returns
// the number of rows written.
func (s *Store) Reindex(ctx context.Context) (int, error) {
	lists, err := s.rawRows(ctx, `SELECT id, '', kind, rank, created_at_unixms FROM lists`)
	if err != nil {
		return 0, err
	}
	cards, err := s.rawRows(ctx, `SELECT id, list_id, '', rank, created_at_unixms FROM cards`)
	if err != nil {
		return 0, err
	}

	listEntries := rowEntries(lists)
	SortEntries(listEntries)
	known := map[string]bool{}
	for _, l := range lists {
		known[l.id] = true
	}

	byList := map[string][]Entry{}
	var orphans []Entry
	for _, c := range cards {
		e := Entry{ID: c.id, Rank: c.rank, CreatedAt: c.created}
		if !known[c.parent] {
			orphans = append(orphans, e)
			continue
		}
		byList[c.parent] = append(byList[c.parent], e)
	}
	for _, sibs := range byList {
		SortEntries(sibs)
	}
	if len(orphans) > 0 && len(listEntries) > 0 {
		SortEntries(orphans)
		first := listEntries[0].ID
		byList[first] = append(byList[first], orphans...)
	}

	n := 0
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		written, err := rewriteRanks(ctx, tx, "lists", listEntries, "")
		if err != nil {
			return err
		}
		n += written
		for _, l := range listEntries {
			written, err := rewriteRanks(ctx, tx, "cards", byList[l.ID], l.ID)
			if err != nil {
				return err
			}
			n += written
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"rows": n, "orphans": len(orphans)}).Info("reindexed board")
	return n, nil
}

func rowEntries(rows []rawRow) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{ID: r.id, Rank: r.rank, CreatedAt: r.created})
	}
	return out
}

// rewriteRanks assigns evenRanks to es in order. For cards, listID is also
// written so adopted orphans move.
func rewriteRanks(ctx context.Context, tx *sql.Tx, table string, es []Entry, listID string) (int, error) {
	ranks := evenRanks(len(es))
	for i, e := range es {
		var err error
		if listID != "" {
			_, err = tx.ExecContext(ctx, `UPDATE cards SET rank = ?, list_id = ? WHERE id = ?`, ranks[i], listID, e.ID)
		} else {
			_, err = tx.ExecContext(ctx, `UPDATE `+table+` SET rank = ? WHERE id = ?`, ranks[i], e.ID)
		}
		if err != nil {
			return 0, err
		}
	}
	return len(es), nil
}

// evenRanks returns n increasing ranks of equal width spread across the
// rank space.
func evenRanks(n int) []string {
	width, span := 1, int64(len(rankAlphabet))
	for span <= int64(n) {
		width++
		span *= int64(len(rankAlphabet))
	}
	out := make([]string, n)
	for i := range out {
		v := int64(i+1) * span / int64(n+1)
		r := strconv.FormatInt(v, len(rankAlphabet))
		out[i] = strings.Repeat("0", width-len(r)) + r
	}
	return out
}
