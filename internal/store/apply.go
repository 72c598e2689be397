package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"dragboard/internal/model"
	"dragboard/internal/reorder"

	"github.com/sirupsen/logrus"
)

// Apply persists one resolved instruction. Indices are read against b, the
// snapshot the instruction was resolved from.
func (s *Store) Apply(ctx context.Context, b Board, in reorder.Instruction) error {
	switch in := in.(type) {
	case reorder.ItemMove:
		return s.ApplyItemMove(ctx, b, in)
	case reorder.ListMove:
		return s.ApplyListMove(ctx, b, in)
	case reorder.ItemInsert:
		_, err := s.ApplyItemInsert(ctx, b, in)
		return err
	case reorder.ListInsert:
		_, err := s.ApplyListInsert(ctx, b, in)
		return err
	default:
		return fmt.Errorf("unknown instruction %T", in)
	}
}

func (s *Store) ApplyItemMove(ctx context.Context, b Board, m reorder.ItemMove) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	src, ok := listAt(b, m.SourceList)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	dst, ok := listAt(b, m.DestList)
	if !ok {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	srcCards := b.CardsIn(src.ID)
	if m.SourceItem >= len(srcCards) {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	card := srcCards[m.SourceItem]
	if card.Locked {
		return fmt.Errorf("card %s: %w", card.ID, ErrLocked)
	}
	if m.NoOp() {
		return nil
	}

	var (
		plan RankPlan
		err  error
	)
	if src.ID == dst.ID {
		if m.DestItem >= len(srcCards) {
			return fmt.Errorf("%w: %s", ErrStaleBoard, m)
		}
		plan, err = PlanReorderRanks(entries(srcCards, cardEntry), card.ID, m.DestItem)
	} else {
		dstCards := b.CardsIn(dst.ID)
		if m.DestItem > len(dstCards) {
			return fmt.Errorf("%w: %s", ErrStaleBoard, m)
		}
		plan, err = PlanInsertRank(entries(dstCards, cardEntry), cardEntry(card), m.DestItem)
	}
	if err != nil {
		return err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if src.ID != dst.ID {
			if _, err := tx.ExecContext(ctx, `UPDATE cards SET list_id = ? WHERE id = ?`, dst.ID, card.ID); err != nil {
				return err
			}
		}
		return writeRanks(ctx, tx, "cards", plan, "")
	})
	if err != nil {
		return err
	}
	s.logPlan("card moved", plan, logrus.Fields{"card": card.ID, "from": src.ID, "to": dst.ID, "index": m.DestItem})
	return nil
}

func (s *Store) ApplyListMove(ctx context.Context, b Board, m reorder.ListMove) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	l, ok := listAt(b, m.Source)
	if !ok || m.Dest >= len(b.Lists) {
		return fmt.Errorf("%w: %s", ErrStaleBoard, m)
	}
	if l.Locked {
		return fmt.Errorf("list %s: %w", l.ID, ErrLocked)
	}
	if m.NoOp() {
		return nil
	}
	plan, err := PlanReorderRanks(entries(b.Lists, listEntry), l.ID, m.Dest)
	if err != nil {
		return err
	}
	if err := s.inTx(ctx, func(tx *sql.Tx) error { return writeRanks(ctx, tx, "lists", plan, "") }); err != nil {
		return err
	}
	s.logPlan("list moved", plan, logrus.Fields{"list": l.ID, "index": m.Dest})
	return nil
}

// ApplyItemInsert stores the card draft carried by in.Item. The payload
// must be a model.Card or *model.Card; missing ids are generated.
func (s *Store) ApplyItemInsert(ctx context.Context, b Board, in reorder.ItemInsert) (model.Card, error) {
	if !in.Valid() {
		return model.Card{}, fmt.Errorf("%w: %s", ErrStaleBoard, in)
	}
	dst, ok := listAt(b, in.DestList)
	if !ok {
		return model.Card{}, fmt.Errorf("%w: %s", ErrStaleBoard, in)
	}
	sibs := b.CardsIn(dst.ID)
	if in.DestItem > len(sibs) {
		return model.Card{}, fmt.Errorf("%w: %s", ErrStaleBoard, in)
	}
	c, err := s.cardDraft(in.Item.Payload)
	if err != nil {
		return model.Card{}, err
	}
	c.ListID = dst.ID
	c.Locked = c.Locked || in.Item.Locked

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		rank, err := placeNew(ctx, tx, "cards", entries(sibs, cardEntry), cardEntry(c), in.DestItem)
		if err != nil {
			return err
		}
		c.Rank = rank
		return insertCard(ctx, tx, c)
	})
	if err != nil {
		return model.Card{}, err
	}
	s.log.WithFields(logrus.Fields{"card": c.ID, "list": dst.ID, "index": in.DestItem}).Debug("card inserted")
	return c, nil
}

// ApplyListInsert stores the list draft carried by in.List together with
// any card drafts among its items.
func (s *Store) ApplyListInsert(ctx context.Context, b Board, in reorder.ListInsert) (model.List, error) {
	if !in.Valid() || in.Dest > len(b.Lists) {
		return model.List{}, fmt.Errorf("%w: %s", ErrStaleBoard, in)
	}
	var l model.List
	switch p := in.List.Payload.(type) {
	case model.List:
		l = p
	case *model.List:
		if p == nil {
			return model.List{}, fmt.Errorf("%w: nil *model.List", ErrBadPayload)
		}
		l = *p
	default:
		return model.List{}, fmt.Errorf("%w: %T", ErrBadPayload, in.List.Payload)
	}
	title, err := cleanTitle(l.Title)
	if err != nil {
		return model.List{}, err
	}
	l.Title = title
	if strings.TrimSpace(l.ID) == "" {
		l.ID = newID("list")
	}
	if l.Kind == "" {
		l.Kind = model.ListKindPlain
	}
	l.Locked = l.Locked || in.List.Locked
	l.Expanded = l.Expanded || in.List.Expanded
	l.CreatedAt = s.now().UTC()

	cards := make([]model.Card, 0, len(in.List.Items))
	for _, it := range in.List.Items {
		if it == nil {
			continue
		}
		c, err := s.cardDraft(it.Payload)
		if err != nil {
			return model.List{}, err
		}
		c.ListID = l.ID
		c.Locked = c.Locked || it.Locked
		cards = append(cards, c)
	}

	at := in.Dest
	if in.Append {
		at = len(b.Lists)
	}
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		rank, err := placeNew(ctx, tx, "lists", entries(b.Lists, listEntry), listEntry(l), at)
		if err != nil {
			return err
		}
		l.Rank = rank
		if err := insertList(ctx, tx, l); err != nil {
			return err
		}
		prev := ""
		for _, c := range cards {
			if c.Rank, err = RankAfter(prev); err != nil {
				return err
			}
			prev = c.Rank
			if err := insertCard(ctx, tx, c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return model.List{}, err
	}
	s.log.WithFields(logrus.Fields{"list": l.ID, "index": at, "cards": len(cards)}).Debug("list inserted")
	return l, nil
}

func (s *Store) cardDraft(payload any) (model.Card, error) {
	var c model.Card
	switch p := payload.(type) {
	case model.Card:
		c = p
	case *model.Card:
		if p == nil {
			return model.Card{}, fmt.Errorf("%w: nil *model.Card", ErrBadPayload)
		}
		c = *p
	default:
		return model.Card{}, fmt.Errorf("%w: %T", ErrBadPayload, payload)
	}
	title, err := cleanTitle(c.Title)
	if err != nil {
		return model.Card{}, err
	}
	c.Title = title
	c.Description = strings.TrimSpace(c.Description)
	if strings.TrimSpace(c.ID) == "" {
		c.ID = newID("card")
	}
	c.CreatedAt = s.now().UTC()
	return c, nil
}

func (s *Store) logPlan(msg string, plan RankPlan, f logrus.Fields) {
	f["rewritten"] = len(plan.RankByID)
	f["rebalanced"] = plan.Rebalanced
	s.log.WithFields(f).Debug(msg)
}

func listAt(b Board, i int) (model.List, bool) {
	if i < 0 || i >= len(b.Lists) {
		return model.List{}, false
	}
	return b.Lists[i], true
}

// placeNew plans a rank for e at index at among sibs, writes any rebalanced
// sibling ranks and returns the rank for e.
func placeNew(ctx context.Context, tx *sql.Tx, table string, sibs []Entry, e Entry, at int) (string, error) {
	plan, err := PlanInsertRank(sibs, e, at)
	if err != nil {
		return "", err
	}
	if err := writeRanks(ctx, tx, table, plan, e.ID); err != nil {
		return "", err
	}
	return plan.RankByID[e.ID], nil
}

// writeRanks applies plan to table, skipping skipID.
func writeRanks(ctx context.Context, tx *sql.Tx, table string, plan RankPlan, skipID string) error {
	for id, rank := range plan.RankByID {
		if id == skipID {
			continue
		}
		if _, err := tx.ExecContext(ctx, `UPDATE `+table+` SET rank = ? WHERE id = ?`, rank, id); err != nil {
			return fmt.Errorf("update %s rank: %w", table, err)
		}
	}
	return nil
}
