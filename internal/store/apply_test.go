package store

import (
	"context"
	"testing"

	"dragboard/internal/hierarchy"
	"dragboard/internal/model"
	"dragboard/internal/reorder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAndSnapshot(t *testing.T, s *Store, b Board, in reorder.Instruction) Board {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.Apply(ctx, b, in))
	after, err := s.Snapshot(ctx)
	require.NoError(t, err)
	return after
}

func TestApplyItemMove_SameList(t *testing.T) {
	s, b := seededStore(t)
	b = applyAndSnapshot(t, s, b, reorder.ItemMove{SourceList: 0, SourceItem: 0, DestList: 0, DestItem: 2})
	assert.Equal(t, []string{"Pick palette", "Write release notes", "Sketch layout"}, cardTitles(b, 0))

	b = applyAndSnapshot(t, s, b, reorder.ItemMove{SourceList: 0, SourceItem: 2, DestList: 0, DestItem: 0})
	assert.Equal(t, []string{"Sketch layout", "Pick palette", "Write release notes"}, cardTitles(b, 0))
}

func TestApplyItemMove_CrossList(t *testing.T) {
	s, b := seededStore(t)
	b = applyAndSnapshot(t, s, b, reorder.ItemMove{SourceList: 0, SourceItem: 1, DestList: 1, DestItem: 0})
	assert.Equal(t, []string{"Sketch layout", "Write release notes"}, cardTitles(b, 0))
	assert.Equal(t, []string{"Pick palette", "Drag cards between lists"}, cardTitles(b, 1))

	b = applyAndSnapshot(t, s, b, reorder.ItemMove{SourceList: 1, SourceItem: 1, DestList: 2, DestItem: 2})
	assert.Equal(t, []string{"Project kickoff", "Repo setup", "Drag cards between lists"}, cardTitles(b, 2))
}

func TestApplyItemMove_NoOpWritesNothing(t *testing.T) {
	s, b := seededStore(t)
	after := applyAndSnapshot(t, s, b, reorder.ItemMove{SourceList: 0, SourceItem: 1, DestList: 0, DestItem: 1})
	assert.Equal(t, b.CardsIn(b.Lists[0].ID), after.CardsIn(after.Lists[0].ID))
}

func TestApplyListMove(t *testing.T) {
	s, b := seededStore(t)
	b = applyAndSnapshot(t, s, b, reorder.ListMove{Source: 0, Dest: 2})
	assert.Equal(t, []string{"Doing", "Archive", "Backlog"}, listTitles(b))
	// Cards travel with their list.
	assert.Equal(t, []string{"Sketch layout", "Pick palette", "Write release notes"}, cardTitles(b, 2))
}

func TestApplyItemInsert(t *testing.T) {
	s, b := seededStore(t)
	in := reorder.ItemInsert{Item: &hierarchy.Item{Payload: model.Card{Title: "Fresh"}}, DestList: 1, DestItem: 1}
	c, err := s.ApplyItemInsert(context.Background(), b, in)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, b.Lists[1].ID, c.ListID)

	b, err = s.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Drag cards between lists", "Fresh"}, cardTitles(b, 1))
}

func TestApplyListInsert_AppendWithCards(t *testing.T) {
	s, b := seededStore(t)
	foreign := &hierarchy.List{
		Payload: &model.List{Title: "Later", Kind: model.ListKindExpandable},
		Items: []*hierarchy.Item{
			{Payload: model.Card{Title: "first"}},
			{Payload: model.Card{Title: "second"}, Locked: true},
		},
	}
	b = applyAndSnapshot(t, s, b, reorder.ListInsert{List: foreign, Dest: len(b.Lists), Append: true})
	require.Len(t, b.Lists, 4)
	assert.Equal(t, "Later", b.Lists[3].Title)
	assert.Equal(t, []string{"first", "second"}, cardTitles(b, 3))
	assert.True(t, b.CardsIn(b.Lists[3].ID)[1].Locked)

	b = applyAndSnapshot(t, s, b, reorder.ListInsert{List: &hierarchy.List{Payload: model.List{Title: "Top"}}, Dest: 0})
	assert.Equal(t, "Top", b.Lists[0].Title)
}

func TestApply_Rejections(t *testing.T) {
	s, b := seededStore(t)
	ctx := context.Background()

	err := s.Apply(ctx, b, reorder.ItemMove{SourceList: 0, SourceItem: 9, DestList: 0, DestItem: 0})
	assert.ErrorIs(t, err, ErrStaleBoard)
	err = s.Apply(ctx, b, reorder.ItemMove{SourceList: 7, SourceItem: 0, DestList: 0, DestItem: 0})
	assert.ErrorIs(t, err, ErrStaleBoard)
	err = s.Apply(ctx, b, reorder.ListMove{Source: 0, Dest: 3})
	assert.ErrorIs(t, err, ErrStaleBoard)
	err = s.Apply(ctx, b, reorder.ItemInsert{Item: &hierarchy.Item{Payload: 42}, DestList: 0, DestItem: 0})
	assert.ErrorIs(t, err, ErrBadPayload)
	err = s.Apply(ctx, b, reorder.ItemInsert{Item: &hierarchy.Item{Payload: (*model.Card)(nil)}, DestList: 0, DestItem: 0})
	assert.ErrorIs(t, err, ErrBadPayload)
	err = s.Apply(ctx, b, reorder.ListInsert{List: &hierarchy.List{Payload: (*model.List)(nil)}, Dest: 0})
	assert.ErrorIs(t, err, ErrBadPayload)

	require.NoError(t, s.SetLocked(ctx, b.Lists[0].ID, true))
	card := b.CardsIn(b.Lists[1].ID)[0]
	require.NoError(t, s.SetLocked(ctx, card.ID, true))
	b, err = s.Snapshot(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Apply(ctx, b, reorder.ListMove{Source: 0, Dest: 1}), ErrLocked)
	assert.ErrorIs(t, s.Apply(ctx, b, reorder.ItemMove{SourceList: 1, SourceItem: 0, DestList: 0, DestItem: 0}), ErrLocked)
	// Locked lists still accept cards.
	require.NoError(t, s.Apply(ctx, b, reorder.ItemMove{SourceList: 2, SourceItem: 0, DestList: 0, DestItem: 0}))
}
