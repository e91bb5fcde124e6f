package services

import (
	"context"
	"testing"

	"expertqa/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsk(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	carol := f.user("carol", false, false)

	q, err := f.questions.Ask(ctx, carol, "Why is the sky blue?", bob.ID)
	require.NoError(t, err)

	assert.Equal(t, carol.ID, q.AskerID)
	assert.Equal(t, bob.ID, q.ExpertID)
	assert.Nil(t, q.AnswerText)
}

func TestAsk_Refusals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	carol := f.user("carol", false, false)

	_, err := f.questions.Ask(ctx, nil, "anon?", bob.ID)
	assert.ErrorIs(t, err, utils.ErrNotAuthenticated)

	_, err = f.questions.Ask(ctx, carol, "  ", bob.ID)
	assertCode(t, err, utils.CodeValidation)

	_, err = f.questions.Ask(ctx, bob, "to a non expert", carol.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = f.questions.Ask(ctx, carol, "to nobody", 999)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAnswer_OnlyOnceByAssignedExpert(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	dora := f.user("dora", false, true)
	carol := f.user("carol", false, false)

	q, err := f.questions.Ask(ctx, carol, "What is Go?", bob.ID)
	require.NoError(t, err)

	stored, _ := f.store.Question(q.ID)
	assert.Nil(t, stored.AnswerText)

	err = f.questions.Answer(ctx, dora, q.ID, "dora's take")
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)
	stored, _ = f.store.Question(q.ID)
	assert.Nil(t, stored.AnswerText)

	require.NoError(t, f.questions.Answer(ctx, bob, q.ID, "A language"))

	err = f.questions.Answer(ctx, bob, q.ID, "A different answer")
	assert.ErrorIs(t, err, utils.ErrAlreadyAnswered)

	err = f.questions.Answer(ctx, dora, q.ID, "late")
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	stored, _ = f.store.Question(q.ID)
	require.NotNil(t, stored.AnswerText)
	assert.Equal(t, "A language", *stored.AnswerText)
	assert.NotNil(t, stored.AnsweredAt)
}

func TestAnswer_Refusals(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	carol := f.user("carol", false, false)
	root := f.user("root", true, false)

	q, err := f.questions.Ask(ctx, carol, "?", bob.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.questions.Answer(ctx, nil, q.ID, "x"), utils.ErrNotAuthenticated)
	assert.ErrorIs(t, f.questions.Answer(ctx, carol, q.ID, "x"), utils.ErrNotAuthorized)
	assert.ErrorIs(t, f.questions.Answer(ctx, root, q.ID, "x"), utils.ErrNotAuthorized)
	assert.ErrorIs(t, f.questions.Answer(ctx, bob, 999, "x"), utils.ErrNotFound)
	assertCode(t, f.questions.Answer(ctx, bob, q.ID, " "), utils.CodeValidation)
}

func TestAnswerForm(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	dora := f.user("dora", false, true)
	carol := f.user("carol", false, false)

	q, err := f.questions.Ask(ctx, carol, "?", bob.ID)
	require.NoError(t, err)

	detail, err := f.questions.AnswerForm(ctx, bob, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", detail.AskerName)

	_, err = f.questions.AnswerForm(ctx, dora, q.ID)
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	_, err = f.questions.AnswerForm(ctx, carol, q.ID)
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	_, err = f.questions.AnswerForm(ctx, bob, 404)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUnanswered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	dora := f.user("dora", false, true)
	carol := f.user("carol", false, false)

	q1, err := f.questions.Ask(ctx, carol, "first", bob.ID)
	require.NoError(t, err)
	_, err = f.questions.Ask(ctx, carol, "second", bob.ID)
	require.NoError(t, err)
	_, err = f.questions.Ask(ctx, carol, "for dora", dora.ID)
	require.NoError(t, err)
	require.NoError(t, f.questions.Answer(ctx, bob, q1.ID, "done"))

	items, err := f.questions.Unanswered(ctx, bob)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "second", items[0].QuestionText)

	_, err = f.questions.Unanswered(ctx, carol)
	assert.ErrorIs(t, err, utils.ErrNotAuthorized)

	_, err = f.questions.Unanswered(ctx, nil)
	assert.ErrorIs(t, err, utils.ErrNotAuthenticated)
}

func TestListAnswered_OnlyAnswered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	carol := f.user("carol", false, false)

	q1, err := f.questions.Ask(ctx, carol, "answered", bob.ID)
	require.NoError(t, err)
	_, err = f.questions.Ask(ctx, carol, "pending", bob.ID)
	require.NoError(t, err)
	require.NoError(t, f.questions.Answer(ctx, bob, q1.ID, "yes"))

	items, err := f.questions.ListAnswered(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	for _, item := range items {
		assert.NotNil(t, item.AnswerText)
	}
	assert.Equal(t, "carol", items[0].AskerName)
	assert.Equal(t, "bob", items[0].ExpertName)
}

func TestGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bob := f.user("bob", false, true)
	carol := f.user("carol", false, false)

	q, err := f.questions.Ask(ctx, carol, "visible?", bob.ID)
	require.NoError(t, err)

	detail, err := f.questions.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "visible?", detail.QuestionText)

	_, err = f.questions.Get(ctx, 12345)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestExperts_AfterPromotion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	root := f.user("root", true, false)
	bob := f.user("bob", false, false)
	carol := f.user("carol", false, false)

	experts, err := f.questions.Experts(ctx, carol)
	require.NoError(t, err)
	assert.Empty(t, experts)

	require.NoError(t, f.users.Promote(ctx, root, bob.ID))

	experts, err = f.questions.Experts(ctx, carol)
	require.NoError(t, err)
	require.Len(t, experts, 1)
	assert.Equal(t, "bob", experts[0].Name)

	_, err = f.questions.Experts(ctx, nil)
	assert.ErrorIs(t, err, utils.ErrNotAuthenticated)
}
