package mutate

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inklinehq/Inkline-CLI/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type comment struct {
	Id   string
	Body string
}

func newCommentMutator() *Mutator[comment] {
	return NewMutator(func(c comment) string {
		return c.Id
	})
}

func provisionalComment(body string) comment {
	return comment{
		Id:   fmt.Sprintf("tmp-%d", time.Now().UnixMilli()),
		Body: body,
	}
}

func TestCreateReplacesProvisionalById(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "2", Body: "second"},
		{Id: "1", Body: "first"},
	}

	var pending []comment
	m.OnChange = func(l []comment) {
		if pending == nil {
			pending = append([]comment{}, l...)
		}
	}

	provisional := provisionalComment("hello")
	got, err := m.Create(list, provisional, func() (comment, error) {
		return comment{Id: "3", Body: "hello"}, nil
	})

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].Id, "the confirmed item keeps the provisional's position")
	assert.Equal(t, "2", got[1].Id)
	assert.Equal(t, "1", got[2].Id)

	// the provisional entry was visible while the commit was pending
	require.Len(t, pending, 3)
	assert.Equal(t, provisional.Id, pending[0].Id)
}

func TestCreateRollsBackOnFailure(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "1", Body: "first"},
	}

	got, err := m.Create(list, provisionalComment("oops"), func() (comment, error) {
		return comment{}, errors.New("http 500")
	})

	require.Error(t, err)
	assert.Equal(t, list, got, "a failed create leaves the list as if it never happened")
}

func TestDeleteRollsBackAtOriginalIndex(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "1"},
		{Id: "2"},
		{Id: "3"},
	}

	got, err := m.Delete(list, "2", func() error {
		return errors.New("http 500")
	})

	require.Error(t, err)
	assert.Equal(t, list, got)
}

func TestDeleteTreats404AsSuccess(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "1"},
		{Id: "2"},
	}

	got, err := m.Delete(list, "2", func() error {
		return request.ErrNotFound
	})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Id)
}

func TestDeleteUnknownId(t *testing.T) {
	m := newCommentMutator()
	list := []comment{{Id: "1"}}

	_, err := m.Delete(list, "404", func() error {
		t.Fatal("commit should not run when the item is missing locally")
		return nil
	})
	assert.Error(t, err)
}

func TestUpdateRevertsOnFailure(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "1", Body: "original"},
	}

	var pending []comment
	m.OnChange = func(l []comment) {
		if pending == nil {
			pending = append([]comment{}, l...)
		}
	}

	got, err := m.Update(list, "1", func(c comment) comment {
		c.Body = "edited"
		return c
	}, func() error {
		return errors.New("http 500")
	})

	require.Error(t, err)
	assert.Equal(t, "original", got[0].Body)
	require.Len(t, pending, 1)
	assert.Equal(t, "edited", pending[0].Body, "the patch was visible while the commit was pending")
}

func TestUpdateKeepsPatchOnSuccess(t *testing.T) {
	m := newCommentMutator()
	list := []comment{
		{Id: "1", Body: "original"},
		{Id: "2", Body: "other"},
	}

	got, err := m.Update(list, "1", func(c comment) comment {
		c.Body = "edited"
		return c
	}, func() error {
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "edited", got[0].Body)
	assert.Equal(t, "other", got[1].Body)
}
