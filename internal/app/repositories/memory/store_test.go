package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/repositories"
)

func TestReturnedRecordsAreCopies(t *testing.T) {
	store := New()
	ctx := context.Background()

	course := &models.Course{Code: "BSIT", Name: "Information Technology"}
	require.NoError(t, store.CreateCourse(ctx, course))

	loaded, err := store.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	loaded.Name = "mutated by caller"

	reloaded, err := store.GetCourseByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Information Technology", reloaded.Name)
}

func TestWithTxRunsAgainstSameStore(t *testing.T) {
	store := New()
	ctx := context.Background()

	err := store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.CreateCourse(ctx, &models.Course{Code: "BSIT", Name: "IT"}); err != nil {
			return err
		}
		return tx.CreateCourse(ctx, &models.Course{Code: "BSCS", Name: "CS"})
	})
	require.NoError(t, err)

	courses, err := store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)
}

func TestWithTxPropagatesError(t *testing.T) {
	store := New()
	boom := errors.New("boom")

	err := store.WithTx(context.Background(), func(ctx context.Context, tx repositories.Store) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestListUsersSortedByID(t *testing.T) {
	store := New()
	ctx := context.Background()

	for _, name := range []string{"charlie", "alice", "bob"} {
		_, err := store.CreateUser(ctx, &models.User{Username: name, Password: "x", RoleType: models.RoleStudent})
		require.NoError(t, err)
	}

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.True(t, users[0].ID < users[1].ID && users[1].ID < users[2].ID)
}
