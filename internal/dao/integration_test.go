package dao

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/exparity/userdao/internal/beanmatch"
	"github.com/exparity/userdao/internal/fixture"
	"github.com/exparity/userdao/internal/model"
	"github.com/exparity/userdao/internal/store"
)

func startPostgres(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "userdao",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("postgres://postgres:postgres@%s:%s/userdao?sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("skip integration: cannot start postgres container: %v", err)
		return "", func() {}
	}

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:postgres@%s:%s/userdao?sslmode=disable", host, port.Port())
	cleanup := func() {
		termCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = container.Terminate(termCtx)
	}
	return dsn, cleanup
}

// openIntegrationGateway writes a configuration file pointing at dsn and
// opens a gateway through it.
func openIntegrationGateway(ctx context.Context, t *testing.T, dsn string) *Gateway {
	t.Helper()
	for _, key := range []string{"USERDAO_DATABASE_URL", "USERDAO_NATS_URL"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "userdao.toml")
	body := fmt.Sprintf("database_url = %q\nmax_open_conns = 4\n", dsn)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	g, err := Open(ctx, path, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestIntegration_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skip integration in short mode")
	}

	ctx := context.Background()
	dsn, terminate := startPostgres(ctx, t)
	defer terminate()

	g := openIntegrationGateway(ctx, t, dsn)

	t.Run("JaneDoe", func(t *testing.T) {
		user := janeDoe()
		saved, err := g.Save(ctx, user)
		require.NoError(t, err)
		require.Same(t, user, saved)
		require.NotZero(t, user.ID)
		require.NotZero(t, user.Comments[0].ID)

		loaded, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotSame(t, user, loaded)
		beanmatch.AssertSameBean(t, user, loaded)
	})

	t.Run("Random", func(t *testing.T) {
		f := fixture.New(42)
		for range 10 {
			user := fixture.RandomUser(f)
			_, err := g.Save(ctx, user)
			require.NoError(t, err)

			loaded, err := g.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.NotSame(t, user, loaded)
			if diff := beanmatch.Diff(user, loaded); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		}
	})

	t.Run("EmptyComments", func(t *testing.T) {
		user := fixture.RandomUserWithComments(fixture.New(9), 0)
		_, err := g.Save(ctx, user)
		require.NoError(t, err)

		loaded, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Comments)
		require.Empty(t, loaded.Comments)
	})

	t.Run("UnsetComments", func(t *testing.T) {
		user := &model.User{Username: "no.comments", FirstName: "Nil", Surname: "Slice"}
		_, err := g.Save(ctx, user)
		require.NoError(t, err)

		loaded, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded.Comments)
		beanmatch.AssertSameBean(t, user, loaded)
	})

	t.Run("ZeroTimestamps", func(t *testing.T) {
		user := &model.User{
			Username: "nulls",
			Comments: []*model.Comment{{Title: "untimed"}},
		}
		_, err := g.Save(ctx, user)
		require.NoError(t, err)

		loaded, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, loaded.CreateTs.IsZero())
		require.True(t, loaded.Comments[0].Timestamp.IsZero())
	})

	t.Run("TwoLoadsAreDistinct", func(t *testing.T) {
		user := fixture.RandomUserWithComments(fixture.New(5), 3)
		_, err := g.Save(ctx, user)
		require.NoError(t, err)

		a, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		b, err := g.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotSame(t, a, b)
		beanmatch.AssertSameBean(t, a, b)
	})

	t.Run("UnknownID", func(t *testing.T) {
		_, err := g.GetByID(ctx, 9_999_999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("ListUsers", func(t *testing.T) {
		users, err := g.ListUsers(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, users)
		for i := 1; i < len(users); i++ {
			require.Less(t, users[i-1].ID, users[i].ID)
		}
	})
}
