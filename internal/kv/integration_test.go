//go:build integration

package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startContainer(t *testing.T, ctx context.Context, req testcontainers.ContainerRequest) (testcontainers.Container, string, string) {
	t.Helper()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("failed to start %s: %v", req.Image, err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		t.Fatalf("failed to get host: %v", err)
	}
	port, err := c.MappedPort(ctx, req.ExposedPorts[0])
	if err != nil {
		_ = c.Terminate(ctx)
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return c, host, port.Port()
}

func findMigrationsDir(t *testing.T) string {
	t.Helper()
	cwd, _ := os.Getwd()
	for i := 0; i < 6; i++ {
		candidate := filepath.Join(cwd, "migrations")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return "file://" + candidate
		}
		cwd = filepath.Dir(cwd)
	}
	t.Fatalf("could not locate migrations directory from test cwd")
	return ""
}

func exerciseStore(t *testing.T, ctx context.Context, s Store) {
	t.Helper()
	if err := SetJSON(ctx, s, KeyLikedArticles, map[string]bool{"auto_1": true}); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	var liked map[string]bool
	found, err := GetJSON(ctx, s, KeyLikedArticles, &liked)
	if err != nil || !found || !liked["auto_1"] {
		t.Fatalf("GetJSON: found=%v err=%v value=%v", found, err, liked)
	}
	entries := []Entry{{Key: KeyUserArticles, Value: `[{"id":"user_1"}]`}, {Key: KeyPublishedArticles, Value: `[{"id":"user_1"}]`}}
	if err := s.SetMany(ctx, entries); err != nil {
		t.Fatalf("SetMany: %v", err)
	}
	for _, e := range entries {
		if v, ok, err := s.Get(ctx, e.Key); err != nil || !ok || v != e.Value {
			t.Fatalf("after SetMany %s = %q %v %v", e.Key, v, ok, err)
		}
	}
	if err := s.Delete(ctx, KeyLikedArticles); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, err := s.Get(ctx, KeyLikedArticles); err != nil || ok {
		t.Fatalf("expected key gone, ok=%v err=%v", ok, err)
	}
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	c, host, port := startContainer(t, ctx, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	})
	defer func() { _ = c.Terminate(ctx) }()

	r, err := DialRedis(ctx, fmt.Sprintf("%s:%s", host, port), "", 0, 5*time.Second, "technote-test:")
	if err != nil {
		t.Fatalf("DialRedis: %v", err)
	}
	defer r.Close()
	exerciseStore(t, ctx, r)
}

func TestPostgresBackend(t *testing.T) {
	ctx := context.Background()
	c, host, port := startContainer(t, ctx, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "technote",
			"POSTGRES_PASSWORD": "technote",
			"POSTGRES_DB":       "technote",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	})
	defer func() { _ = c.Terminate(ctx) }()

	dsn := fmt.Sprintf("postgres://technote:technote@%s:%s/technote?sslmode=disable", host, port)
	migDir := findMigrationsDir(t)
	var migErr error
	for i := 0; i < 6; i++ {
		if migErr = Migrate(migDir, dsn, "up", 0); migErr == nil {
			break
		}
		time.Sleep(300 * time.Millisecond)
	}
	if migErr != nil {
		t.Fatalf("Migrate: %v", migErr)
	}

	p, err := OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer p.Close()
	exerciseStore(t, ctx, p)
}
