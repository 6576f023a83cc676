package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"taskmanager/internal/db"
	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.InitSchema(context.Background(), pool, true); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return pool
}

func TestSeededUsers(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	admin, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin == nil {
		t.Fatal("admin not seeded")
	}
	if admin.Role != domain.RoleAdmin {
		t.Errorf("admin role = %q, want ADMIN", admin.Role)
	}
	if !service.CheckPassword("admin123", admin.PasswordHash) {
		t.Error("seeded admin password does not verify")
	}
	if service.CheckPassword("wrong", admin.PasswordHash) {
		t.Error("wrong password verified")
	}

	admins, err := repo.ListByRole(ctx, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("got %d admins, want 2 (admin, alice)", len(admins))
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	pool := testPool(t)

	// second init without reset must not duplicate accounts
	if err := db.InitSchema(context.Background(), pool, false); err != nil {
		t.Fatalf("re-init schema: %v", err)
	}

	repo := repository.NewUserRepository(pool)
	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != len(domain.SeedUsers) {
		t.Errorf("got %d users, want %d", len(users), len(domain.SeedUsers))
	}
}

func TestCreateDuplicateUsername(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	hash, err := service.HashPassword("whatever1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if _, err := repo.Create(ctx, "admin", hash, domain.RoleUser); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("duplicate create err = %v, want ErrUsernameTaken", err)
	}
}

func TestRenameToTakenUsername(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	bob, err := repo.GetByUsername(ctx, "bob")
	if err != nil || bob == nil {
		t.Fatalf("get bob: %v", err)
	}

	taken := "alice"
	if _, err := repo.UpdateCredentials(ctx, bob.ID, &taken, nil); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Errorf("rename to taken name err = %v, want ErrUsernameTaken", err)
	}
}

func TestTaskCRUD(t *testing.T) {
	pool := testPool(t)
	repo := repository.NewTaskRepository(pool)
	ctx := context.Background()

	desc := "write the report"
	task := domain.Task{Title: "Quarterly report", Description: &desc}
	if err := repo.Create(ctx, &task); err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID == 0 {
		t.Fatal("create did not assign an id")
	}

	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("created task not found")
	}
	if got.Title != task.Title || got.Description == nil || *got.Description != desc {
		t.Errorf("round trip mismatch: %+v", got)
	}

	// substring filter, case-insensitive
	matches, err := repo.List(ctx, "quarterly")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("filter matched %d tasks, want 1", len(matches))
	}
	none, err := repo.List(ctx, "no-such-title")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("filter matched %d tasks, want 0", len(none))
	}

	found, err := repo.Update(ctx, task.ID, "Annual report", nil)
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}

	found, err = repo.Delete(ctx, task.ID)
	if err != nil || !found {
		t.Fatalf("delete: found=%v err=%v", found, err)
	}

	gone, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if gone != nil {
		t.Error("task still present after delete")
	}

	// absent id is a nil result, not an error
	absent, err := repo.GetByID(ctx, 999999)
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if absent != nil {
		t.Error("expected nil for absent id")
	}
}
