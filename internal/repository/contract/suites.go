package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
)

// UserFactory returns a repository backed by an empty dataset, and its cleanup.
// seed inserts fixtures without going through the repository under test.
type UserFactory func(t *testing.T) (repo repository.UserRepository, seed func(in ...model.UserInput), cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

// Fixture builds a valid input; n makes first name and email unique.
func Fixture(n int, niveau, birth string) model.UserInput {
	return model.UserInput{
		FirstName:      fmt.Sprintf("Nageur%02d", n),
		LastName:       "Dupont",
		Email:          fmt.Sprintf("nageur%02d@example.com", n),
		DateNaissance:  birth,
		NiveauNatation: niveau,
	}
}

func intPtr(v int) *int { return &v }

func RunUserRepositoryContract(t *testing.T, makeRepo UserFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, Fixture(1, "Débutant", "1990-05-15"))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("expected server-assigned id, got %+v", created)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != created.ID || got.Email != "nageur01@example.com" || got.NiveauNatation != "Débutant" {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_pagination_total", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 1; i <= 7; i++ {
			seed(Fixture(i, "Débutant", "1990-01-01"))
		}
		res, err := repo.List(ctx, repository.ListQuery{Page: 1, Limit: 3})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 || res.TotalPages != 3 || res.Page != 1 {
			t.Fatalf("unexpected page: len=%d total=%d pages=%d page=%d", len(res.Items), res.Total, res.TotalPages, res.Page)
		}
		last, err := repo.List(ctx, repository.ListQuery{Page: 3, Limit: 3})
		if err != nil {
			t.Fatalf("list3: %v", err)
		}
		if len(last.Items) != 1 || last.Total != 7 || last.Page != 3 {
			t.Fatalf("unexpected last page: len=%d total=%d page=%d", len(last.Items), last.Total, last.Page)
		}
	})

	t.Run("list_empty_ok", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		res, err := repo.List(context.Background(), repository.ListQuery{Page: 1, Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Items == nil || len(res.Items) != 0 || res.Total != 0 {
			t.Fatalf("expected empty non-nil page, got %#v", res)
		}
	})

	t.Run("list_search", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seed(Fixture(1, "Débutant", "1990-01-01"), Fixture(2, "Débutant", "1990-01-01"))
		seed(model.UserInput{FirstName: "Marie", LastName: "Curie", Email: "marie@example.com", DateNaissance: "1991-11-07", NiveauNatation: "Expert"})
		res, err := repo.List(context.Background(), repository.ListQuery{Page: 1, Limit: 10, Search: "curie"})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || len(res.Items) != 1 || res.Items[0].FirstName != "Marie" {
			t.Fatalf("unexpected search result: %#v", res)
		}
	})

	t.Run("list_filter_niveau_and_age", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seed(
			Fixture(1, "Expert", "1950-01-01"),
			Fixture(2, "Expert", "2000-01-01"),
			Fixture(3, "Débutant", "2000-01-01"),
		)
		ctx := context.Background()
		res, err := repo.List(ctx, repository.ListQuery{Page: 1, Limit: 10, Niveau: "Expert"})
		if err != nil {
			t.Fatalf("list niveau: %v", err)
		}
		if res.Total != 2 {
			t.Fatalf("expected 2 experts, got %d", res.Total)
		}
		res, err = repo.List(ctx, repository.ListQuery{Page: 1, Limit: 10, Niveau: "Expert", AgeMax: intPtr(60)})
		if err != nil {
			t.Fatalf("list niveau+age: %v", err)
		}
		if res.Total != 1 || res.Items[0].Email != "nageur02@example.com" {
			t.Fatalf("unexpected filtered page: %#v", res)
		}
		res, err = repo.List(ctx, repository.ListQuery{Page: 1, Limit: 10, AgeMin: intPtr(60)})
		if err != nil {
			t.Fatalf("list age min: %v", err)
		}
		if res.Total != 1 || res.Items[0].Email != "nageur01@example.com" {
			t.Fatalf("unexpected age_min page: %#v", res)
		}
	})

	t.Run("update", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, Fixture(1, "Débutant", "1990-05-15"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		in := model.InputOf(created)
		in.NiveauNatation = "Confirmé"
		updated, err := repo.Update(ctx, created.ID, in)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ID != created.ID || updated.NiveauNatation != "Confirmé" {
			t.Fatalf("update not applied: %+v", updated)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.Update(context.Background(), 424242, Fixture(1, "Débutant", "1990-05-15"))
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, Fixture(1, "Débutant", "1990-05-15"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete_not_found", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		err := repo.Delete(context.Background(), 7777777)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_email_conflict", func(t *testing.T) {
		repo, seed, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		seed(Fixture(1, "Débutant", "1990-05-15"))
		_, err := repo.Create(context.Background(), Fixture(1, "Expert", "1980-01-01"))
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if err.Error() != "Email already exists" {
			t.Fatalf("expected server message, got %q", err.Error())
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
