package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/maxviazov/usagers-client/pkg/response"
)

type userRepository struct{ c *Client }

func NewUserRepository(c *Client) repository.UserRepository {
	return &userRepository{c: c}
}

// List fetches one page. Page and TotalPages are copied from the response as-is.
func (r *userRepository) List(ctx context.Context, q repository.ListQuery) (repository.PageResult[model.User], error) {
	if err := ensureClient(r.c); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	resp, err := r.c.do(ctx, http.MethodGet, r.c.collectionURL(q.Values()), nil)
	if err != nil {
		return repository.PageResult[model.User]{}, err
	}
	var page model.UsersPage
	if err := response.Decode(resp, &page); err != nil {
		return repository.PageResult[model.User]{}, err
	}
	items := page.Users
	if items == nil {
		items = []model.User{}
	}
	return repository.PageResult[model.User]{
		Items:      items,
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	if err := ensureClient(r.c); err != nil {
		return model.User{}, err
	}
	resp, err := r.c.do(ctx, http.MethodGet, r.c.itemURL(id), nil)
	if err != nil {
		return model.User{}, err
	}
	var out model.User
	if err := response.Decode(resp, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

func (r *userRepository) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	if err := ensureClient(r.c); err != nil {
		return model.User{}, err
	}
	resp, err := r.c.do(ctx, http.MethodPost, r.c.collectionURL(nil), in)
	if err != nil {
		return model.User{}, err
	}
	var out model.User
	if err := response.Decode(resp, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	if err := ensureClient(r.c); err != nil {
		return model.User{}, err
	}
	resp, err := r.c.do(ctx, http.MethodPut, r.c.itemURL(id), in)
	if err != nil {
		return model.User{}, err
	}
	var out model.User
	if err := response.Decode(resp, &out); err != nil {
		return model.User{}, err
	}
	return out, nil
}

// Delete accepts either a JSON acknowledgement or an empty 204.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	if err := ensureClient(r.c); err != nil {
		return err
	}
	resp, err := r.c.do(ctx, http.MethodDelete, r.c.itemURL(id), nil)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusNoContent {
		_ = resp.Body.Close()
		return nil
	}
	var ack response.MessagePayload
	return response.Decode(resp, &ack)
}

var _ repository.UserRepository = (*userRepository)(nil)

// ensureClient rejects a repository built without a usable client.
func ensureClient(c *Client) error {
	if c == nil || c.http == nil || c.base == nil {
		return errors.New("api client is nil")
	}
	return nil
}
