package controller_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/usagers-client/internal/config"
	"github.com/maxviazov/usagers-client/internal/controller"
	"github.com/maxviazov/usagers-client/internal/metrics"
	"github.com/maxviazov/usagers-client/internal/model"
	"github.com/maxviazov/usagers-client/internal/repository/contract"
	"github.com/maxviazov/usagers-client/internal/repository/httpapi"
	"github.com/maxviazov/usagers-client/internal/service"
	"github.com/maxviazov/usagers-client/internal/testutil/fakeapi"
	"github.com/maxviazov/usagers-client/internal/testutil/fakeclock"
	"github.com/maxviazov/usagers-client/internal/view"
)

func TestControllerAgainstFakeAPI(t *testing.T) {
	fake := fakeapi.New()
	ts, base := fake.Start()
	defer ts.Close()
	for i := 1; i <= 25; i++ {
		fake.Seed(contract.Fixture(i, "Débutant", "1990-01-01"))
	}
	fake.Seed(model.UserInput{FirstName: "Marie", LastName: "Curie", Email: "marie@example.com", DateNaissance: "1991-11-07", NiveauNatation: "Expert"})

	l := zerolog.Nop()
	client, err := httpapi.New(&config.Config{API: config.APIConfig{BaseURL: base, Timeout: 2 * time.Second}}, &l)
	require.NoError(t, err)
	svc := service.NewUserService(httpapi.NewUserRepository(client), l)

	clk := fakeclock.New()
	rec := &recorder{}
	ctl := controller.New(context.Background(), svc, rec, rec, l, controller.Options{
		DefaultLimit: 10,
		Debounce:     300 * time.Millisecond,
		Clock:        clk,
		Metrics:      metrics.New(prometheus.NewRegistry()),
	})
	defer ctl.Close()

	ctl.Load()
	assert.Equal(t, 3, ctl.TotalPages())
	assert.Equal(t, "Marie Curie", rec.lastList().Cards[0].FullName, "newest first")

	require.True(t, ctl.GoToPage(3))
	assert.Len(t, rec.lastList().Cards, 6)
	assert.Equal(t, "Showing 21 to 26 of 26 usagers", rec.lastList().Pagination.Summary())

	ctl.SetSearch("cur")
	ctl.SetSearch("curie")
	clk.Advance(300 * time.Millisecond)
	got := rec.lastList()
	require.Len(t, got.Cards, 1)
	assert.False(t, got.Pagination.Visible)

	ctl.SetNiveau("Expert")
	ctl.ClearFilters()

	assert.Equal(t, []string{
		"limit=10&page=1",
		"limit=10&page=3",
		"limit=10&page=1&search=curie",
		"filter_niveau=Expert&limit=10&page=1&search=curie",
		"limit=10&page=1",
	}, fake.ListRequests())

	fake.FailNext(fakeapi.Fault{Status: 200, ContentType: "text/html", Body: "<p>maintenance</p>"})
	ctl.Reload()
	assert.Equal(t, message{view.MessageError, "Failed to load usagers: non-JSON response received"}, rec.lastMsg())
	assert.Equal(t, view.LoadFailed, rec.lastList().Error)
}

func TestControllerAgainstFakeAPI_DuplicateEmail(t *testing.T) {
	fake := fakeapi.New()
	ts, base := fake.Start()
	defer ts.Close()
	fake.Seed(contract.Fixture(1, "Débutant", "1990-01-01"))

	l := zerolog.Nop()
	client, err := httpapi.New(&config.Config{API: config.APIConfig{BaseURL: base, Timeout: 2 * time.Second}}, &l)
	require.NoError(t, err)
	rec := &recorder{}
	ctl := controller.New(context.Background(), service.NewUserService(httpapi.NewUserRepository(client), l), rec, rec, l, controller.Options{Clock: fakeclock.New()})
	defer ctl.Close()

	ctl.NewForm()
	in := contract.Fixture(1, "Expert", "1985-03-03")
	require.NoError(t, ctl.SetField("first_name", in.FirstName))
	require.NoError(t, ctl.SetField("last_name", in.LastName))
	require.NoError(t, ctl.SetField("email", in.Email))
	require.NoError(t, ctl.SetField("date_naissance", in.DateNaissance))
	require.NoError(t, ctl.SetField("niveau_natation", in.NiveauNatation))

	assert.Error(t, ctl.SubmitForm())
	assert.Equal(t, message{view.MessageError, "Email already exists"}, rec.lastMsg())
}
