package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	args := that.Called(ctx, id)

	result, _ := args.Get(0).(*entity.MatchResult)

	return result, args.Error(1)
}

func newTestServer(t *testing.T) (*Server, *usecase.SessionRegistry, *mockResultRepo) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	registry := usecase.NewSessionRegistry()
	results := &mockResultRepo{}
	t.Cleanup(func() { results.AssertExpectations(t) })

	return New(logger, registry, results), registry, results
}

func serve(server *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func TestServer_Ping(t *testing.T) {
	server, _, _ := newTestServer(t)

	rec := serve(server, "/ping")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_GetMatch(t *testing.T) {
	t.Run("Live match is summarised without revealing ships", func(t *testing.T) {
		// Given: a registered session where Player One has placed a vessel
		server, registry, _ := newTestServer(t)
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		session := usecase.NewMatchSession(logger, battleship.NewMatch(4), repository.NewDiscardResultRepository())
		_, err := session.PlaceVessel(context.Background(), entity.PlayerOne, entity.NewCoordinate(0, 0), entity.Horizontal)
		require.NoError(t, err)
		registry.Add(session)

		// When: requesting the match
		rec := serve(server, "/matches/"+session.ID())

		// Then: the summary is returned and boards show no ship cells
		require.Equal(t, http.StatusOK, rec.Code)

		var summary usecase.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, session.ID(), summary.ID)
		assert.Equal(t, "setup", summary.Phase)
		assert.NotContains(t, summary.Boards[entity.PlayerOne.String()], "o")
	})

	t.Run("Unknown match is 404", func(t *testing.T) {
		server, _, _ := newTestServer(t)

		rec := serve(server, "/matches/nope")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_GetResult(t *testing.T) {
	t.Run("Stored result is returned", func(t *testing.T) {
		server, _, results := newTestServer(t)
		results.On("GetByID", mock.Anything, "match-1").
			Return(&entity.MatchResult{ID: "match-1", Winner: 2, Guesses: 30, Hits: 17}, nil).
			Once()

		rec := serve(server, "/results/match-1")

		require.Equal(t, http.StatusOK, rec.Code)

		var result entity.MatchResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, 2, result.Winner)
		assert.Equal(t, 17, result.Hits)
	})

	t.Run("Missing result is 404", func(t *testing.T) {
		server, _, results := newTestServer(t)
		results.On("GetByID", mock.Anything, "missing").
			Return(nil, repository.ErrResultNotFound).
			Once()

		rec := serve(server, "/results/missing")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Storage failure is 500", func(t *testing.T) {
		server, _, results := newTestServer(t)
		results.On("GetByID", mock.Anything, "boom").
			Return(nil, errors.New("redis down")).
			Once()

		rec := serve(server, "/results/boom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
