package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrResultNotFound = errors.New("result not found")

type ResultRepository interface {
	Save(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
}

type redisResult struct {
	client *redis.Client
}

func NewRedisResultRepository(client *redis.Client) ResultRepository {
	return &redisResult{
		client: client,
	}
}

func (that *redisResult) Save(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	err = that.client.Set(ctx, resultKey(result.ID), resultJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set result: %w", err)
	}

	return nil
}

func (that *redisResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.MatchResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

func resultKey(id string) string {
	return "result:" + id
}

// discardResult is used when no results storage is configured.
type discardResult struct{}

func NewDiscardResultRepository() ResultRepository {
	return discardResult{}
}

func (discardResult) Save(context.Context, *entity.MatchResult) error {
	return nil
}

func (discardResult) GetByID(context.Context, string) (*entity.MatchResult, error) {
	return nil, ErrResultNotFound
}
