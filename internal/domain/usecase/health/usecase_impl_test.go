package health

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"go-owm/internal/domain/model"
	"go-owm/pkg/redis"
)

type fakeQuota struct {
	usage map[string]string
	err   error
}

func (f fakeQuota) Usage(context.Context) (map[string]string, error) {
	return f.usage, f.err
}

func newRedisChecker(t *testing.T) (CacheChecker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("invalid miniredis port %q", mr.Port())
	}
	client, err := redis.NewClient(redis.NewRedisConfig().WithHost(mr.Host()).WithPort(port))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheChecker(client), mr
}

func TestCheckHealth_CacheDisabled(t *testing.T) {
	response := NewHealthUseCase(nil, nil).CheckHealth(context.Background())

	if response.Status != model.StatusUp {
		t.Errorf("Status = %s, want UP", response.Status)
	}
	if response.Cache.Status != model.StatusUnknown {
		t.Errorf("Cache.Status = %s, want UNKNOWN", response.Cache.Status)
	}
	if response.Quota != nil {
		t.Errorf("Quota = %v, want nil", response.Quota)
	}
}

func TestCheckHealth_Redis(t *testing.T) {
	checker, mr := newRedisChecker(t)
	useCase := NewHealthUseCase(checker, fakeQuota{usage: map[string]string{"per_minute": "3/60"}})

	up := useCase.CheckHealth(context.Background())
	if up.Status != model.StatusUp || up.Cache.Status != model.StatusUp {
		t.Errorf("CheckHealth() = %+v, want UP", up)
	}
	if up.Quota["per_minute"] != "3/60" {
		t.Errorf("Quota = %v", up.Quota)
	}

	mr.Close()
	down := useCase.CheckHealth(context.Background())
	if down.Status != model.StatusDown || down.Cache.Status != model.StatusDown {
		t.Errorf("CheckHealth() = %+v, want DOWN", down)
	}
}

func TestCheckHealth_QuotaErrorOmitted(t *testing.T) {
	response := NewHealthUseCase(nil, fakeQuota{err: errors.New("redis down")}).CheckHealth(context.Background())

	if response.Quota != nil {
		t.Errorf("Quota = %v, want nil", response.Quota)
	}
}
