package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// Every backend must satisfy the same slot contract.
func TestSlotRepoContract(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) SlotRepo
	}{
		{"sqlite", func(t *testing.T) SlotRepo {
			return openTestStore(t).SlotRepo()
		}},
		{"file", func(t *testing.T) SlotRepo {
			repo, err := NewFileSlotRepo(t.TempDir())
			if err != nil {
				t.Fatalf("new file repo: %v", err)
			}
			return repo
		}},
		{"memory", func(t *testing.T) SlotRepo {
			return NewMemorySlotRepo()
		}},
		{"redis", func(t *testing.T) SlotRepo {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { client.Close() })
			return NewRedisSlotRepo(client)
		}},
	}

	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repo := b.open(t)
			ctx := context.Background()

			if _, err := repo.Get(ctx, "performanceData"); !errors.Is(err, ErrSlotNotFound) {
				t.Fatalf("get missing: err = %v, want ErrSlotNotFound", err)
			}

			if err := repo.Put(ctx, "performanceData", []byte(`[{"score":1}]`)); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := repo.Get(ctx, "performanceData")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != `[{"score":1}]` {
				t.Errorf("get = %q", got)
			}

			// Put replaces wholesale.
			if err := repo.Put(ctx, "performanceData", []byte(`[]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = repo.Get(ctx, "performanceData")
			if err != nil {
				t.Fatalf("get after overwrite: %v", err)
			}
			if string(got) != `[]` {
				t.Errorf("get after overwrite = %q, want []", got)
			}

			// Slots are independent.
			if err := repo.Put(ctx, "masteredQuestions", []byte(`[1,2]`)); err != nil {
				t.Fatalf("put second slot: %v", err)
			}

			if err := repo.Delete(ctx, "performanceData"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := repo.Get(ctx, "performanceData"); !errors.Is(err, ErrSlotNotFound) {
				t.Errorf("get deleted: err = %v, want ErrSlotNotFound", err)
			}
			if err := repo.Delete(ctx, "performanceData"); err != nil {
				t.Errorf("delete missing: %v", err)
			}

			other, err := repo.Get(ctx, "masteredQuestions")
			if err != nil {
				t.Fatalf("get second slot: %v", err)
			}
			if string(other) != `[1,2]` {
				t.Errorf("second slot = %q", other)
			}

			if _, err := repo.Get(ctx, ""); !errors.Is(err, ErrInvalidSlotName) {
				t.Errorf("get empty name: err = %v, want ErrInvalidSlotName", err)
			}
		})
	}
}

func TestRedisSlotRepoKeyPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	repo, err := OpenRedis(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer repo.Close()

	if err := repo.Put(context.Background(), "performanceData", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := mr.Get(RedisKeyPrefix + "performanceData")
	if err != nil {
		t.Fatalf("miniredis get: %v", err)
	}
	if got != "[]" {
		t.Errorf("raw value = %q, want []", got)
	}
}

func TestOpenRedisFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := OpenRedis(context.Background(), addr, "", 0); err == nil {
		t.Fatal("expected error connecting to closed server")
	}
}
