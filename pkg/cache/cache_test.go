package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.RenderKey("abc123", "basic-a3", RendererKind)
	if want := Hash([]byte("abc123:basic-a3:svg2d")); key != want {
		t.Errorf("RenderKey = %s, want %s", key, want)
	}

	tests := []struct {
		name string
		a, b string
	}{
		{"schema hash", k.RenderKey("h1", "basic-a3", RendererKind), k.RenderKey("h2", "basic-a3", RendererKind)},
		{"template", k.RenderKey("h1", "basic-a3", RendererKind), k.RenderKey("h1", "basic-letter", RendererKind)},
		{"renderer kind", k.RenderKey("h1", "basic-a3", "svg2d"), k.RenderKey("h1", "basic-a3", "svg3d")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("changing %s should change the key", tt.name)
			}
		})
	}

	if got := k.LockKey(key); got != "render:"+key {
		t.Errorf("LockKey = %s, want render:%s", got, key)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(nil, "staging:")

	key := k.RenderKey("h", "basic-a3", RendererKind)
	if want := inner.RenderKey("h", "basic-a3", RendererKind); key != want {
		t.Errorf("RenderKey = %s, want unscoped %s", key, want)
	}
	if got := k.LockKey(key); !strings.HasPrefix(got, "staging:render:") {
		t.Errorf("LockKey = %s, want staging:render: prefix", got)
	}
}

func TestRevision(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"0123456789abcdef", "01234567"},
		{"abcd", "abcd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Revision(tt.key); got != tt.want {
			t.Errorf("Revision(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	fast := Backoff{Attempts: 3, Delay: time.Millisecond}
	boom := errors.New("boom")

	t.Run("non-retryable returns immediately", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoffN(ctx, fast, func() error { calls++; return boom })
		if !errors.Is(err, boom) || calls != 1 {
			t.Errorf("err = %v, calls = %d; want boom after 1 call", err, calls)
		}
	})

	t.Run("retryable exhausts attempts", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoffN(ctx, fast, func() error { calls++; return Retryable(boom) })
		if calls != 3 {
			t.Errorf("calls = %d, want 3", calls)
		}
		if IsRetryable(err) || !errors.Is(err, boom) {
			t.Errorf("err = %v, want unwrapped boom", err)
		}
	})

	t.Run("succeeds after retry", func(t *testing.T) {
		calls := 0
		err := RetryWithBackoffN(ctx, fast, func() error {
			calls++
			if calls < 2 {
				return Retryable(boom)
			}
			return nil
		})
		if err != nil || calls != 2 {
			t.Errorf("err = %v, calls = %d; want nil after 2 calls", err, calls)
		}
	})

	t.Run("context cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := RetryWithBackoffN(cctx, Backoff{Attempts: 3, Delay: time.Hour}, func() error { return Retryable(boom) })
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestNullLocker(t *testing.T) {
	ctx := context.Background()
	l := NewNullLocker()

	unlock1, err := l.Lock(ctx, "k", time.Second)
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	// Second lock on the same key is granted too.
	unlock2, err := l.Lock(ctx, "k", time.Second)
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	if err := unlock1(ctx); err != nil {
		t.Errorf("unlock error: %v", err)
	}
	if err := unlock2(ctx); err != nil {
		t.Errorf("unlock error: %v", err)
	}
}

func TestRedisLocker(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	key := "cabledraw-test:" + t.Name()
	l := NewRedisLocker(client, WithPollInterval(5*time.Millisecond), WithMaxWait(50*time.Millisecond))

	unlock, err := l.Lock(ctx, key, 5*time.Second)
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}
	if _, err := l.Lock(ctx, key, 5*time.Second); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("contended Lock err = %v, want ErrLockTimeout", err)
	}
	if err := unlock(ctx); err != nil {
		t.Fatalf("unlock error: %v", err)
	}
	unlock, err = l.Lock(ctx, key, 5*time.Second)
	if err != nil {
		t.Fatalf("Lock after release error: %v", err)
	}
	_ = unlock(ctx)
}
