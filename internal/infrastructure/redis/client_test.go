package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s", s.Addr()))
	if err != nil {
		t.Fatalf("expected client, got error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url")
	if err == nil {
		t.Fatalf("expected error for invalid URL")
	}
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url)
	if err == nil {
		t.Fatalf("expected ping error when server is down")
	}
}

func TestConnectEmptyURLDisablesRedis(t *testing.T) {
	client, err := Connect(context.Background(), "", zerolog.Nop())
	if err != nil || client != nil {
		t.Fatalf("expected nil client and nil error, got client=%v err=%v", client, err)
	}
}

func TestConnect(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := Connect(context.Background(), fmt.Sprintf("redis://%s/2", s.Addr()), zerolog.Nop())
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer client.Close()

	if client.Options().DB != 2 {
		t.Fatalf("expected db 2, got %d", client.Options().DB)
	}
}
