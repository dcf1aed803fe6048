package main

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisPinger(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer client.Close()

	pinger := redisPinger{client: client}
	if err := pinger.Ping(context.Background()); err != nil {
		t.Fatalf("expected ping to succeed, got %v", err)
	}

	srv.Close()
	if err := pinger.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail after server shutdown")
	}
}
