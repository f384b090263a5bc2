package db

import (
	"context"
	"testing"
)

func TestPoolStats_Fields(t *testing.T) {
	stats := &PoolStats{
		TotalConns:      10,
		IdleConns:       5,
		AcquiredConns:   5,
		MaxConns:        20,
		AcquireCount:    100,
		AcquireDuration: "1.5s",
		Healthy:         true,
	}

	if stats.TotalConns != 10 {
		t.Errorf("expected TotalConns 10, got %d", stats.TotalConns)
	}
	if stats.AcquiredConns != 5 {
		t.Errorf("expected AcquiredConns 5, got %d", stats.AcquiredConns)
	}
	if !stats.Healthy {
		t.Error("expected Healthy to be true")
	}
}

func TestConnFromContext_NoTx(t *testing.T) {
	if q := ConnFromContext(context.Background()); q != nil {
		t.Error("expected nil Queryable outside a transaction")
	}
}
