package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func newSession(id string) *domain.Session {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &domain.Session{
		ID:            id,
		Machine:       "zeros-ones",
		Input:         "0011",
		Configuration: domain.NewConfiguration("q1", domain.NewTape("0011", ".").Write("x").Move(domain.Right)),
		Steps:         1,
		Status:        domain.SessionRunning,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunSessionStoreContract(t, middleware.Chain(memory.NewStore(), mw))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	original := newSession("test-session")

	if err := secureStore.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The underlying store only sees the envelope.
	stored, err := underlyingStore.Load(ctx, original.ID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if stored.Input != "" || stored.Configuration.State != "" {
		t.Fatalf("Expected input and configuration to be hidden, found %q and %s", stored.Input, stored.Configuration)
	}
	if stored.Sealed == "" {
		t.Fatal("Expected sealed data in envelope")
	}
	if stored.Machine != "zeros-ones" || stored.Status != domain.SessionRunning || stored.Steps != 1 {
		t.Errorf("Expected listing fields to stay visible, got %+v", stored)
	}

	loaded, err := secureStore.Load(ctx, original.ID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if loaded.Input != "0011" {
		t.Errorf("Expected input '0011', got %q", loaded.Input)
	}
	if !loaded.Configuration.Equal(original.Configuration) {
		t.Errorf("Expected configuration %s, got %s", original.Configuration, loaded.Configuration)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	ctx := context.Background()
	original := newSession("rotation-session")

	if err := secureStoreOld.Save(ctx, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, original.ID)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loaded.Input != original.Input {
		t.Errorf("Decryption with fallback key failed")
	}

	// Saving again seals with the new key only.
	loaded.Steps = 2
	if err := secureStoreNew.Save(ctx, loaded); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}
	if _, err := secureStoreOld.Load(ctx, original.ID); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_BindsSessionID(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()

	if err := secureStore.Save(ctx, newSession("a")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	moved := *underlyingStore.data["a"]
	moved.ID = "b"
	underlyingStore.data["b"] = &moved

	if _, err := secureStore.Load(ctx, "b"); err == nil {
		t.Error("Expected an envelope copied to another ID to fail decryption")
	}
}

func TestEncryptionMiddleware_PlainSession(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()

	if err := underlyingStore.Save(ctx, newSession("plain")); err != nil {
		t.Fatal(err)
	}
	if _, err := secureStore.Load(ctx, "plain"); !errors.Is(err, middleware.ErrNotSealed) {
		t.Errorf("Expected ErrNotSealed, got %v", err)
	}
	if _, err := secureStore.Load(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic for invalid key size")
		}
	}()
	middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"hex", hex.EncodeToString(key), false},
		{"base64", base64.StdEncoding.EncodeToString(key), false},
		{"padded", "  " + hex.EncodeToString(key) + "\n", false},
		{"short", hex.EncodeToString(key[:16]), true},
		{"garbage", strings.Repeat("z", 64), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := middleware.ParseKey(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got key %x", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKey failed: %v", err)
			}
			if string(got) != string(key) {
				t.Errorf("Expected %x, got %x", key, got)
			}
		})
	}
}
