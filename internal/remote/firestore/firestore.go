// Package firestore mirrors the store into Cloud Firestore under
// users/{uid}/store. Each local document becomes one Firestore document
// wrapped in an items field, so a push is three blind overwrites.
package firestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"kakeibo/internal/core"
	"kakeibo/internal/storage"
)

const storeCollection = "store"

type Store struct {
	client *firestore.Client
	userID string
}

type Config struct {
	ProjectID       string
	CredentialsFile string
	UserID          string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.ProjectID == "" || cfg.UserID == "" {
		return nil, errors.New("firestore: project id and user id are required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &Store{client: client, userID: cfg.UserID}, nil
}

// NewFromEnv builds a Store from FIRESTORE_PROJECT_ID,
// FIRESTORE_CREDENTIALS_FILE and SYNC_USER_ID.
func NewFromEnv(ctx context.Context) (*Store, error) {
	return New(ctx, Config{
		ProjectID:       os.Getenv("FIRESTORE_PROJECT_ID"),
		CredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		UserID:          os.Getenv("SYNC_USER_ID"),
	})
}

func (s *Store) doc(name string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(s.userID).Collection(storeCollection).Doc(name)
}

func (s *Store) PushSnapshot(ctx context.Context, snap storage.Snapshot) error {
	if _, err := s.doc("expenses").Set(ctx, map[string]any{"items": snap.Transactions}); err != nil {
		return fmt.Errorf("push expenses: %w", err)
	}
	if _, err := s.doc("cards").Set(ctx, map[string]any{"items": snap.Methods}); err != nil {
		return fmt.Errorf("push cards: %w", err)
	}
	if _, err := s.doc("settings").Set(ctx, map[string]any{"items": snap.Settings}); err != nil {
		return fmt.Errorf("push settings: %w", err)
	}

	slog.InfoContext(ctx, "Pushed snapshot to Firestore",
		"user_id", s.userID,
		"transactions", len(snap.Transactions),
		"methods", len(snap.Methods))
	return nil
}

func (s *Store) PullSnapshot(ctx context.Context) (storage.Snapshot, error) {
	snap := storage.Snapshot{Settings: core.DefaultSettings()}

	if err := s.pull(ctx, "expenses", &snap.Transactions); err != nil {
		return storage.Snapshot{}, err
	}
	if err := s.pull(ctx, "cards", &snap.Methods); err != nil {
		return storage.Snapshot{}, err
	}
	if err := s.pull(ctx, "settings", &snap.Settings); err != nil {
		return storage.Snapshot{}, err
	}
	return snap, nil
}

// pull reads one document's items field into out. A missing document is not
// an error; the remote may never have been pushed to.
func (s *Store) pull(ctx context.Context, name string, out any) error {
	doc, err := s.doc(name).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pull %s: %w", name, err)
	}
	value, err := doc.DataAt("items")
	if err != nil {
		return fmt.Errorf("read %s items: %w", name, err)
	}
	return decodeField(name, value, out)
}

// decodeField converts Firestore's loosely typed document data back into the
// domain types through a JSON round trip.
func decodeField(name string, value any, out any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
