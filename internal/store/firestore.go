package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/securevault/vaultcore/internal/logger"
	"github.com/securevault/vaultcore/models"
)

// FirestoreConfig carries the connection settings for the production
// document store.
type FirestoreConfig struct {
	// ProjectID is the Firebase/GCP project the documents live in.
	ProjectID string
	// Collection is the collection holding credential documents.
	// Defaults to "passwords".
	Collection string
	// BaseURL overrides the Firestore REST endpoint, used in tests.
	BaseURL string
	// RequestTimeout bounds individual REST calls.
	RequestTimeout time.Duration
	// PollInterval is the live-subscription refresh period.
	PollInterval time.Duration
}

// firestoreStore implements [CredentialStore] against the Cloud Firestore
// REST API. Writes go through the :commit endpoint with serverTimestamp
// field transforms so createdAt/updatedAt stay server-assigned; document IDs
// are client-generated UUIDs. Live subscriptions are polling watchers that
// deliver the full owner-scoped result set whenever it changes.
type firestoreStore struct {
	client     *resty.Client
	parent     string
	collection string
	tokens     TokenSource
	cache      *SnapshotCache
	poll       time.Duration
	log        *logger.Logger

	watchers *watcherRegistry
}

// NewFirestoreStore wires a Firestore-backed credential store. tokens
// supplies the signed-in user's ID token for request auth. cache is
// optional; when present, the last delivered snapshot per owner is persisted
// and replayed on subscribe before the first live fetch.
func NewFirestoreStore(cfg FirestoreConfig, tokens TokenSource, cache *SnapshotCache, log *logger.Logger) (CredentialStore, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firestore store: project id is required")
	}
	if cfg.Collection == "" {
		cfg.Collection = "passwords"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://firestore.googleapis.com/v1"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &firestoreStore{
		client:     cli,
		parent:     fmt.Sprintf("projects/%s/databases/(default)/documents", cfg.ProjectID),
		collection: cfg.Collection,
		tokens:     tokens,
		cache:      cache,
		poll:       cfg.PollInterval,
		log:        log,
		watchers:   newWatcherRegistry(),
	}, nil
}

// commitWrite is one entry of a Firestore :commit request.
type commitWrite struct {
	Update           *firestoreDocument `json:"update,omitempty"`
	Delete           string             `json:"delete,omitempty"`
	UpdateMask       *documentMask      `json:"updateMask,omitempty"`
	UpdateTransforms []fieldTransform   `json:"updateTransforms,omitempty"`
	CurrentDocument  *precondition      `json:"currentDocument,omitempty"`
}

type documentMask struct {
	FieldPaths []string `json:"fieldPaths"`
}

type fieldTransform struct {
	FieldPath        string `json:"fieldPath"`
	SetToServerValue string `json:"setToServerValue"`
}

type precondition struct {
	Exists bool `json:"exists"`
}

func (f *firestoreStore) Create(ctx context.Context, ownerID string, fields models.CredentialFields) (string, error) {
	if ownerID == "" {
		return "", fmt.Errorf("%w: empty owner id", ErrPersistence)
	}

	recordID := uuid.NewString()
	write := commitWrite{
		Update: &firestoreDocument{
			Name:   f.documentName(recordID),
			Fields: encodeFields(ownerID, fields),
		},
		UpdateTransforms: []fieldTransform{
			{FieldPath: "createdAt", SetToServerValue: "REQUEST_TIME"},
			{FieldPath: "updatedAt", SetToServerValue: "REQUEST_TIME"},
		},
		CurrentDocument: &precondition{Exists: false},
	}

	if err := f.commit(ctx, write); err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}

	f.watchers.nudge(ownerID)
	return recordID, nil
}

func (f *firestoreStore) Update(ctx context.Context, recordID string, fields models.CredentialFields) error {
	write := commitWrite{
		Update: &firestoreDocument{
			Name: f.documentName(recordID),
			// ownerId stays outside the mask: it is set at creation and
			// never mutated.
			Fields: encodeFields("", fields),
		},
		UpdateMask: &documentMask{
			FieldPaths: []string{"website", "websiteUrl", "username", "secret", "notes"},
		},
		UpdateTransforms: []fieldTransform{
			{FieldPath: "updatedAt", SetToServerValue: "REQUEST_TIME"},
		},
		CurrentDocument: &precondition{Exists: true},
	}

	if err := f.commit(ctx, write); err != nil {
		if errors.Is(err, errCommitNotFound) {
			return fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
		}
		return fmt.Errorf("update record: %w", err)
	}

	f.watchers.nudgeAll()
	return nil
}

func (f *firestoreStore) Delete(ctx context.Context, recordID string) error {
	// No precondition: Firestore treats deleting a missing document as a
	// no-op success, which is exactly the idempotence the contract wants.
	if err := f.commit(ctx, commitWrite{Delete: f.documentName(recordID)}); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	f.watchers.nudgeAll()
	return nil
}

func (f *firestoreStore) FetchByOwner(ctx context.Context, ownerID string) ([]models.Credential, error) {
	// ownerId-only filter, no server-side orderBy: ordering server-side
	// would require a composite index on (ownerId, createdAt).
	query := map[string]any{
		"structuredQuery": map[string]any{
			"from": []map[string]any{{"collectionId": f.collection}},
			"where": map[string]any{
				"fieldFilter": map[string]any{
					"field": map[string]any{"fieldPath": "ownerId"},
					"op":    "EQUAL",
					"value": map[string]any{"stringValue": ownerID},
				},
			},
		},
	}

	resp, err := f.authedRequest(ctx).
		SetBody(query).
		Post("/" + f.parent + ":runQuery")
	if err != nil {
		return nil, fmt.Errorf("%w: run query: %v", ErrPersistence, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, restError(resp)
	}

	var rows []struct {
		Document *firestoreDocument `json:"document"`
	}
	if err = json.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("%w: decode query response: %v", ErrPersistence, err)
	}

	records := make([]models.Credential, 0, len(rows))
	for _, row := range rows {
		if row.Document == nil {
			continue
		}
		record, err := decodeDocument(*row.Document)
		if err != nil {
			// Quarantine rather than propagate undefined fields. The
			// envelope content itself is opaque, so logging the document
			// id leaks nothing.
			f.log.Warn().Err(err).Str("document", documentID(row.Document.Name)).Msg("skipping malformed credential document")
			continue
		}
		if record.OwnerID != ownerID {
			// The server's filter is not trusted: a result row owned by
			// someone else is quarantined the same way a malformed
			// document is.
			f.log.Warn().Str("document", record.ID).Msg("skipping credential document with foreign owner")
			continue
		}
		records = append(records, record)
	}

	models.SortByNewest(records)
	return records, nil
}

func (f *firestoreStore) SubscribeByOwner(ctx context.Context, ownerID string, onSnapshot SnapshotFunc, onError ErrorFunc) (Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	w := newWatcher(f, ownerID, onSnapshot, onError)
	f.watchers.add(ownerID, w)
	w.start(ctx, f.poll)
	return w, nil
}

func (f *firestoreStore) commit(ctx context.Context, writes ...commitWrite) error {
	resp, err := f.authedRequest(ctx).
		SetBody(map[string]any{"writes": writes}).
		Post("/" + f.parent + ":commit")
	if err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return errCommitNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return restError(resp)
	}
	return nil
}

func (f *firestoreStore) authedRequest(ctx context.Context) *resty.Request {
	req := f.client.R().SetContext(ctx).SetHeader("Content-Type", "application/json")
	if f.tokens != nil {
		if token, err := f.tokens.IDToken(ctx); err == nil && token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
	}
	return req
}

func (f *firestoreStore) documentName(recordID string) string {
	return f.parent + "/" + f.collection + "/" + recordID
}

// errCommitNotFound distinguishes a missing-document precondition failure
// from other commit errors.
var errCommitNotFound = fmt.Errorf("%w: document does not exist", ErrPersistence)

func restError(resp *resty.Response) error {
	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrPersistence, resp.StatusCode(), body)
}

// fingerprint summarizes a snapshot so the watcher can detect change
// without keeping the previous result set around.
func fingerprint(records []models.Credential) string {
	h := sha256.New()
	for _, r := range records {
		h.Write([]byte(r.ID))
		h.Write([]byte{0})
		h.Write([]byte(r.Secret))
		h.Write([]byte(r.Website))
		h.Write([]byte(r.WebsiteURL))
		h.Write([]byte(r.Username))
		h.Write([]byte(r.Notes))
		if r.UpdatedAt != nil {
			h.Write([]byte(r.UpdatedAt.Format(time.RFC3339Nano)))
		}
		h.Write([]byte{0xff})
	}
	return hex.EncodeToString(h.Sum(nil))
}
