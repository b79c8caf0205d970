package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/securevault/vaultcore/models"
)

// firestoreValue is the tagged-union value encoding of the Firestore REST
// API. Only the variants the credential schema uses are modelled.
type firestoreValue struct {
	StringValue    *string    `json:"stringValue,omitempty"`
	TimestampValue *time.Time `json:"timestampValue,omitempty"`
}

// firestoreDocument mirrors the REST representation of a stored document.
type firestoreDocument struct {
	Name       string                    `json:"name,omitempty"`
	Fields     map[string]firestoreValue `json:"fields,omitempty"`
	CreateTime *time.Time                `json:"createTime,omitempty"`
	UpdateTime *time.Time                `json:"updateTime,omitempty"`
}

func stringValue(s string) firestoreValue {
	return firestoreValue{StringValue: &s}
}

// encodeFields maps the writable field set plus ownerId into Firestore
// values. Timestamps are deliberately absent: they are applied server-side
// via field transforms so they stay server-assigned.
func encodeFields(ownerID string, fields models.CredentialFields) map[string]firestoreValue {
	out := map[string]firestoreValue{
		"website":    stringValue(fields.Website),
		"websiteUrl": stringValue(fields.WebsiteURL),
		"username":   stringValue(fields.Username),
		"secret":     stringValue(fields.Secret),
		"notes":      stringValue(fields.Notes),
	}
	if ownerID != "" {
		out["ownerId"] = stringValue(ownerID)
	}
	return out
}

// decodeDocument validates a stored document against the credential schema
// and converts it. Documents missing the required fields are rejected with
// ErrInvalidDocument so the caller can quarantine them instead of
// propagating undefined state.
func decodeDocument(doc firestoreDocument) (models.Credential, error) {
	id := documentID(doc.Name)
	if id == "" {
		return models.Credential{}, fmt.Errorf("%w: missing document name", ErrInvalidDocument)
	}

	record := models.Credential{ID: id}

	for field, target := range map[string]*string{
		"ownerId":  &record.OwnerID,
		"website":  &record.Website,
		"username": &record.Username,
		"secret":   &record.Secret,
	} {
		value, ok := doc.Fields[field]
		if !ok || value.StringValue == nil || *value.StringValue == "" {
			return models.Credential{}, fmt.Errorf("%w: document %s missing %s", ErrInvalidDocument, id, field)
		}
		*target = *value.StringValue
	}

	// Optional fields.
	if v, ok := doc.Fields["websiteUrl"]; ok && v.StringValue != nil {
		record.WebsiteURL = *v.StringValue
	}
	if v, ok := doc.Fields["notes"]; ok && v.StringValue != nil {
		record.Notes = *v.StringValue
	}
	if v, ok := doc.Fields["createdAt"]; ok && v.TimestampValue != nil {
		t := v.TimestampValue.UTC()
		record.CreatedAt = &t
	}
	if v, ok := doc.Fields["updatedAt"]; ok && v.TimestampValue != nil {
		t := v.TimestampValue.UTC()
		record.UpdatedAt = &t
	}

	return record, nil
}

// documentID extracts the final path segment from a fully-qualified
// document resource name.
func documentID(name string) string {
	if name == "" {
		return ""
	}
	return name[strings.LastIndex(name, "/")+1:]
}
