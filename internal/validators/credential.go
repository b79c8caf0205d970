package validators

import (
	"context"
	"net/url"
	"strings"

	"github.com/securevault/vaultcore/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldWebsite targets the human-readable site name of a credential.
	FieldWebsite = "website"

	// FieldWebsiteURL targets the optional site URL of a credential.
	FieldWebsiteURL = "website_url"

	// FieldUsername targets the login name of a credential.
	FieldUsername = "username"

	// FieldSecret targets the password field of a credential.
	FieldSecret = "secret"
)

// CredentialValidator implements the Validator interface for credential
// write payloads. It supports both value and pointer receivers and allows
// optional field-level scoping via variadic field name arguments.
type CredentialValidator struct {
}

// NewCredentialValidator constructs a new CredentialValidator
// and returns it as the Validator interface.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches validation based on the dynamic type of obj. Both the
// value and pointer forms of models.CredentialFields are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// all writable fields are validated.
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.CredentialFields:
		return v.validateFields(ctx, value, fields...)
	case *models.CredentialFields:
		return v.validateFields(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialValidator) validateFields(_ context.Context, f models.CredentialFields, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldWebsite, FieldWebsiteURL, FieldUsername, FieldSecret}
	}

	for _, field := range fields {
		switch field {
		case FieldWebsite:
			if strings.TrimSpace(f.Website) == "" {
				return ErrEmptyWebsite
			}
		case FieldUsername:
			if strings.TrimSpace(f.Username) == "" {
				return ErrEmptyUsername
			}
		case FieldSecret:
			if f.Secret == "" {
				return ErrEmptySecret
			}
		case FieldWebsiteURL:
			// Optional field, checked only when present.
			if f.WebsiteURL != "" && !parsableURL(f.WebsiteURL) {
				return ErrInvalidWebsiteURL
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// parsableURL accepts anything url.Parse can make sense of once a scheme is
// supplied, matching how loosely site URLs are treated elsewhere.
func parsableURL(raw string) bool {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	return err == nil && u.Host != ""
}
