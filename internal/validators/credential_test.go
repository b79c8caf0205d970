package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securevault/vaultcore/models"
)

func validFields() models.CredentialFields {
	return models.CredentialFields{
		Website:    "GitHub",
		WebsiteURL: "https://github.com",
		Username:   "octocat",
		Secret:     "hunter22",
		Notes:      "work account",
	}
}

func TestNewCredentialValidator(t *testing.T) {
	v := NewCredentialValidator()
	require.NotNil(t, v)
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, "a string")
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("fields value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validFields()))
	})

	t.Run("fields pointer", func(t *testing.T) {
		f := validFields()
		require.NoError(t, v.Validate(ctx, &f))
	})

	t.Run("unknown field name", func(t *testing.T) {
		err := v.Validate(ctx, validFields(), "owner_id")
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestValidate_RequiredFields(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CredentialFields)
		want   error
	}{
		{"empty website", func(f *models.CredentialFields) { f.Website = "" }, ErrEmptyWebsite},
		{"blank website", func(f *models.CredentialFields) { f.Website = "   " }, ErrEmptyWebsite},
		{"empty username", func(f *models.CredentialFields) { f.Username = "" }, ErrEmptyUsername},
		{"empty secret", func(f *models.CredentialFields) { f.Secret = "" }, ErrEmptySecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)
			err := v.Validate(ctx, f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_WebsiteURL(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	t.Run("optional", func(t *testing.T) {
		f := validFields()
		f.WebsiteURL = ""
		require.NoError(t, v.Validate(ctx, f))
	})

	t.Run("bare host accepted", func(t *testing.T) {
		f := validFields()
		f.WebsiteURL = "github.com"
		require.NoError(t, v.Validate(ctx, f))
	})

	t.Run("garbage rejected", func(t *testing.T) {
		f := validFields()
		f.WebsiteURL = "://"
		err := v.Validate(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidWebsiteURL)
	})
}

func TestValidate_FieldScoping(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	// Only the named field is checked, the rest may be invalid.
	f := models.CredentialFields{Website: "GitHub"}
	require.NoError(t, v.Validate(ctx, f, FieldWebsite))

	err := v.Validate(ctx, f, FieldSecret)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
