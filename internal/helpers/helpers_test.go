package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	valid := primitive.NewObjectID()

	t.Run("valid hex", func(t *testing.T) {
		got, err := ParseObjectID(valid.Hex())
		require.NoError(t, err)
		assert.Equal(t, valid, got)
	})

	malformed := []string{
		"",
		"   ",
		"abc",
		"not-an-object-id",
		valid.Hex()[:23],
		valid.Hex() + "0",
		"zzzzzzzzzzzzzzzzzzzzzzzz",
		"6512bd43d9caa6e02c990b0a-",
		fmt.Sprintf("%q", valid.Hex()),
		"'" + valid.Hex() + "'",
		" " + valid.Hex() + " ",
		"\"'\"" + valid.Hex(),
		valid.Hex() + "\n",
	}
	for _, raw := range malformed {
		t.Run("malformed "+raw, func(t *testing.T) {
			got, err := ParseObjectID(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedIdentifier)
			assert.True(t, got.IsZero())
		})
	}
}

func TestSanitize(t *testing.T) {
	clean := []string{"", "Birthday Party", "Main Hall, 12 High Street", "+44 20 7946 0958", "2025-10-01"}
	for _, v := range clean {
		got, err := Sanitize(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)

		again, err := Sanitize(got)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}

	rejected := []string{"$where", "a.b", "{ \"$gt\": \"\" }", "alice@example.com", "trailing.", "$"}
	for _, v := range rejected {
		_, err := Sanitize(v)
		assert.ErrorIs(t, err, ErrInvalidInput, v)
	}
}

func TestSanitizeFieldsReportsFirstOffender(t *testing.T) {
	err := SanitizeFields(
		Field{Name: "title", Value: "Launch"},
		Field{Name: "description", Value: "see www.example"},
		Field{Name: "date", Value: "$now"},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "description")
	assert.NotContains(t, err.Error(), "date")

	assert.NoError(t, SanitizeFields(Field{Name: "title", Value: "Launch"}))
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		nil:                                         http.StatusOK,
		ErrMalformedIdentifier:                      http.StatusBadRequest,
		fmt.Errorf("wrap: %w", ErrInvalidInput):     http.StatusBadRequest,
		ErrInvalidMediaType:                         http.StatusUnsupportedMediaType,
		fmt.Errorf("event: %w", ErrNotFound):        http.StatusNotFound,
		ErrPayloadTooLarge:                          http.StatusRequestEntityTooLarge,
		errors.New("server selection timeout"):      http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, StatusFor(err), "%v", err)
	}

	assert.True(t, IsClientError(ErrNotFound))
	assert.False(t, IsClientError(errors.New("boom")))
}
