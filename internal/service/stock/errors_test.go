package stock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	client "github.com/mamadbah2/saisie-livres/pkg/clients/airtable"
)

func TestMapInsertErrorPriority(t *testing.T) {
	// NOT_FOUND wins over everything that follows it.
	mapped := MapInsertError(errors.New("NOT_FOUND INVALID_VALUE_FOR_COLUMN"))
	assert.ErrorIs(t, mapped, ErrConfiguration)

	mapped = MapInsertError(errors.New("INVALID_API_KEY INVALID_REQUEST_UNKNOWN_FIELD_NAME"))
	assert.ErrorIs(t, mapped, ErrAuth)

	assert.Nil(t, MapInsertError(nil))
}

func TestMapInsertErrorMessages(t *testing.T) {
	mapped := MapInsertError(&client.APIError{StatusCode: 404, Type: "NOT_FOUND"})
	assert.Equal(t, "Erreur Airtable: Table ou Base non trouvée. Vérifiez la configuration.", mapped.Message)

	mapped = MapInsertError(&client.APIError{StatusCode: 422, Type: "INVALID_VALUE_FOR_COLUMN", Message: `Field "ETAT" cannot accept the provided value`})
	assert.ErrorIs(t, mapped, ErrValueRejected)
	assert.Contains(t, mapped.Message, "Valeur invalide pour une colonne")

	raw := errors.New("dial tcp: i/o timeout")
	mapped = MapInsertError(raw)
	assert.ErrorIs(t, mapped, ErrUnknownRemote)
	assert.ErrorIs(t, mapped, raw)
	assert.Equal(t, "Erreur interne lors de l'ajout à Airtable: dial tcp: i/o timeout", mapped.Message)
}

func TestMapInsertErrorUnknownFieldName(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		field string
	}{
		{name: "single quotes", text: "INVALID_REQUEST_UNKNOWN_FIELD_NAME: Unknown field name 'sous_rayon'", field: "sous_rayon"},
		{name: "double quotes", text: `INVALID_REQUEST_UNKNOWN_FIELD_NAME message=Unknown field name: "Sous Rayon"`, field: "Sous Rayon"},
		{name: "last quoted name", text: "field name 'A' INVALID_REQUEST_UNKNOWN_FIELD_NAME name 'B'", field: "B"},
		{name: "no name", text: "INVALID_REQUEST_UNKNOWN_FIELD_NAME", field: "inconnu"},
		{name: "unquoted", text: "INVALID_REQUEST_UNKNOWN_FIELD_NAME name ETAT", field: "inconnu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapInsertError(errors.New(tt.text))
			require.ErrorIs(t, mapped, ErrSchema)
			assert.Contains(t, mapped.Message, "Nom de champ invalide ("+tt.field+")")
			assert.Contains(t, mapped.Message, "EAN, RAYON, ETAT, sous rayon")
		})
	}
}
