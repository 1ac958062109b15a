package stock

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrConfiguration      = errors.New("airtable table or base not found")
	ErrAuth               = errors.New("airtable api key invalid or missing")
	ErrSchema             = errors.New("airtable field name mismatch")
	ErrValueRejected      = errors.New("airtable rejected a column value")
	ErrUnknownRemote      = errors.New("airtable insert failed")
	ErrStoreUninitialized = errors.New("airtable store not initialized")
)

// Error is a failure carrying the French message shown to the clerk.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func validationError(format string, args ...any) *Error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Remote error vocabulary. These substrings are Airtable's error types as they
// appear in the client error text; a rename on Airtable's side lands in the
// generic branch.
const (
	remoteNotFound         = "NOT_FOUND"
	remoteAuthRequired     = "AUTHENTICATION_REQUIRED"
	remoteInvalidAPIKey    = "INVALID_API_KEY"
	remoteUnknownFieldName = "INVALID_REQUEST_UNKNOWN_FIELD_NAME"
	remoteInvalidValue     = "INVALID_VALUE_FOR_COLUMN"
)

var quotedFieldName = regexp.MustCompile(`name:?\s*['"]([^'"]+)['"]`)

// MapInsertError translates a failed insert into a clerk-facing Error.
// Checks run in priority order on the raw error text.
func MapInsertError(err error) *Error {
	if err == nil {
		return nil
	}
	text := err.Error()

	switch {
	case strings.Contains(text, remoteNotFound):
		return &Error{
			Kind:    ErrConfiguration,
			Message: "Erreur Airtable: Table ou Base non trouvée. Vérifiez la configuration.",
			Err:     err,
		}
	case strings.Contains(text, remoteAuthRequired) || strings.Contains(text, remoteInvalidAPIKey):
		return &Error{
			Kind:    ErrAuth,
			Message: "Erreur Airtable: Clé API invalide ou manquante.",
			Err:     err,
		}
	case strings.Contains(text, remoteUnknownFieldName):
		return &Error{
			Kind: ErrSchema,
			Message: fmt.Sprintf("Erreur Airtable: Nom de champ invalide (%s). Vérifiez les noms: %s, %s, %s, %s.",
				unknownFieldName(text), models.FieldEAN, models.FieldRayon, models.FieldEtat, models.FieldSousRayon),
			Err: err,
		}
	case strings.Contains(text, remoteInvalidValue):
		return &Error{
			Kind:    ErrValueRejected,
			Message: "Erreur Airtable: Valeur invalide pour une colonne (probablement Rayon ou Etat). Vérifiez les options sélectionnées.",
			Err:     err,
		}
	default:
		return &Error{
			Kind:    ErrUnknownRemote,
			Message: fmt.Sprintf("Erreur interne lors de l'ajout à Airtable: %s", text),
			Err:     err,
		}
	}
}

// unknownFieldName pulls the last quoted name out of the remote text, or "inconnu".
func unknownFieldName(text string) string {
	matches := quotedFieldName.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return "inconnu"
	}
	return matches[len(matches)-1][1]
}
