package stock

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
)

var eanPattern = regexp.MustCompile(`^[0-9]{13}$`)

// Store persists one stock entry and returns the remote record id.
type Store interface {
	Insert(ctx context.Context, fields map[string]any) (string, error)
}

// Journal keeps a copy of accepted entries for recaps. It is optional.
type Journal interface {
	RecordEntry(ctx context.Context, entry models.JournalEntry) error
}

// Service validates stock entries and forwards them to the store.
type Service struct {
	store   Store
	journal Journal
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires the stock service. A nil store means the Airtable client
// could not be built at startup; every submission then fails with
// ErrStoreUninitialized.
func NewService(store Store, journal Journal, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// StoreReady reports whether submissions can reach Airtable.
func (s *Service) StoreReady() bool {
	return s.store != nil
}

// Options returns the valid values for a form field, or an empty slice.
func (s *Service) Options(field string) []string {
	switch field {
	case models.FieldEtat:
		return models.Etats()
	case models.FieldRayon:
		return models.Rayons()
	default:
		return []string{}
	}
}

// StockOptions returns both dropdown lists.
func (s *Service) StockOptions(_ context.Context) (models.OptionSet, error) {
	return models.OptionSet{
		Rayons: s.Options(models.FieldRayon),
		Etats:  s.Options(models.FieldEtat),
	}, nil
}

// Submit validates the JSON body, inserts the entry and returns the
// confirmation message. Failures are *Error values.
func (s *Service) Submit(ctx context.Context, body []byte) (string, error) {
	if s.store == nil {
		return "", &Error{Kind: ErrStoreUninitialized, Message: "Erreur: Connexion Airtable non initialisée."}
	}

	entry, err := ParseEntry(body)
	if err != nil {
		s.logger.Info("stock entry rejected", zap.Error(err))
		return "", err
	}

	fields := entry.Fields()
	s.logger.Debug("submitting stock entry", zap.String("ean", entry.EAN), zap.Any("fields", fields))

	recordID, err := s.store.Insert(ctx, fields)
	if err != nil {
		mapped := MapInsertError(err)
		s.logger.Error("failed adding record to airtable",
			zap.String("ean", entry.EAN),
			zap.String("kind", mapped.Kind.Error()),
			zap.String("remote_error", err.Error()))
		return "", mapped
	}

	s.logger.Info("airtable record created", zap.String("record_id", recordID), zap.String("ean", entry.EAN))
	s.journalEntry(ctx, entry, recordID)

	return fmt.Sprintf("EAN %s ajouté avec succès.", entry.EAN), nil
}

func (s *Service) journalEntry(ctx context.Context, entry models.StockEntry, recordID string) {
	if s.journal == nil {
		return
	}

	err := s.journal.RecordEntry(ctx, models.JournalEntry{
		EAN:       entry.EAN,
		Rayon:     entry.Rayon,
		SousRayon: entry.SousRayon,
		Etat:      entry.Etat,
		RecordID:  recordID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed journaling stock entry", zap.String("ean", entry.EAN), zap.Error(err))
	}
}

// ParseEntry decodes and validates a submission. The first failing check wins:
// payload present, required fields present, EAN format, condition code.
func ParseEntry(body []byte) (models.StockEntry, error) {
	var payload map[string]any

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || len(payload) == 0 {
		return models.StockEntry{}, validationError("Erreur: Aucune donnée reçue.")
	}

	rayon, rayonOK := textValue(payload["rayon"])
	etat, etatOK := textValue(payload["etat"])
	if !present(payload["ean"]) || !rayonOK || !etatOK {
		return models.StockEntry{}, validationError("Erreur: EAN, Rayon et État sont requis.")
	}

	ean, ok := payload["ean"].(string)
	if !ok || validation.Validate(ean, validation.Match(eanPattern)) != nil {
		return models.StockEntry{}, validationError("Erreur: Format EAN invalide (%v). 13 chiffres attendus.", payload["ean"])
	}

	entry := models.StockEntry{EAN: ean, Rayon: rayon, Etat: etat}
	if sousRayon, ok := textValue(payload["sous_rayon"]); ok {
		entry.SousRayon = sousRayon
	}

	if err := validation.Validate(entry.Etat, validation.By(knownEtat)); err != nil {
		return models.StockEntry{}, validationError("Erreur: État invalide (%s). Valeurs attendues: %s.",
			entry.Etat, strings.Join(models.Etats(), ", "))
	}

	return entry, nil
}

// textValue returns v when it is a non-empty string.
func textValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || validation.Validate(s, validation.Required) != nil {
		return "", false
	}
	return s, true
}

// present treats null, false, zero numbers and empty values as missing.
func present(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	default:
		return validation.Validate(val, validation.Required) == nil
	}
}

func knownEtat(value interface{}) error {
	code, _ := value.(string)
	if !models.IsEtat(code) {
		return errors.New("unknown condition code")
	}
	return nil
}
