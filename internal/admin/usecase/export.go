package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/domain/repository"
	apperrors "shipping-admin/internal/shared/errors"
	"shipping-admin/internal/shared/logger"
)

// Exporter renders collections for download. It reads raw documents through
// the storage gateway so exports reflect durable state, not any in-memory
// mirror.
type Exporter struct {
	store repository.Store
	log   logger.Logger
	now   func() time.Time
}

// NewExporter creates an exporter over the given gateway.
func NewExporter(store repository.Store, log logger.Logger) *Exporter {
	return &Exporter{
		store: store,
		log:   log.WithComponent("export"),
		now:   time.Now,
	}
}

// ExportJSON renders one collection as indented JSON.
func (e *Exporter) ExportJSON(ctx context.Context, collection string) ([]byte, error) {
	raw, err := e.store.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("stored %s document is not valid JSON", collection)).WithCause(err)
	}
	e.log.WithContext(ctx).Infof("Exported %s as JSON", collection)
	return buf.Bytes(), nil
}

// ExportCSV renders a list collection as CSV. Column order follows the key
// order of the first record's JSON encoding; records missing a column emit an
// empty cell, and nested values are embedded as JSON text.
func (e *Exporter) ExportCSV(ctx context.Context, collection string) ([]byte, error) {
	if !model.IsListCollection(collection) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("collection %q cannot be exported as CSV", collection))
	}

	raw, err := e.store.Load(ctx, collection)
	if err != nil {
		return nil, err
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("stored %s document is not a record list", collection)).WithCause(err)
	}
	if len(records) == 0 {
		return []byte{}, nil
	}

	headers, err := firstRecordKeys(raw)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to derive %s columns", collection)).WithCause(err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, apperrors.NewInternalError("failed to write CSV header").WithCause(err)
	}
	for _, record := range records {
		row := make([]string, len(headers))
		for i, header := range headers {
			row[i] = csvCell(record[header])
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.NewInternalError("failed to write CSV row").WithCause(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.NewInternalError("failed to flush CSV output").WithCause(err)
	}

	e.log.WithContext(ctx).Infof("Exported %s as CSV (%d rows)", collection, len(records))
	return buf.Bytes(), nil
}

// ExportAll bundles users, products, orders, categories and settings into one
// JSON document stamped with the export time. Suppliers stay out of the
// bundle, matching the per-collection export surface the dashboard grew later.
func (e *Exporter) ExportAll(ctx context.Context) ([]byte, error) {
	bundle := map[string]interface{}{
		"exportDate": e.now().Format(time.RFC3339),
	}

	for _, collection := range []string{
		model.CollectionUsers,
		model.CollectionProducts,
		model.CollectionOrders,
		model.CollectionCategories,
		model.CollectionSettings,
	} {
		raw, err := e.store.Load(ctx, collection)
		if err != nil {
			return nil, err
		}
		bundle[collection] = json.RawMessage(raw)
	}

	out, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode export bundle").WithCause(err)
	}
	e.log.WithContext(ctx).Info("Exported full data bundle")
	return out, nil
}

// firstRecordKeys walks the token stream of the first array element to
// recover its key order, which encoding/json's map decoding discards.
func firstRecordKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // opening [
		return nil, err
	}
	if _, err := dec.Token(); err != nil { // opening { of the first record
		return nil, err
	}

	var keys []string
	depth := 0
	expectKey := true
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				depth++
			case '}', ']':
				if depth == 0 {
					return keys, nil
				}
				depth--
			}
			expectKey = depth == 0
		case string:
			if depth == 0 && expectKey {
				keys = append(keys, t)
				expectKey = false
				continue
			}
			expectKey = depth == 0
		default:
			expectKey = depth == 0
		}
	}
}

// csvCell renders one value for a CSV cell. Scalars print plainly, nested
// structures embed as JSON, null becomes an empty cell.
func csvCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return fmt.Sprintf("%t", v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
