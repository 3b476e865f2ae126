package controllers

import (
	"net/http"
	"strings"

	"github.com/BielWaki/loja-backend/api/responses"
	"github.com/BielWaki/loja-backend/api/validators"
	"github.com/BielWaki/loja-backend/internal/instruments"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/logger"
)

// InstrumentCreate adds an instrument to the catalog with its opening stock.
func InstrumentCreate(svc instruments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "instrument service unavailable"))
			return
		}

		var payload instruments.CreateInstrumentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		instrument, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, instrument)
	}
}

// InstrumentList returns the catalog, optionally filtered by category,
// supplier or a name search.
func InstrumentList(svc instruments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "instrument service unavailable"))
			return
		}

		var filters instruments.ListFilters

		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseInstrumentCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid category").WithDetails(map[string]any{"category": raw}))
				return
			}
			filters.Category = &category
		}

		supplierID, err := queryUUID(r, "supplier_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.Supplier = supplierID
		filters.Search = strings.TrimSpace(r.URL.Query().Get("q"))

		list, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// InstrumentDetail returns one instrument by ID.
func InstrumentDetail(svc instruments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "instrument service unavailable"))
			return
		}

		id, err := idParam(r, "instrumentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		instrument, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, instrument)
	}
}

// InstrumentUpdate adjusts the descriptive instrument fields. Stock levels
// change only through movements.
func InstrumentUpdate(svc instruments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "instrument service unavailable"))
			return
		}

		id, err := idParam(r, "instrumentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload instruments.UpdateInstrumentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		instrument, err := svc.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, instrument)
	}
}

// InstrumentDelete removes an instrument that has no recorded movements.
func InstrumentDelete(svc instruments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "instrument service unavailable"))
			return
		}

		id, err := idParam(r, "instrumentId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}
