package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/BielWaki/loja-backend/api/responses"
	"github.com/BielWaki/loja-backend/api/validators"
	"github.com/BielWaki/loja-backend/internal/movements"
	"github.com/BielWaki/loja-backend/pkg/enums"
	pkgerrors "github.com/BielWaki/loja-backend/pkg/errors"
	"github.com/BielWaki/loja-backend/pkg/logger"
	"github.com/BielWaki/loja-backend/pkg/pagination"
)

// MovementRecord appends one entry to the stock ledger and returns the
// resulting stock level.
func MovementRecord(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload movements.RecordMovementInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Record(r.Context(), actor, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// MovementList returns one page of ledger entries, newest first, optionally
// filtered by instrument, type and period.
func MovementList(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		filters, err := movementFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// MovementDetail returns one ledger entry by ID.
func MovementDetail(svc movements.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "movement service unavailable"))
			return
		}

		id, err := idParam(r, "movementId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		movement, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, movement)
	}
}

func movementFilters(r *http.Request) (movements.ListFilters, error) {
	var filters movements.ListFilters

	instrumentID, err := queryUUID(r, "instrument_id")
	if err != nil {
		return filters, err
	}
	filters.Instrument = instrumentID

	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		movementType, err := enums.ParseMovementType(raw)
		if err != nil {
			return filters, pkgerrors.New(pkgerrors.CodeValidation, "invalid movement type").WithDetails(map[string]any{"type": raw})
		}
		filters.Type = &movementType
	}

	from, err := queryTime(r, "from")
	if err != nil {
		return filters, err
	}
	filters.From = from

	to, err := queryTime(r, "to")
	if err != nil {
		return filters, err
	}
	filters.To = to

	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return filters, err
	}
	filters.Pagination = pagination.Params{
		Limit:  limit,
		Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
	}

	return filters, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid timestamp").WithDetails(map[string]any{"field": key})
	}
	return &parsed, nil
}
