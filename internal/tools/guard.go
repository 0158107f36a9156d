package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bobmcallan/krxdata/internal/common"
	"github.com/bobmcallan/krxdata/internal/models"
)

// Core is an operation's own logic: validate, call the client once, check
// for an empty result, format. Returned errors are collaborator faults.
type Core func(ctx context.Context, a Args) (*models.Record, error)

// Handler is a guarded operation. It never fails and never panics.
type Handler func(ctx context.Context, raw map[string]any) *models.Record

// Guard binds raw arguments and runs core, turning any error or panic into
// {error, function, ...arguments}. Invocation and outcome are logged.
func Guard(logger *common.Logger, name string, params []Param, core Core) Handler {
	return func(ctx context.Context, raw map[string]any) (env *models.Record) {
		args, err := bind(params, raw)
		if err != nil {
			logger.Warn().Str("tool", name).Err(err).Msg("Invalid arguments")
			return ErrorEnvelope(err.Error()).Merge(supplied(params, raw))
		}

		logger.Info().Str("tool", name).Str("args", argsText(args.values)).Msg("Tool called")

		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("%v", rec)
				logger.Error().Str("tool", name).Str("panic", err.Error()).Msg("Tool panicked")
				env = faultEnvelope(name, err, params, raw)
			}
		}()

		res, err := core(ctx, args)
		if err == nil && res == nil {
			err = errors.New("operation returned no result")
		}
		if err != nil {
			logger.Error().Str("tool", name).Err(err).Msg("Tool failed")
			return faultEnvelope(name, err, params, raw)
		}

		if res.IsError() {
			logger.Info().Str("tool", name).Str("error", res.ErrorMessage()).Msg("Tool returned error envelope")
			return res
		}
		ev := logger.Info().Str("tool", name)
		if data, ok := res.Get("data"); ok {
			if n, isList := listLen(data); isList {
				ev = ev.Int("rows", n)
			}
		}
		ev.Msg("Tool succeeded")
		return res
	}
}

// faultEnvelope echoes only the arguments the caller passed, not defaults.
func faultEnvelope(name string, err error, params []Param, raw map[string]any) *models.Record {
	return ErrorEnvelope(err.Error(), "function", name).Merge(supplied(params, raw))
}

func listLen(v any) (int, bool) {
	switch x := v.(type) {
	case []*models.Record:
		return len(x), true
	case []string:
		return len(x), true
	case []any:
		return len(x), true
	}
	return 0, false
}

func argsText(r *models.Record) string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("%v", r.Keys())
	}
	return string(b)
}
