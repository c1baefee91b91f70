package dataaggregator

import (
	"context"
	"errors"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/opsconsole/pkg/dataaggregator/source"
)

var ErrNoMatchingSource = errors.New("Failed to find a matching Data Source for type")

type Aggregator struct {
	Sources []DataSource
}

func New(sources ...DataSource) *Aggregator {
	aggregator := &Aggregator{}

	for _, dataSource := range sources {
		aggregator.RegisterSource(dataSource)
	}

	return aggregator
}

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks each registered source supporting T in turn. Sources that can't serve the query
// return source.UnsupportedSourceError and the next one is tried.
func Lookup[T any](ctx context.Context, a *Aggregator, query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range a.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(ctx, query)

		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		typedValue, ok := returnValue.(T)
		if !ok {
			return empty, errors.New("Data Source returned an unexpected type")
		}

		return typedValue, returnError
	}

	return empty, ErrNoMatchingSource
}
