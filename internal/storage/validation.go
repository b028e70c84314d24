package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ntalo/ntalo/internal/model"
)

var errNilAggregate = errors.New("aggregate must not be nil")

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context must not be nil")
	}
	return ctx.Err()
}

func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

func validatePersonalAggregate(agg *model.PersonalAggregate) error {
	if agg == nil {
		return errNilAggregate
	}
	if err := validateString(agg.UserID, "userID"); err != nil {
		return err
	}
	return validateString(agg.CanonicalKey, "canonicalKey")
}

func validateCommunityAggregate(agg *model.CommunityAggregate) error {
	if agg == nil {
		return errNilAggregate
	}
	if err := validateString(agg.City, "city"); err != nil {
		return err
	}
	return validateString(agg.CanonicalKey, "canonicalKey")
}
