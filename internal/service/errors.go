package service

import (
	"errors"

	"github.com/zachlandes/2ml-crm/pkg/code"

	"gorm.io/gorm"
)

// mapRepoErr turns a repository error into notFound or a wrapped query failure
func mapRepoErr(err error, notFound *code.Code) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	var c *code.Code
	if errors.As(err, &c) {
		return err
	}
	return code.ErrorDBQuery.WithDetails(err.Error())
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
