package parsererror

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnreadableTableError(t *testing.T) {
	err := &UnreadableTableError{FilePath: "a.csv", Err: os.ErrNotExist}

	assert.Contains(t, err.Error(), "a.csv")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{
		FilePath: "a.csv",
		Role:     "description",
		Headers:  []string{"Date", "Amount"},
	}

	msg := err.Error()
	assert.Contains(t, msg, "a.csv")
	assert.Contains(t, msg, "description")
	assert.Contains(t, msg, "Date")
}

func TestErrorsAsMatchesConcreteType(t *testing.T) {
	var wrapped error = &NoInflowError{Tables: 3}

	var noInflow *NoInflowError
	assert.True(t, errors.As(wrapped, &noInflow))
	assert.Equal(t, 3, noInflow.Tables)

	var noTables *NoValidTablesError
	assert.False(t, errors.As(wrapped, &noTables))
}
