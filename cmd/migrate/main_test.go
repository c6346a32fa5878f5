package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
)

func TestRun_NoArgs(t *testing.T) {
	assert.ErrorIs(t, run(nil), errUsage)
}

func TestRun_UnknownCommand(t *testing.T) {
	assert.ErrorIs(t, run([]string{"sideways"}), errUsage)
}

func TestRun_RequiresDatabase(t *testing.T) {
	err := run([]string{"up"})
	assert.ErrorContains(t, err, "no database configured")
}

func TestReport_NoChangeIsSuccess(t *testing.T) {
	assert.NoError(t, report(migrate.ErrNoChange, "applied"))
}

func TestReport_PassesThroughFailures(t *testing.T) {
	boom := errors.New("dirty schema")
	assert.ErrorIs(t, report(boom, "applied"), boom)
}

func TestReport_Success(t *testing.T) {
	assert.NoError(t, report(nil, "applied"))
}
