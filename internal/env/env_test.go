package env

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	t.Setenv("LUNCH_TEST_STRING", "value")
	t.Setenv("LUNCH_TEST_INT", "42")
	t.Setenv("LUNCH_TEST_BAD_INT", "forty-two")
	t.Setenv("LUNCH_TEST_BOOL", "true")
	t.Setenv("LUNCH_TEST_DURATION", "90s")

	assert.Equal(t, "value", GetEnv("LUNCH_TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnv("LUNCH_TEST_UNSET", "default"))
	assert.Equal(t, 42, GetInt("LUNCH_TEST_INT", 1))
	assert.Equal(t, 1, GetInt("LUNCH_TEST_BAD_INT", 1))
	assert.True(t, GetBool("LUNCH_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, GetDuration("LUNCH_TEST_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("LUNCH_TEST_UNSET", time.Minute))
}

func TestGetLocation(t *testing.T) {
	t.Setenv(EnvSchoolTimezone, "Europe/Athens")
	assert.Equal(t, "Europe/Athens", GetLocation(EnvSchoolTimezone).String())

	t.Setenv(EnvSchoolTimezone, "Mars/Olympus")
	assert.Equal(t, time.Local, GetLocation(EnvSchoolTimezone))

	t.Setenv(EnvSchoolTimezone, "")
	assert.Equal(t, time.Local, GetLocation(EnvSchoolTimezone))
}
