package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNowUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t, loc, New(loc).Now().Location())
}

func TestNilLocationDefaultsToLocal(t *testing.T) {
	assert.Equal(t, time.Local, New(nil).Now().Location())
}
