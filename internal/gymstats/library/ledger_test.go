package library

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func TestLedger_RecordDedupes(t *testing.T) {
	l := NewLedger(" panca piana ", "Panca Piana", "PANCA PIANA", "", "   ", "squat", "dip")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"Dip", "Panca Piana", "Squat"}, l.List())

	l.Record("Squat ", "rematore")
	assert.Equal(t, []string{"Dip", "Panca Piana", "Rematore", "Squat"}, l.List())
}

func TestLedger_RecordIsIdempotent(t *testing.T) {
	l := NewLedger()
	for range 20 {
		name := gofakeit.Word() + " " + gofakeit.Word()
		l.Record(name)
		before := l.Len()
		l.Record(name, "  "+name+"  ")
		assert.Equal(t, before, l.Len(), name)
	}
}

func TestLedger_Remove(t *testing.T) {
	l := NewLedger("squat", "dip")

	assert.True(t, l.Remove("  SQUAT "))
	assert.False(t, l.Remove("squat"))
	assert.False(t, l.Remove(""))
	assert.Equal(t, []string{"Dip"}, l.List())
}

func TestLedger_Search(t *testing.T) {
	l := NewLedger("panca piana", "panca inclinata", "squat")

	assert.Equal(t, []string{"Panca Inclinata", "Panca Piana"}, l.Search("PAN"))
	assert.Equal(t, []string{"Panca Piana"}, l.Search(" piana"))
	assert.Len(t, l.Search(""), 3)
	assert.Empty(t, l.Search("curl"))
}

func TestAvailableNames(t *testing.T) {
	available := AvailableNames(
		[]string{"Panca Piana", "Squat"},
		[]string{"curl bilanciere", "squat", ""},
	)
	require.Len(t, available, 3)
	assert.Equal(t, []string{"Curl Bilanciere", "Panca Piana", "Squat"}, available)

	assert.Empty(t, AvailableNames(nil, nil))
}
